package project

import (
	"context"
	"sort"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	projects map[int]Project
	nextId   int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{projects: make(map[int]Project), nextId: 1}
}

func (s *StubRepo) Create(ctx context.Context, companyId int, p Project) (int, error) {
	p.Id = s.nextId
	p.CompanyId = companyId
	s.nextId++
	s.projects[p.Id] = p
	return p.Id, nil
}

func (s *StubRepo) Get(ctx context.Context, companyId int, id int) (Project, error) {
	p, ok := s.projects[id]
	if !ok || p.CompanyId != companyId {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (s *StubRepo) GetAll(ctx context.Context, companyId int) ([]Project, error) {
	var projects []Project
	for _, p := range s.projects {
		if p.CompanyId == companyId {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Id < projects[j].Id })
	return projects, nil
}

func (s *StubRepo) Delete(ctx context.Context, companyId int, id int) (bool, error) {
	p, ok := s.projects[id]
	if !ok || p.CompanyId != companyId {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}
