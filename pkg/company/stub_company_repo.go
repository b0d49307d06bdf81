package company

import (
	"context"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	companies map[int]Company
	nextId    int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{companies: make(map[int]Company), nextId: 1}
}

func (s *StubRepo) Create(ctx context.Context, c Company) (int, error) {
	c.Id = s.nextId
	s.nextId++
	s.companies[c.Id] = c
	return c.Id, nil
}

func (s *StubRepo) GetByUid(ctx context.Context, uid string) (Company, error) {
	for _, c := range s.companies {
		if c.Uid == uid {
			return c, nil
		}
	}
	return Company{}, ErrCompanyNotFound
}

func (s *StubRepo) Get(ctx context.Context, id int) (Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return Company{}, ErrCompanyNotFound
	}
	return c, nil
}

func (s *StubRepo) Update(ctx context.Context, c Company) (bool, error) {
	if _, ok := s.companies[c.Id]; !ok {
		return false, nil
	}
	s.companies[c.Id] = c
	return true, nil
}
