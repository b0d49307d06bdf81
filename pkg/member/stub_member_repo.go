package member

import (
	"context"
	"sort"
)

// StubRepo is an in-memory Repo for tests.
type StubRepo struct {
	members map[int]Member
	nextId  int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{members: make(map[int]Member), nextId: 1}
}

func (s *StubRepo) Create(ctx context.Context, companyId int, m Member) (int, error) {
	m.Id = s.nextId
	m.CompanyId = companyId
	s.nextId++
	s.members[m.Id] = m
	return m.Id, nil
}

func (s *StubRepo) Get(ctx context.Context, companyId int, id int) (Member, error) {
	m, ok := s.members[id]
	if !ok || m.CompanyId != companyId {
		return Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (s *StubRepo) GetByUid(ctx context.Context, companyId int, uid string) (Member, error) {
	for _, m := range s.members {
		if m.CompanyId == companyId && m.Uid == uid {
			return m, nil
		}
	}
	return Member{}, ErrMemberNotFound
}

func (s *StubRepo) GetAll(ctx context.Context, companyId int) ([]Member, error) {
	var members []Member
	for _, m := range s.members {
		if m.CompanyId == companyId {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Id < members[j].Id })
	return members, nil
}

func (s *StubRepo) GetAllByType(ctx context.Context, companyId int, memberType Type) ([]Member, error) {
	all, _ := s.GetAll(ctx, companyId)
	var members []Member
	for _, m := range all {
		if m.Type == memberType {
			members = append(members, m)
		}
	}
	return members, nil
}

func (s *StubRepo) Update(ctx context.Context, companyId int, m Member) (bool, error) {
	existing, ok := s.members[m.Id]
	if !ok || existing.CompanyId != companyId {
		return false, nil
	}
	m.CompanyId = companyId
	s.members[m.Id] = m
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, companyId int, id int) (bool, error) {
	existing, ok := s.members[id]
	if !ok || existing.CompanyId != companyId {
		return false, nil
	}
	delete(s.members, id)
	return true, nil
}
