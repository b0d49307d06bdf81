package allocation

import (
	"context"
	"time"

	"github.com/staffpad/staffpad/pkg/member"
)

// StubRepo is an in-memory Repo for tests. An error set with FailWith is
// returned by every query until reset.
type StubRepo struct {
	allocations []Allocation
	nextId      int
	err         error
}

func NewStubRepo() *StubRepo {
	return &StubRepo{nextId: 1}
}

func (s *StubRepo) FailWith(err error) {
	s.err = err
}

func (s *StubRepo) Reset() {
	s.allocations = nil
	s.nextId = 1
	s.err = nil
}

func (s *StubRepo) Add(a Allocation) {
	a.Id = s.nextId
	s.nextId++
	s.allocations = append(s.allocations, a)
}

func (s *StubRepo) FindForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]Allocation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var result []Allocation
	for _, a := range s.allocations {
		if a.CompanyId == companyId && a.Hours > 0 && !a.WeekStart.Before(from) && !a.WeekStart.After(to) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *StubRepo) FindForRangeByType(
	ctx context.Context,
	companyId int,
	from time.Time,
	to time.Time,
	memberType member.Type,
) ([]Allocation, error) {
	all, err := s.FindForRange(ctx, companyId, from, to)
	if err != nil {
		return nil, err
	}
	var result []Allocation
	for _, a := range all {
		if a.MemberType == memberType {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *StubRepo) Upsert(ctx context.Context, companyId int, a Allocation) (Allocation, error) {
	if s.err != nil {
		return Allocation{}, s.err
	}
	a.CompanyId = companyId
	for i, existing := range s.allocations {
		if existing.CompanyId == companyId &&
			existing.MemberId == a.MemberId &&
			existing.ProjectId == a.ProjectId &&
			existing.WeekStart.Equal(a.WeekStart) {
			if a.Hours <= 0 {
				s.allocations = append(s.allocations[:i], s.allocations[i+1:]...)
				return a, nil
			}
			a.Id = existing.Id
			s.allocations[i] = a
			return a, nil
		}
	}
	if a.Hours <= 0 {
		return a, nil
	}
	a.Id = s.nextId
	s.nextId++
	s.allocations = append(s.allocations, a)
	return a, nil
}

func (s *StubRepo) Delete(ctx context.Context, companyId int, id int) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for i, existing := range s.allocations {
		if existing.CompanyId == companyId && existing.Id == id {
			s.allocations = append(s.allocations[:i], s.allocations[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
