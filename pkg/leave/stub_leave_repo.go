package leave

import (
	"context"
	"time"
)

// StubRepo is an in-memory Repo for tests. Errors can be injected per
// record set to exercise partial-failure behavior of consumers.
type StubRepo struct {
	daily  []DailyLeave
	weekly []WeeklyLeave
	nextId int

	DailyErr  error
	WeeklyErr map[Category]error
}

func NewStubRepo() *StubRepo {
	return &StubRepo{nextId: 1, WeeklyErr: make(map[Category]error)}
}

func (s *StubRepo) Reset() {
	s.daily = nil
	s.weekly = nil
	s.nextId = 1
	s.DailyErr = nil
	s.WeeklyErr = make(map[Category]error)
}

func (s *StubRepo) AddDaily(ctx context.Context, companyId int, l DailyLeave) (int, error) {
	if s.DailyErr != nil {
		return 0, s.DailyErr
	}
	l.Id = s.nextId
	l.CompanyId = companyId
	s.nextId++
	s.daily = append(s.daily, l)
	return l.Id, nil
}

func (s *StubRepo) AddWeekly(ctx context.Context, companyId int, l WeeklyLeave) (int, error) {
	if err := s.WeeklyErr[l.Category]; err != nil {
		return 0, err
	}
	l.Id = s.nextId
	l.CompanyId = companyId
	s.nextId++
	s.weekly = append(s.weekly, l)
	return l.Id, nil
}

func (s *StubRepo) FindDailyForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]DailyLeave, error) {
	if s.DailyErr != nil {
		return nil, s.DailyErr
	}
	var result []DailyLeave
	for _, l := range s.daily {
		if l.CompanyId == companyId && !l.Date.Before(from) && !l.Date.After(to) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *StubRepo) FindWeeklyForRange(
	ctx context.Context,
	companyId int,
	from time.Time,
	to time.Time,
	category Category,
) ([]WeeklyLeave, error) {
	if err := s.WeeklyErr[category]; err != nil {
		return nil, err
	}
	var result []WeeklyLeave
	for _, l := range s.weekly {
		if l.CompanyId == companyId && l.Category == category && !l.WeekStart.Before(from) && !l.WeekStart.After(to) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *StubRepo) DeleteDaily(ctx context.Context, companyId int, id int) (bool, error) {
	for i, l := range s.daily {
		if l.CompanyId == companyId && l.Id == id {
			s.daily = append(s.daily[:i], s.daily[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) DeleteWeekly(ctx context.Context, companyId int, id int) (bool, error) {
	for i, l := range s.weekly {
		if l.CompanyId == companyId && l.Id == id {
			s.weekly = append(s.weekly[:i], s.weekly[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
