package utilization

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/pkg/allocation"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/leave"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
)

type Service interface {

	// MemberUtilization computes rolling-window utilization for every
	// member of the current company, for the week containing date.
	MemberUtilization(ctx context.Context, date time.Time) (map[int]Result, error)
}

// AllocationReader is the slice of the allocation repository utilization
// needs. Active and pre-registered workloads are fetched through separate
// type filters.
type AllocationReader interface {
	FindForRangeByType(ctx context.Context, companyId int, from time.Time, to time.Time, memberType member.Type) ([]allocation.Allocation, error)
}

type LeaveReader interface {
	FindDailyForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]leave.DailyLeave, error)
	FindWeeklyForRange(ctx context.Context, companyId int, from time.Time, to time.Time, category leave.Category) ([]leave.WeeklyLeave, error)
}

type MemberLister interface {
	GetAllMembers(ctx context.Context) ([]member.Member, error)
}

type ServiceImpl struct {
	allocations AllocationReader
	leave       LeaveReader
	members     MemberLister
}

func NewService(allocations AllocationReader, leaveReader LeaveReader, members MemberLister) *ServiceImpl {
	return &ServiceImpl{
		allocations: allocations,
		leave:       leaveReader,
		members:     members,
	}
}

func (s *ServiceImpl) MemberUtilization(ctx context.Context, date time.Time) (map[int]Result, error) {
	currentCompany, err := company.CurrentCompany(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	members, err := s.members.GetAllMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	currentWeek := week.FromDate(date)
	// The widest window bounds every fetch.
	from := currentWeek.AddWeeks(-(weeksIn90Days - 1)).Start()
	to := currentWeek.End()

	allocations, err := s.fetchAllocations(ctx, currentCompany.Id, from, to)
	if err != nil {
		return nil, err
	}
	leaveHours := s.fetchLeaveHours(ctx, currentCompany.Id, from, to)

	return Calculate(allocations, leaveHours, members, currentCompany.DefaultWeeklyCapacity, currentWeek), nil
}

// fetchAllocations loads active and pre-registered allocations concurrently
// and merges them. Either failure aborts, allocations are the primary
// signal.
func (s *ServiceImpl) fetchAllocations(ctx context.Context, companyId int, from time.Time, to time.Time) ([]allocation.Allocation, error) {
	var active, preRegistered []allocation.Allocation
	var activeErr, preRegisteredErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		active, activeErr = s.allocations.FindForRangeByType(ctx, companyId, from, to, member.Active)
	}()
	go func() {
		defer wg.Done()
		preRegistered, preRegisteredErr = s.allocations.FindForRangeByType(ctx, companyId, from, to, member.PreRegistered)
	}()
	wg.Wait()

	if activeErr != nil {
		return nil, fmt.Errorf("failed to load active member allocations: %w", activeErr)
	}
	if preRegisteredErr != nil {
		return nil, fmt.Errorf("failed to load pre-registered member allocations: %w", preRegisteredErr)
	}
	return append(active, preRegistered...), nil
}

// fetchLeaveHours loads every leave category for the range and folds it into
// hours per member per week. Failures degrade to zero leave, matching the
// schedule aggregation.
func (s *ServiceImpl) fetchLeaveHours(ctx context.Context, companyId int, from time.Time, to time.Time) map[int]map[week.Key]float64 {
	var daily []leave.DailyLeave
	var other, holidays []leave.WeeklyLeave
	var dailyErr, otherErr, holidaysErr error

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		daily, dailyErr = s.leave.FindDailyForRange(ctx, companyId, from, to)
	}()
	go func() {
		defer wg.Done()
		other, otherErr = s.leave.FindWeeklyForRange(ctx, companyId, from, to, leave.Other)
	}()
	go func() {
		defer wg.Done()
		holidays, holidaysErr = s.leave.FindWeeklyForRange(ctx, companyId, from, to, leave.Holiday)
	}()
	wg.Wait()

	if dailyErr != nil {
		log.Warnf("failed to load annual leave for utilization, continuing with zeros: %v", dailyErr)
		daily = nil
	}
	if otherErr != nil {
		log.Warnf("failed to load other leave for utilization, continuing with zeros: %v", otherErr)
		other = nil
	}
	if holidaysErr != nil {
		log.Warnf("failed to load office holidays for utilization, continuing with zeros: %v", holidaysErr)
		holidays = nil
	}

	leaveHours := make(map[int]map[week.Key]float64)
	add := func(memberId int, key week.Key, hours float64) {
		if leaveHours[memberId] == nil {
			leaveHours[memberId] = make(map[week.Key]float64)
		}
		leaveHours[memberId][key] += hours
	}
	for _, l := range daily {
		add(l.MemberId, week.FromDate(l.Date), l.Hours)
	}
	for _, l := range other {
		add(l.MemberId, week.FromDate(l.WeekStart), l.Hours)
	}
	for _, l := range holidays {
		add(l.MemberId, week.FromDate(l.WeekStart), l.Hours)
	}
	return leaveHours
}
