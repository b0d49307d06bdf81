package schedule

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
	"github.com/staffpad/staffpad/pkg/project"
	"github.com/staffpad/staffpad/pkg/week"
)

type Service interface {
	// MemberBreakdowns aggregates allocations and leave of the given members
	// into per-week breakdowns for `weeks` weeks starting at the week
	// containing startDate. The result is the same regardless of which view
	// asked for it.
	MemberBreakdowns(ctx context.Context, members []member.Member, startDate time.Time, weeks int) (BreakdownMap, error)
}

// AllocationReader is the slice of the allocation repository this package needs.
type AllocationReader interface {
	FindForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]allocation.Allocation, error)
}

// LeaveReader is the slice of the leave repository this package needs.
type LeaveReader interface {
	FindDailyForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]leave.DailyLeave, error)
	FindWeeklyForRange(ctx context.Context, companyId int, from time.Time, to time.Time, category leave.Category) ([]leave.WeeklyLeave, error)
}

// ProjectReader resolves project metadata for breakdown project lists.
type ProjectReader interface {
	GetAll(ctx context.Context, companyId int) ([]project.Project, error)
}

type ServiceImpl struct {
	allocations AllocationReader
	leave       LeaveReader
	projects    ProjectReader
}

func NewService(allocations AllocationReader, leaveReader LeaveReader, projects ProjectReader) *ServiceImpl {
	return &ServiceImpl{
		allocations: allocations,
		leave:       leaveReader,
		projects:    projects,
	}
}

func (s *ServiceImpl) MemberBreakdowns(
	ctx context.Context,
	members []member.Member,
	startDate time.Time,
	weeks int,
) (BreakdownMap, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}

	keys := week.Range(startDate, weeks)
	if len(keys) == 0 {
		return BreakdownMap{}, nil
	}
	from := keys[0].Start()
	to := keys[len(keys)-1].End()

	// Every requested (member, week) pair exists up front, zeroed.
	result := make(BreakdownMap, len(members))
	for _, m := range members {
		result[m.Id] = make(map[week.Key]*Breakdown, len(keys))
		for _, key := range keys {
			result[m.Id][key] = &Breakdown{}
		}
	}

	records, err := s.fetchRecords(ctx, companyId, from, to)
	if err != nil {
		return nil, err
	}

	projectsById, err := s.projectIndex(ctx, companyId)
	if err != nil {
		// Breakdown numbers do not depend on project metadata.
		log.Warnf("failed to load project metadata, project names will be empty: %v", err)
		projectsById = map[int]project.Project{}
	}

	for _, a := range records.allocations {
		weeks, ok := result[a.MemberId]
		if !ok {
			continue
		}
		key := week.FromDate(a.WeekStart)
		breakdown, ok := weeks[key]
		if !ok {
			continue
		}
		p := projectsById[a.ProjectId]
		breakdown.AddProject(ProjectShare{
			ProjectId:   a.ProjectId,
			ProjectName: p.Name,
			ProjectCode: p.Code,
			Hours:       a.Hours,
		})
	}

	for _, l := range records.daily {
		if breakdown := result.Get(l.MemberId, week.FromDate(l.Date)); breakdown != nil {
			breakdown.AddAnnualLeave(l.Hours)
		}
	}

	// Weekly entries should already be Monday-aligned, but the source is
	// not trusted to guarantee it.
	for _, l := range records.other {
		if breakdown := result.Get(l.MemberId, week.FromDate(l.WeekStart)); breakdown != nil {
			breakdown.AddOtherLeave(l.Hours)
		}
	}
	for _, l := range records.holidays {
		if breakdown := result.Get(l.MemberId, week.FromDate(l.WeekStart)); breakdown != nil {
			breakdown.AddHoliday(l.Hours)
		}
	}

	return result, nil
}

// recordSets holds the four independently fetched record streams of one
// aggregation call.
type recordSets struct {
	allocations []allocation.Allocation
	daily       []leave.DailyLeave
	other       []leave.WeeklyLeave
	holidays    []leave.WeeklyLeave
}

// fetchRecords issues the four fetches concurrently. A failed allocations
// fetch aborts the aggregation; failed leave fetches degrade to zero hours
// for that category, because a grid without leave is less harmful than one
// that fails to render project hours.
func (s *ServiceImpl) fetchRecords(ctx context.Context, companyId int, from time.Time, to time.Time) (recordSets, error) {
	var records recordSets
	var allocationsErr, dailyErr, otherErr, holidaysErr error

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		records.allocations, allocationsErr = s.allocations.FindForRange(ctx, companyId, from, to)
	}()
	go func() {
		defer wg.Done()
		records.daily, dailyErr = s.leave.FindDailyForRange(ctx, companyId, from, to)
	}()
	go func() {
		defer wg.Done()
		records.other, otherErr = s.leave.FindWeeklyForRange(ctx, companyId, from, to, leave.Other)
	}()
	go func() {
		defer wg.Done()
		records.holidays, holidaysErr = s.leave.FindWeeklyForRange(ctx, companyId, from, to, leave.Holiday)
	}()
	wg.Wait()

	if allocationsErr != nil {
		return recordSets{}, fmt.Errorf("failed to load allocations: %w", allocationsErr)
	}
	if dailyErr != nil {
		log.Warnf("failed to load annual leave, continuing with zeros: %v", dailyErr)
		records.daily = nil
	}
	if otherErr != nil {
		log.Warnf("failed to load other leave, continuing with zeros: %v", otherErr)
		records.other = nil
	}
	if holidaysErr != nil {
		log.Warnf("failed to load office holidays, continuing with zeros: %v", holidaysErr)
		records.holidays = nil
	}
	return records, nil
}

func (s *ServiceImpl) projectIndex(ctx context.Context, companyId int) (map[int]project.Project, error) {
	projects, err := s.projects.GetAll(ctx, companyId)
	if err != nil {
		return nil, err
	}
	index := make(map[int]project.Project, len(projects))
	for _, p := range projects {
		index[p.Id] = p
	}
	return index, nil
}
