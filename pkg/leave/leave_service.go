package leave

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/internal/event_bus"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/week"
)

type Service interface {
	RecordAnnualLeave(ctx context.Context, memberId int, date time.Time, hours float64) (DailyLeave, error)
	RecordWeeklyLeave(ctx context.Context, memberId int, weekDate time.Time, hours float64, category Category) (WeeklyLeave, error)
	DailyForRange(ctx context.Context, from time.Time, to time.Time) ([]DailyLeave, error)
	WeeklyForRange(ctx context.Context, from time.Time, to time.Time, category Category) ([]WeeklyLeave, error)
	// TotalHoursForWeek sums all leave categories of one member in one week.
	TotalHoursForWeek(ctx context.Context, memberId int, key week.Key) (float64, error)
	DeleteDaily(ctx context.Context, id int) error
	DeleteWeekly(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo     Repo
	eventBus *event_bus.EventBus
}

func NewService(repo Repo, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) RecordAnnualLeave(ctx context.Context, memberId int, date time.Time, hours float64) (DailyLeave, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return DailyLeave{}, fmt.Errorf("failed to get current company: %w", err)
	}
	if hours <= 0 {
		return DailyLeave{}, fmt.Errorf("leave hours must be positive")
	}
	l := DailyLeave{CompanyId: companyId, MemberId: memberId, Date: date, Hours: hours}
	id, err := s.repo.AddDaily(ctx, companyId, l)
	if err != nil {
		return DailyLeave{}, err
	}
	l.Id = id
	s.publishUpdated(ctx, companyId, memberId, Annual, week.FromDate(date).Start())
	return l, nil
}

func (s *ServiceImpl) RecordWeeklyLeave(
	ctx context.Context,
	memberId int,
	weekDate time.Time,
	hours float64,
	category Category,
) (WeeklyLeave, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return WeeklyLeave{}, fmt.Errorf("failed to get current company: %w", err)
	}
	if hours <= 0 {
		return WeeklyLeave{}, fmt.Errorf("leave hours must be positive")
	}
	if category != Other && category != Holiday {
		return WeeklyLeave{}, fmt.Errorf("unsupported weekly leave category: %s", category)
	}
	// Week starts are stored Monday-aligned regardless of what the caller sent.
	weekStart := week.FromDate(weekDate).Start()
	l := WeeklyLeave{CompanyId: companyId, MemberId: memberId, WeekStart: weekStart, Hours: hours, Category: category}
	id, err := s.repo.AddWeekly(ctx, companyId, l)
	if err != nil {
		return WeeklyLeave{}, err
	}
	l.Id = id
	s.publishUpdated(ctx, companyId, memberId, category, weekStart)
	return l, nil
}

func (s *ServiceImpl) DailyForRange(ctx context.Context, from time.Time, to time.Time) ([]DailyLeave, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.FindDailyForRange(ctx, companyId, from, to)
}

func (s *ServiceImpl) WeeklyForRange(ctx context.Context, from time.Time, to time.Time, category Category) ([]WeeklyLeave, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	return s.repo.FindWeeklyForRange(ctx, companyId, from, to, category)
}

func (s *ServiceImpl) TotalHoursForWeek(ctx context.Context, memberId int, key week.Key) (float64, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current company: %w", err)
	}

	total := 0.0
	daily, err := s.repo.FindDailyForRange(ctx, companyId, key.Start(), key.End())
	if err != nil {
		return 0, fmt.Errorf("failed to read daily leave: %w", err)
	}
	for _, l := range daily {
		if l.MemberId == memberId {
			total += l.Hours
		}
	}

	for _, category := range []Category{Other, Holiday} {
		weekly, err := s.repo.FindWeeklyForRange(ctx, companyId, key.Start(), key.Start(), category)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s leave: %w", category, err)
		}
		for _, l := range weekly {
			if l.MemberId == memberId {
				total += l.Hours
			}
		}
	}
	return total, nil
}

func (s *ServiceImpl) DeleteDaily(ctx context.Context, id int) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current company: %w", err)
	}
	ok, err := s.repo.DeleteDaily(ctx, companyId, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLeaveNotFound
	}
	s.publishUpdated(ctx, companyId, 0, Annual, time.Time{})
	return nil
}

func (s *ServiceImpl) DeleteWeekly(ctx context.Context, id int) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current company: %w", err)
	}
	ok, err := s.repo.DeleteWeekly(ctx, companyId, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLeaveNotFound
	}
	s.publishUpdated(ctx, companyId, 0, Other, time.Time{})
	return nil
}

func (s *ServiceImpl) publishUpdated(ctx context.Context, companyId int, memberId int, category Category, weekStart time.Time) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.LeaveUpdatedEvent, event_bus.LeaveUpdated{
		CompanyId: companyId,
		MemberId:  memberId,
		Category:  string(category),
		WeekStart: weekStart,
	}))
	if err != nil {
		log.Errorf("failed to publish leave update: %v", err)
	}
}
