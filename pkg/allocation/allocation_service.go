package allocation

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/internal/event_bus"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
)

type Service interface {
	// ListForRange returns all allocations of the company whose week falls
	// inside the window of `weeks` weeks starting at the week containing from.
	ListForRange(ctx context.Context, from time.Time, weeks int) ([]Allocation, error)
	// SetAllocation parses the user's input through the codec, validates the
	// member's total commitment, and stores the result. A failed validation
	// is returned in TotalValidation, not as an error.
	SetAllocation(ctx context.Context, memberUid string, projectId int, weekDate time.Time, input string, mode Mode) (Allocation, TotalValidation, error)
	DeleteAllocation(ctx context.Context, id int) error
}

// MemberReader is the slice of the member service this package needs.
type MemberReader interface {
	GetMemberByUid(ctx context.Context, uid string) (member.Member, error)
}

// LeaveReader reports a member's total leave hours in one week, all
// categories combined. Used for the total-commitment ceiling check.
type LeaveReader interface {
	TotalHoursForWeek(ctx context.Context, memberId int, key week.Key) (float64, error)
}

type ServiceImpl struct {
	repo       Repo
	members    MemberReader
	leave      LeaveReader
	eventBus   *event_bus.EventBus
	maxPercent float64
}

func NewService(repo Repo, members MemberReader, leave LeaveReader, eventBus *event_bus.EventBus, maxPercent float64) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		members:    members,
		leave:      leave,
		eventBus:   eventBus,
		maxPercent: maxPercent,
	}
}

func (s *ServiceImpl) ListForRange(ctx context.Context, from time.Time, weeks int) ([]Allocation, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	keys := week.Range(from, weeks)
	if len(keys) == 0 {
		return []Allocation{}, nil
	}
	return s.repo.FindForRange(ctx, companyId, keys[0].Start(), keys[len(keys)-1].Start())
}

func (s *ServiceImpl) SetAllocation(
	ctx context.Context,
	memberUid string,
	projectId int,
	weekDate time.Time,
	input string,
	mode Mode,
) (Allocation, TotalValidation, error) {
	currentCompany, err := company.CurrentCompany(ctx)
	if err != nil {
		return Allocation{}, TotalValidation{}, fmt.Errorf("failed to get current company: %w", err)
	}
	m, err := s.members.GetMemberByUid(ctx, memberUid)
	if err != nil {
		return Allocation{}, TotalValidation{}, fmt.Errorf("failed to resolve member: %w", err)
	}

	capacity := m.Capacity(currentCompany.DefaultWeeklyCapacity)
	hours := ParseInputToHours(input, capacity, mode)
	key := week.FromDate(weekDate)

	otherProjectsHours, err := s.otherProjectsHours(ctx, currentCompany.Id, m.Id, projectId, key)
	if err != nil {
		return Allocation{}, TotalValidation{}, err
	}
	leaveHours, err := s.leave.TotalHoursForWeek(ctx, m.Id, key)
	if err != nil {
		// The ceiling check degrades to allocations only; an unreadable
		// leave set must not block allocation edits.
		log.Warnf("failed to read leave hours for member %d week %s: %v", m.Id, key, err)
		leaveHours = 0
	}

	validation := ValidateTotalAllocation(hours, otherProjectsHours, leaveHours, capacity, s.maxPercent)
	if !validation.Valid {
		log.Debugf("allocation rejected for member %s week %s: %s", memberUid, key, validation.Message)
		return Allocation{}, validation, nil
	}

	stored, err := s.repo.Upsert(ctx, currentCompany.Id, Allocation{
		MemberId:   m.Id,
		ProjectId:  projectId,
		WeekStart:  key.Start(),
		Hours:      hours,
		MemberType: m.Type,
	})
	if err != nil {
		return Allocation{}, TotalValidation{}, fmt.Errorf("failed to store allocation: %w", err)
	}

	s.publishUpdated(ctx, stored)
	return stored, validation, nil
}

func (s *ServiceImpl) DeleteAllocation(ctx context.Context, id int) error {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current company: %w", err)
	}
	ok, err := s.repo.Delete(ctx, companyId, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAllocationNotFound
	}
	s.publishUpdated(ctx, Allocation{Id: id, CompanyId: companyId})
	return nil
}

func (s *ServiceImpl) otherProjectsHours(ctx context.Context, companyId int, memberId int, projectId int, key week.Key) (float64, error) {
	weekAllocations, err := s.repo.FindForRange(ctx, companyId, key.Start(), key.Start())
	if err != nil {
		return 0, fmt.Errorf("failed to read existing allocations: %w", err)
	}
	total := 0.0
	for _, a := range weekAllocations {
		if a.MemberId == memberId && a.ProjectId != projectId {
			total += a.Hours
		}
	}
	return total, nil
}

func (s *ServiceImpl) publishUpdated(ctx context.Context, a Allocation) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.AllocationUpdatedEvent, event_bus.AllocationUpdated{
		CompanyId: a.CompanyId,
		MemberId:  a.MemberId,
		ProjectId: a.ProjectId,
		WeekStart: a.WeekStart,
		Hours:     a.Hours,
	}))
	if err != nil {
		log.Errorf("failed to publish allocation update: %v", err)
	}
}
