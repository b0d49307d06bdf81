package allocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/staffpad/staffpad/internal/event_bus"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
	"github.com/stretchr/testify/assert"
)

type memberReaderStub struct {
	members map[string]member.Member
}

func (s *memberReaderStub) GetMemberByUid(ctx context.Context, uid string) (member.Member, error) {
	m, ok := s.members[uid]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, nil
}

type leaveReaderStub struct {
	hours float64
	err   error
}

func (s *leaveReaderStub) TotalHoursForWeek(ctx context.Context, memberId int, key week.Key) (float64, error) {
	return s.hours, s.err
}

func setupAllocationService(t *testing.T) (*ServiceImpl, *StubRepo, *leaveReaderStub, context.Context) {
	t.Helper()
	repo := NewStubRepo()
	members := &memberReaderStub{members: map[string]member.Member{
		"uid-1": {Id: 1, Uid: "uid-1", CompanyId: 1, DisplayName: "Member One", Type: member.Active},
	}}
	leave := &leaveReaderStub{}
	service := NewService(repo, members, leave, event_bus.NewEventBus(), 200)
	ctx := company.WithCompany(context.Background(), company.Company{Id: 1, DefaultWeeklyCapacity: 40})
	return service, repo, leave, ctx
}

func TestServiceImpl_SetAllocation_HoursMode(t *testing.T) {
	service, _, _, ctx := setupAllocationService(t)
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	// when
	stored, validation, err := service.SetAllocation(ctx, "uid-1", 7, wednesday, "16", ModeHours)

	// then
	assert.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, 16.0, stored.Hours)
	// the stored week start is the Monday of the requested week
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), stored.WeekStart)
}

func TestServiceImpl_SetAllocation_PercentageMode(t *testing.T) {
	service, _, _, ctx := setupAllocationService(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	stored, validation, err := service.SetAllocation(ctx, "uid-1", 7, monday, "25", ModePercentage)

	assert.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, 10.0, stored.Hours)
}

func TestServiceImpl_SetAllocation_RejectsOverCeiling(t *testing.T) {
	service, repo, leave, ctx := setupAllocationService(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// given an existing 60h on another project and 15h of leave
	repo.Add(Allocation{CompanyId: 1, MemberId: 1, ProjectId: 99, WeekStart: monday, Hours: 60, MemberType: member.Active})
	leave.hours = 15

	// when 10 more hours would push the total past 200% of a 40h week
	_, validation, err := service.SetAllocation(ctx, "uid-1", 7, monday, "10", ModeHours)

	// then the edit is rejected as a validation result, not an error
	assert.NoError(t, err)
	assert.False(t, validation.Valid)
	assert.Equal(t, 85.0, validation.TotalHours)
	assert.Equal(t, 212.5, validation.TotalPercent)

	stored, err := service.ListForRange(ctx, monday, 1)
	assert.NoError(t, err)
	assert.Len(t, stored, 1, "rejected allocation must not be stored")
}

func TestServiceImpl_SetAllocation_LeaveFetchFailureDegrades(t *testing.T) {
	service, _, leave, ctx := setupAllocationService(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	leave.err = errors.New("leave backend down")

	// the ceiling check falls back to allocations only
	stored, validation, err := service.SetAllocation(ctx, "uid-1", 7, monday, "20", ModeHours)

	assert.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Equal(t, 20.0, stored.Hours)
}

func TestServiceImpl_SetAllocation_SameProjectReplaced(t *testing.T) {
	service, _, _, ctx := setupAllocationService(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, _, err := service.SetAllocation(ctx, "uid-1", 7, monday, "10", ModeHours)
	assert.NoError(t, err)
	_, validation, err := service.SetAllocation(ctx, "uid-1", 7, monday, "30", ModeHours)
	assert.NoError(t, err)
	assert.True(t, validation.Valid)

	stored, err := service.ListForRange(ctx, monday, 1)
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, 30.0, stored[0].Hours)
}

func TestServiceImpl_SetAllocation_PublishesEvent(t *testing.T) {
	service, _, _, ctx := setupAllocationService(t)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	var received []event_bus.AllocationUpdated
	bus := event_bus.NewEventBus()
	event_bus.SubscribeTyped[event_bus.AllocationUpdated](
		bus,
		event_bus.AllocationUpdatedEvent,
		func(e event_bus.EventT[event_bus.AllocationUpdated]) error {
			received = append(received, e.Data)
			return nil
		},
	)
	service.eventBus = bus

	_, _, err := service.SetAllocation(ctx, "uid-1", 7, monday, "10", ModeHours)

	assert.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Equal(t, 1, received[0].CompanyId)
	assert.Equal(t, 10.0, received[0].Hours)
}
