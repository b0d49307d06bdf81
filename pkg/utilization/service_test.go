package utilization

import (
	"context"
	"errors"
	"testing"

	"github.com/staffpad/staffpad/pkg/allocation"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/leave"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/stretchr/testify/assert"
)

type stubMemberLister struct {
	members []member.Member
	err     error
}

func (s *stubMemberLister) GetAllMembers(ctx context.Context) ([]member.Member, error) {
	return s.members, s.err
}

func serviceSetup(members ...member.Member) (*ServiceImpl, *allocation.StubRepo, *leave.StubRepo, context.Context) {
	allocations := allocation.NewStubRepo()
	leaveRepo := leave.NewStubRepo()
	service := NewService(allocations, leaveRepo, &stubMemberLister{members: members})
	ctx := company.WithCompany(context.Background(), company.Company{Id: 1, DefaultWeeklyCapacity: 40})
	return service, allocations, leaveRepo, ctx
}

func TestMemberUtilization_MergesActiveAndPreRegistered(t *testing.T) {
	service, allocations, _, ctx := serviceSetup(
		member.Member{Id: 1, Type: member.Active},
		member.Member{Id: 2, Type: member.PreRegistered},
	)
	active := weeklyAllocation(1, 0, 20)
	active.MemberType = member.Active
	invited := weeklyAllocation(2, 0, 40)
	invited.MemberType = member.PreRegistered
	allocations.Add(active)
	allocations.Add(invited)

	results, err := service.MemberUtilization(ctx, currentWeek.Start())

	// one output map regardless of which filter a member came through
	assert.NoError(t, err)
	assert.Equal(t, 50, results[1].Days7)
	assert.Equal(t, 100, results[2].Days7)
}

func TestMemberUtilization_AllocationFailureAborts(t *testing.T) {
	service, allocations, _, ctx := serviceSetup(member.Member{Id: 1, Type: member.Active})
	allocations.FailWith(errors.New("allocations backend down"))

	_, err := service.MemberUtilization(ctx, currentWeek.Start())

	assert.Error(t, err)
}

func TestMemberUtilization_LeaveFailureDegrades(t *testing.T) {
	service, allocations, leaveRepo, ctx := serviceSetup(member.Member{Id: 1, Type: member.Active})
	a := weeklyAllocation(1, 0, 40)
	a.MemberType = member.Active
	allocations.Add(a)
	leaveRepo.DailyErr = errors.New("annual leave backend down")

	results, err := service.MemberUtilization(ctx, currentWeek.Start())

	assert.NoError(t, err)
	assert.Equal(t, 100, results[1].Days7)
	assert.Equal(t, 40.0, results[1].TotalAllocated.Days7)
}

func TestMemberUtilization_LeaveFoldedIntoTotals(t *testing.T) {
	service, _, leaveRepo, ctx := serviceSetup(member.Member{Id: 1, Type: member.Active})
	_, err := leaveRepo.AddDaily(ctx, 1, leave.DailyLeave{MemberId: 1, Date: currentWeek.Start().AddDate(0, 0, 1), Hours: 8})
	assert.NoError(t, err)
	_, err = leaveRepo.AddWeekly(ctx, 1, leave.WeeklyLeave{MemberId: 1, WeekStart: currentWeek.Start(), Hours: 4, Category: leave.Holiday})
	assert.NoError(t, err)

	results, err := service.MemberUtilization(ctx, currentWeek.Start())

	assert.NoError(t, err)
	assert.Equal(t, 0, results[1].Days7)
	assert.Equal(t, 12.0, results[1].TotalAllocated.Days7)
}

func TestMemberUtilization_NoCompanyInContext(t *testing.T) {
	service, _, _, _ := serviceSetup(member.Member{Id: 1})

	_, err := service.MemberUtilization(context.Background(), currentWeek.Start())

	assert.Error(t, err)
}

func TestMemberUtilization_MembersWithoutRecords(t *testing.T) {
	service, _, _, ctx := serviceSetup(
		member.Member{Id: 1, Type: member.Active},
		member.Member{Id: 2, Type: member.PreRegistered},
	)

	results, err := service.MemberUtilization(ctx, currentWeek.Start())

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, Result{MemberId: 1}, results[1])
	assert.Equal(t, Result{MemberId: 2}, results[2])
}
