package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/staffpad/staffpad/pkg/allocation"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/leave"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/project"
	"github.com/staffpad/staffpad/pkg/week"
	"github.com/stretchr/testify/assert"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*ServiceImpl, *allocation.StubRepo, *leave.StubRepo, *project.StubRepo, context.Context) {
	t.Helper()
	allocations := allocation.NewStubRepo()
	leaveRepo := leave.NewStubRepo()
	projects := project.NewStubRepo()
	service := NewService(allocations, leaveRepo, projects)
	ctx := company.WithCompany(context.Background(), company.Company{Id: 1, DefaultWeeklyCapacity: 40})
	return service, allocations, leaveRepo, projects, ctx
}

func roster(ids ...int) []member.Member {
	members := make([]member.Member, 0, len(ids))
	for _, id := range ids {
		members = append(members, member.Member{Id: id, CompanyId: 1, Type: member.Active})
	}
	return members
}

func TestMemberBreakdowns_Additivity(t *testing.T) {
	service, allocations, leaveRepo, _, ctx := setup(t)

	// given a 10h project allocation and a 5h annual-leave day in the same week
	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 1, ProjectId: 7, WeekStart: monday, Hours: 10})
	_, err := leaveRepo.AddDaily(ctx, 1, leave.DailyLeave{MemberId: 1, Date: monday.AddDate(0, 0, 2), Hours: 5})
	assert.NoError(t, err)

	// when
	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	// then
	assert.NoError(t, err)
	breakdown := result.Get(1, week.FromDate(monday))
	assert.NotNil(t, breakdown)
	assert.Equal(t, 10.0, breakdown.ProjectHours)
	assert.Equal(t, 5.0, breakdown.AnnualLeave)
	assert.Equal(t, 15.0, breakdown.Total)
}

func TestMemberBreakdowns_WeekNormalization(t *testing.T) {
	service, allocations, leaveRepo, _, ctx := setup(t)

	// a daily leave record dated Wednesday and an allocation whose week
	// start is the preceding Monday must land in the same week
	wednesday := monday.AddDate(0, 0, 2)
	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 1, ProjectId: 7, WeekStart: monday, Hours: 8})
	_, err := leaveRepo.AddDaily(ctx, 1, leave.DailyLeave{MemberId: 1, Date: wednesday, Hours: 8})
	assert.NoError(t, err)
	// and a weekly entry carrying a mid-week date instead of a Monday
	_, err = leaveRepo.AddWeekly(ctx, 1, leave.WeeklyLeave{MemberId: 1, WeekStart: wednesday, Hours: 4, Category: leave.Other})
	assert.NoError(t, err)

	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.NoError(t, err)
	breakdown := result.Get(1, week.FromDate(monday))
	assert.Equal(t, 8.0, breakdown.ProjectHours)
	assert.Equal(t, 8.0, breakdown.AnnualLeave)
	assert.Equal(t, 4.0, breakdown.OtherLeave)
	assert.Equal(t, 20.0, breakdown.Total)
}

func TestMemberBreakdowns_ZeroFill(t *testing.T) {
	service, _, _, _, ctx := setup(t)

	// no records at all
	result, err := service.MemberBreakdowns(ctx, roster(1, 2, 3), monday, 4)

	assert.NoError(t, err)
	assert.Len(t, result, 3)
	for memberId := 1; memberId <= 3; memberId++ {
		assert.Len(t, result[memberId], 4)
		for _, key := range week.Range(monday, 4) {
			breakdown := result.Get(memberId, key)
			assert.NotNil(t, breakdown, "member %d week %s missing", memberId, key)
			assert.Equal(t, 0.0, breakdown.Total)
		}
	}
}

func TestMemberBreakdowns_DuplicateProjectAllocationsSum(t *testing.T) {
	service, allocations, _, _, ctx := setup(t)

	// two allocations to the same project in the same week are legitimate
	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 1, ProjectId: 7, WeekStart: monday, Hours: 6})
	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 1, ProjectId: 7, WeekStart: monday, Hours: 4})

	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.NoError(t, err)
	breakdown := result.Get(1, week.FromDate(monday))
	assert.Equal(t, 10.0, breakdown.ProjectHours)
	assert.Len(t, breakdown.Projects, 2, "entries must not be deduplicated")
}

func TestMemberBreakdowns_AllocationFetchFailureAborts(t *testing.T) {
	service, allocations, _, _, ctx := setup(t)
	allocations.FailWith(errors.New("allocations backend down"))

	_, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load allocations")
}

func TestMemberBreakdowns_LeaveFetchFailureDegrades(t *testing.T) {
	service, allocations, leaveRepo, _, ctx := setup(t)

	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 1, ProjectId: 7, WeekStart: monday, Hours: 10})
	leaveRepo.DailyErr = errors.New("annual leave backend down")
	leaveRepo.WeeklyErr[leave.Other] = errors.New("other leave backend down")

	// leave failures degrade to zeros, project hours still render
	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.NoError(t, err)
	breakdown := result.Get(1, week.FromDate(monday))
	assert.Equal(t, 10.0, breakdown.ProjectHours)
	assert.Equal(t, 0.0, breakdown.AnnualLeave)
	assert.Equal(t, 0.0, breakdown.OtherLeave)
	assert.Equal(t, 10.0, breakdown.Total)
}

func TestMemberBreakdowns_HolidaysAggregateLikeOtherLeave(t *testing.T) {
	service, _, leaveRepo, _, ctx := setup(t)

	_, err := leaveRepo.AddWeekly(ctx, 1, leave.WeeklyLeave{MemberId: 1, WeekStart: monday, Hours: 8, Category: leave.Holiday})
	assert.NoError(t, err)

	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.NoError(t, err)
	breakdown := result.Get(1, week.FromDate(monday))
	assert.Equal(t, 8.0, breakdown.OfficeHolidays)
	assert.Equal(t, 0.0, breakdown.OtherLeave)
	assert.Equal(t, 8.0, breakdown.Total)
}

func TestMemberBreakdowns_ProjectMetadataResolved(t *testing.T) {
	service, allocations, _, projects, ctx := setup(t)

	projectId, err := projects.Create(ctx, 1, project.Project{Name: "Atlas", Code: "ATL"})
	assert.NoError(t, err)
	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 1, ProjectId: projectId, WeekStart: monday, Hours: 10})

	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.NoError(t, err)
	breakdown := result.Get(1, week.FromDate(monday))
	assert.Len(t, breakdown.Projects, 1)
	assert.Equal(t, "Atlas", breakdown.Projects[0].ProjectName)
	assert.Equal(t, "ATL", breakdown.Projects[0].ProjectCode)
}

// The breakdown invariant: after any sequence of merges, Total equals the
// sum of the category fields.
func TestBreakdown_TotalStaysConsistent(t *testing.T) {
	b := &Breakdown{}
	assertConsistent := func() {
		t.Helper()
		assert.Equal(t, b.ProjectHours+b.AnnualLeave+b.OtherLeave+b.OfficeHolidays, b.Total)
	}

	assertConsistent()
	b.AddProject(ProjectShare{ProjectId: 1, Hours: 10})
	assertConsistent()
	b.AddAnnualLeave(5)
	assertConsistent()
	b.AddOtherLeave(2.5)
	assertConsistent()
	b.AddHoliday(8)
	assertConsistent()
	b.AddProject(ProjectShare{ProjectId: 2, Hours: 0.5})
	assertConsistent()
	assert.Equal(t, 26.0, b.Total)
}

func TestMemberBreakdowns_RecordsOutsideRosterIgnored(t *testing.T) {
	service, allocations, _, _, ctx := setup(t)

	allocations.Add(allocation.Allocation{CompanyId: 1, MemberId: 99, ProjectId: 7, WeekStart: monday, Hours: 10})

	result, err := service.MemberBreakdowns(ctx, roster(1), monday, 1)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Nil(t, result.Get(99, week.FromDate(monday)))
}
