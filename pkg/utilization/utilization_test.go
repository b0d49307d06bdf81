package utilization

import (
	"testing"
	"time"

	"github.com/staffpad/staffpad/pkg/allocation"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
	"github.com/stretchr/testify/assert"
)

var currentWeek = week.FromDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

func capacity(hours float64) *float64 {
	return &hours
}

func weeklyAllocation(memberId int, weeksAgo int, hours float64) allocation.Allocation {
	return allocation.Allocation{
		CompanyId: 1,
		MemberId:  memberId,
		ProjectId: 7,
		WeekStart: currentWeek.AddWeeks(-weeksAgo).Start(),
		Hours:     hours,
	}
}

func TestCalculate_CapsAtHundred(t *testing.T) {
	// 200% of capacity in the current week
	allocations := []allocation.Allocation{weeklyAllocation(1, 0, 80)}
	members := []member.Member{{Id: 1}}

	results := Calculate(allocations, nil, members, 40, currentWeek)

	assert.Equal(t, 100, results[1].Days7)
}

func TestCalculate_WindowWidths(t *testing.T) {
	// one fully booked current week against capacity 40
	allocations := []allocation.Allocation{weeklyAllocation(1, 0, 40)}
	members := []member.Member{{Id: 1}}

	results := Calculate(allocations, nil, members, 40, currentWeek)

	assert.Equal(t, 100, results[1].Days7)
	// 40h over 5 weeks of 40h
	assert.Equal(t, 20, results[1].Days30)
	// 40h over 13 weeks of 40h, 7.69 rounds to 8
	assert.Equal(t, 8, results[1].Days90)
}

func TestCalculate_WindowBoundaries(t *testing.T) {
	allocations := []allocation.Allocation{
		// inside days90 but outside days30
		weeklyAllocation(1, 12, 40),
		// outside every window
		weeklyAllocation(1, 13, 40),
		// next week is outside every window too
		weeklyAllocation(1, -1, 40),
	}
	members := []member.Member{{Id: 1}}

	results := Calculate(allocations, nil, members, 40, currentWeek)

	assert.Equal(t, 0, results[1].Days7)
	assert.Equal(t, 0, results[1].Days30)
	assert.Equal(t, 8, results[1].Days90)
}

func TestCalculate_AbsentMembersDefaultToZero(t *testing.T) {
	allocations := []allocation.Allocation{weeklyAllocation(1, 0, 40)}
	members := []member.Member{{Id: 1}, {Id: 2}}

	results := Calculate(allocations, nil, members, 40, currentWeek)

	assert.Contains(t, results, 2)
	assert.Equal(t, Result{MemberId: 2}, results[2])
}

func TestCalculate_MemberCapacityOverridesDefault(t *testing.T) {
	allocations := []allocation.Allocation{weeklyAllocation(1, 0, 10)}
	members := []member.Member{{Id: 1, WeeklyCapacity: capacity(20)}}

	results := Calculate(allocations, nil, members, 40, currentWeek)

	assert.Equal(t, 50, results[1].Days7)
}

func TestCalculate_ZeroCapacityYieldsZero(t *testing.T) {
	allocations := []allocation.Allocation{weeklyAllocation(1, 0, 10)}
	members := []member.Member{{Id: 1}}

	results := Calculate(allocations, nil, members, 0, currentWeek)

	assert.Equal(t, 0, results[1].Days7)
}

func TestCalculate_TotalAllocatedIncludesLeaveAndIsUncapped(t *testing.T) {
	allocations := []allocation.Allocation{weeklyAllocation(1, 0, 80)}
	leaveHours := map[int]map[week.Key]float64{
		1: {currentWeek: 8},
	}
	members := []member.Member{{Id: 1}}

	results := Calculate(allocations, leaveHours, members, 40, currentWeek)

	// the percentage caps, the hour figure does not
	assert.Equal(t, 100, results[1].Days7)
	assert.Equal(t, 88.0, results[1].TotalAllocated.Days7)
	assert.Equal(t, 88.0, results[1].TotalAllocated.Days30)
}

func TestCalculate_LeaveDoesNotCountTowardUtilizationPercentage(t *testing.T) {
	leaveHours := map[int]map[week.Key]float64{
		1: {currentWeek: 40},
	}
	members := []member.Member{{Id: 1}}

	results := Calculate(nil, leaveHours, members, 40, currentWeek)

	assert.Equal(t, 0, results[1].Days7)
	assert.Equal(t, 40.0, results[1].TotalAllocated.Days7)
}

func TestCalculate_MidWeekDatesNormalize(t *testing.T) {
	// a record stamped Thursday counts toward its Monday-aligned week
	thursday := currentWeek.Start().AddDate(0, 0, 3)
	allocations := []allocation.Allocation{{CompanyId: 1, MemberId: 1, ProjectId: 7, WeekStart: thursday, Hours: 20}}
	members := []member.Member{{Id: 1}}

	results := Calculate(allocations, nil, members, 40, currentWeek)

	assert.Equal(t, 50, results[1].Days7)
}
