package utilization

import (
	"math"

	"github.com/staffpad/staffpad/pkg/allocation"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
)

// Rolling windows, expressed in Monday-aligned weeks ending at the current
// week. "7 days" is the current week alone, "30 days" the current week plus
// the four before it, "90 days" the current week plus the twelve before it.
const (
	weeksIn7Days  = 1
	weeksIn30Days = 5
	weeksIn90Days = 13
)

// WindowHours carries uncapped allocated hours per rolling window, with
// leave included. Workload views want the raw figure, not a display
// percentage.
type WindowHours struct {
	Days7  float64
	Days30 float64
	Days90 float64
}

// Result is one member's utilization. Days7/Days30/Days90 are percentages of
// capacity covered by project allocations alone, rounded to an integer and
// capped at 100: they answer "how full is this person", not "how
// overcommitted". TotalAllocated is the complementary uncapped figure and
// counts leave as well.
type Result struct {
	MemberId       int
	Days7          int
	Days30         int
	Days90         int
	TotalAllocated WindowHours
}

// Calculate computes rolling-window utilization for every roster member.
// leaveHours maps member id and week to total leave hours of any category.
// Members without any matching records still get a zeroed Result.
func Calculate(
	allocations []allocation.Allocation,
	leaveHours map[int]map[week.Key]float64,
	members []member.Member,
	defaultCapacity float64,
	currentWeek week.Key,
) map[int]Result {
	allocated := make(map[int]map[week.Key]float64)
	for _, a := range allocations {
		key := week.FromDate(a.WeekStart)
		if allocated[a.MemberId] == nil {
			allocated[a.MemberId] = make(map[week.Key]float64)
		}
		allocated[a.MemberId][key] += a.Hours
	}

	results := make(map[int]Result, len(members))
	for _, m := range members {
		capacity := m.Capacity(defaultCapacity)
		r := Result{MemberId: m.Id}

		projectHours7, totalHours7 := windowHours(allocated[m.Id], leaveHours[m.Id], currentWeek, weeksIn7Days)
		projectHours30, totalHours30 := windowHours(allocated[m.Id], leaveHours[m.Id], currentWeek, weeksIn30Days)
		projectHours90, totalHours90 := windowHours(allocated[m.Id], leaveHours[m.Id], currentWeek, weeksIn90Days)

		r.Days7 = windowPercentage(projectHours7, capacity*weeksIn7Days)
		r.Days30 = windowPercentage(projectHours30, capacity*weeksIn30Days)
		r.Days90 = windowPercentage(projectHours90, capacity*weeksIn90Days)
		r.TotalAllocated = WindowHours{
			Days7:  totalHours7,
			Days30: totalHours30,
			Days90: totalHours90,
		}
		results[m.Id] = r
	}
	return results
}

// windowHours sums one member's hours over the window of the given number of
// weeks ending at currentWeek: project allocations alone, and project
// allocations plus leave.
func windowHours(
	allocated map[week.Key]float64,
	leave map[week.Key]float64,
	currentWeek week.Key,
	weeks int,
) (projectHours float64, totalHours float64) {
	key := currentWeek.AddWeeks(-(weeks - 1))
	for i := 0; i < weeks; i++ {
		projectHours += allocated[key]
		totalHours += allocated[key] + leave[key]
		key = key.Next()
	}
	return projectHours, totalHours
}

func windowPercentage(hours float64, totalCapacity float64) int {
	if totalCapacity <= 0 {
		return 0
	}
	percentage := int(math.Round(hours / totalCapacity * 100))
	if percentage > 100 {
		return 100
	}
	return percentage
}
