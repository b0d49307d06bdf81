package schedule

import (
	"github.com/staffpad/staffpad/pkg/week"
)

// ProjectShare is one allocation line inside a week. Multiple allocations
// to the same project are kept as separate entries; consumers that want a
// per-project figure sum them.
type ProjectShare struct {
	ProjectId   int
	ProjectName string
	ProjectCode string
	Hours       float64
}

// Breakdown is one member's week. Total always equals
// ProjectHours + AnnualLeave + OtherLeave + OfficeHolidays; the accumulator
// methods below are the only way hours enter a Breakdown, which is what
// keeps the invariant true after every merge step.
type Breakdown struct {
	ProjectHours   float64
	AnnualLeave    float64
	OtherLeave     float64
	OfficeHolidays float64
	Total          float64
	Projects       []ProjectShare
}

func (b *Breakdown) AddProject(share ProjectShare) {
	b.ProjectHours += share.Hours
	b.Total += share.Hours
	b.Projects = append(b.Projects, share)
}

func (b *Breakdown) AddAnnualLeave(hours float64) {
	b.AnnualLeave += hours
	b.Total += hours
}

func (b *Breakdown) AddOtherLeave(hours float64) {
	b.OtherLeave += hours
	b.Total += hours
}

func (b *Breakdown) AddHoliday(hours float64) {
	b.OfficeHolidays += hours
	b.Total += hours
}

// BreakdownMap is the aggregation result: member id → week → breakdown.
// Every requested (member, week) pair is present, zeroed when no records
// matched, so consumers never need existence checks.
type BreakdownMap map[int]map[week.Key]*Breakdown

// Get returns the breakdown for (memberId, key), or nil when the pair was
// not part of the aggregation window.
func (m BreakdownMap) Get(memberId int, key week.Key) *Breakdown {
	weeks, ok := m[memberId]
	if !ok {
		return nil
	}
	return weeks[key]
}
