package event_bus

import "time"

const (
	AllocationUpdatedEvent EventType = "allocation.updated"
	LeaveUpdatedEvent      EventType = "leave.updated"
)

// AllocationUpdated is published whenever an allocation row is created,
// changed, or removed. Consumers use it to drop cached schedule windows.
type AllocationUpdated struct {
	CompanyId int
	MemberId  int
	ProjectId int
	WeekStart time.Time
	Hours     float64
}

// LeaveUpdated is published whenever a leave row of any category changes.
type LeaveUpdated struct {
	CompanyId int
	MemberId  int
	Category  string
	WeekStart time.Time
}
