package member

// Type distinguishes members with an active login from invited members
// that have not signed in yet. Both kinds can be allocated hours.
type Type string

const (
	Active        Type = "active"
	PreRegistered Type = "pre_registered"
)

// Member is a person who can be allocated hours on projects.
type Member struct {
	Id          int
	Uid         string
	CompanyId   int
	DisplayName string
	Email       string
	Type        Type
	// WeeklyCapacity is nil when the member falls back to the company-wide
	// default working hours per week.
	WeeklyCapacity *float64
}

// Capacity returns the member's weekly capacity, or fallback when the
// member does not define one.
func (m Member) Capacity(fallback float64) float64 {
	if m.WeeklyCapacity != nil && *m.WeeklyCapacity > 0 {
		return *m.WeeklyCapacity
	}
	return fallback
}
