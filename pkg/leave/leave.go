package leave

import "time"

// Category classifies leave records. Annual leave is tracked per day,
// other leave and office holidays per week; aggregation treats holidays
// exactly like other weekly leave, only categorically distinct.
type Category string

const (
	Annual  Category = "annual"
	Other   Category = "other"
	Holiday Category = "holiday"
)

// DailyLeave is one day of annual leave.
type DailyLeave struct {
	Id        int
	CompanyId int
	MemberId  int
	Date      time.Time
	Hours     float64
}

// WeeklyLeave is a week-granular leave entry ("other" leave or an office
// holiday). WeekStart should be a Monday but is normalized defensively
// wherever it is consumed.
type WeeklyLeave struct {
	Id        int
	CompanyId int
	MemberId  int
	WeekStart time.Time
	Hours     float64
	Category  Category
}
