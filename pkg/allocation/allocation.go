package allocation

import (
	"time"

	"github.com/staffpad/staffpad/pkg/member"
)

// Allocation assigns hours of one member to one project for one week.
// WeekStart is always the Monday of the week; rows with hours <= 0 carry no
// meaning and are filtered out at the repository.
type Allocation struct {
	Id        int
	CompanyId int
	MemberId  int
	ProjectId int
	WeekStart time.Time
	Hours     float64
	// MemberType is joined from the member row so utilization can segregate
	// active and pre-registered workloads without a second fetch.
	MemberType member.Type
}
