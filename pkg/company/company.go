package company

// Company is a tenant. DefaultWeeklyCapacity is the fallback denominator
// for members that do not define their own weekly capacity.
type Company struct {
	Id                    int
	Uid                   string
	Name                  string
	DefaultWeeklyCapacity float64
}
