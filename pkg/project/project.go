package project

// Project is something members can be allocated to.
type Project struct {
	Id        int
	CompanyId int
	Name      string
	Code      string
}
