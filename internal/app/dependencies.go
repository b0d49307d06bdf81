package app

import (
	"database/sql"
	"time"

	"github.com/staffpad/staffpad/internal/config"
	"github.com/staffpad/staffpad/internal/event_bus"
	"github.com/staffpad/staffpad/internal/utils"
	"github.com/staffpad/staffpad/pkg/allocation"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/google"
	"github.com/staffpad/staffpad/pkg/leave"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/project"
	"github.com/staffpad/staffpad/pkg/schedule"
	"github.com/staffpad/staffpad/pkg/utilization"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	CompanyRepo    company.Repo
	CompanyService company.Service
	CompanyHandler *company.Handler

	MemberRepo    member.Repo
	MemberService member.Service
	MemberHandler *member.Handler

	ProjectRepo    project.Repo
	ProjectService project.Service
	ProjectHandler *project.Handler

	LeaveRepo    leave.Repo
	LeaveService leave.Service
	LeaveHandler *leave.Handler

	AllocationRepo    allocation.Repo
	AllocationService allocation.Service
	AllocationHandler *allocation.Handler

	ScheduleService *schedule.ServiceImpl
	CachedSchedule  *schedule.CachedService
	ScheduleHandler *schedule.Handler

	UtilizationService utilization.Service
	UtilizationHandler *utilization.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.CompanyRepo = company.NewRepo(db)
	deps.CompanyService = company.NewService(deps.CompanyRepo, cfg.Planning.DefaultWeeklyCapacity)
	deps.CompanyHandler = company.NewHandler(deps.CompanyService)

	deps.MemberRepo = member.NewRepo(db)
	deps.MemberService = member.NewService(deps.MemberRepo)
	deps.MemberHandler = member.NewHandler(deps.MemberService)

	deps.ProjectRepo = project.NewRepo(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.LeaveRepo = leave.NewRepo(db)
	deps.LeaveService = leave.NewService(deps.LeaveRepo, deps.EventBus)
	deps.LeaveHandler = leave.NewHandler(deps.LeaveService)

	deps.AllocationRepo = allocation.NewRepo(db)
	deps.AllocationService = allocation.NewService(
		deps.AllocationRepo,
		deps.MemberService,
		deps.LeaveService,
		deps.EventBus,
		cfg.Planning.MaxAllocationPercent,
	)
	deps.AllocationHandler = allocation.NewHandler(deps.AllocationService)

	deps.ScheduleService = schedule.NewService(deps.AllocationRepo, deps.LeaveRepo, deps.ProjectRepo)
	cacheTTL := time.Duration(cfg.Planning.ScheduleCacheTTLSeconds) * time.Second
	deps.CachedSchedule = schedule.NewCachedService(deps.ScheduleService, cacheTTL, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.CachedSchedule, deps.MemberService)

	deps.UtilizationService = utilization.NewService(deps.AllocationRepo, deps.LeaveRepo, deps.MemberService)
	deps.UtilizationHandler = utilization.NewHandler(deps.UtilizationService, deps.MemberService)

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.MemberService, deps.LeaveService, cfg.Google.HolidayCalendarId)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}
