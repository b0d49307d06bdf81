package app

import (
	"github.com/gorilla/mux"
	"github.com/staffpad/staffpad/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Company
	r.HandleFunc("/api/company/current", deps.CompanyHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/company/current", deps.CompanyHandler.UpdateCurrent).Methods("PUT")

	// Members
	r.HandleFunc("/api/member", deps.MemberHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/member", deps.MemberHandler.Invite).Methods("POST")
	r.HandleFunc("/api/member/{uid}", deps.MemberHandler.Get).Methods("GET")
	r.HandleFunc("/api/member/{uid}", deps.MemberHandler.Update).Methods("PUT")
	r.HandleFunc("/api/member/{uid}", deps.MemberHandler.Delete).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Delete).Methods("DELETE")

	// Allocations
	r.HandleFunc("/api/allocation", deps.AllocationHandler.GetForRange).Queries("from", "{from}").Methods("GET")
	r.HandleFunc("/api/allocation", deps.AllocationHandler.Set).Methods("PUT")
	r.HandleFunc("/api/allocation/{id}", deps.AllocationHandler.Delete).Methods("DELETE")

	// Leave
	r.HandleFunc("/api/leave", deps.LeaveHandler.GetForRange).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/leave", deps.LeaveHandler.Record).Methods("POST")
	r.HandleFunc("/api/leave/daily/{id}", deps.LeaveHandler.DeleteDaily).Methods("DELETE")
	r.HandleFunc("/api/leave/weekly/{id}", deps.LeaveHandler.DeleteWeekly).Methods("DELETE")

	// Schedule grid
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetSchedule).Queries("date", "{date}").Methods("GET")

	// Utilization
	r.HandleFunc("/api/utilization", deps.UtilizationHandler.GetUtilization).Methods("GET")

	// Google integration
	if deps.GoogleAuth.Enabled() {
		r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
		r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
		r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
		r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
		r.HandleFunc("/api/integrations/google/holidays/import", deps.GoogleHandler.ImportHolidays).Methods("POST")
	}
}
