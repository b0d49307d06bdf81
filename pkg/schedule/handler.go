package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/staffpad/staffpad/internal/rest"
	"github.com/staffpad/staffpad/pkg/member"
)

type ProjectShareDTO struct {
	ProjectId   int     `json:"projectId"`
	ProjectName string  `json:"projectName,omitempty"`
	ProjectCode string  `json:"projectCode,omitempty"`
	Hours       float64 `json:"hours"`
}

type BreakdownDTO struct {
	ProjectHours   float64           `json:"projectHours"`
	AnnualLeave    float64           `json:"annualLeave"`
	OtherLeave     float64           `json:"otherLeave"`
	OfficeHolidays float64           `json:"officeHolidays"`
	Total          float64           `json:"total"`
	Projects       []ProjectShareDTO `json:"projects"`
}

type MemberScheduleDTO struct {
	Uid         string                  `json:"uid"`
	DisplayName string                  `json:"displayName"`
	Weeks       map[string]BreakdownDTO `json:"weeks"`
}

type ScheduleDTO struct {
	StartDate string              `json:"startDate"`
	Weeks     int                 `json:"weeks"`
	Members   []MemberScheduleDTO `json:"members"`
}

// MemberLister is the slice of the member service the handler needs.
type MemberLister interface {
	GetAllMembers(ctx context.Context) ([]member.Member, error)
}

type Handler struct {
	service Service
	members MemberLister
}

func NewHandler(service Service, members MemberLister) *Handler {
	return &Handler{service: service, members: members}
}

func (handler *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date",
			Details: "date must be in YYYY-MM-DD format",
		})
		return
	}
	weeks, err := strconv.Atoi(r.URL.Query().Get("weeks"))
	if err != nil || weeks <= 0 {
		weeks = 1
	}

	members, err := handler.members.GetAllMembers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	breakdowns, err := handler.service.MemberBreakdowns(r.Context(), members, date, weeks)
	if err != nil {
		// A failed aggregation renders as a retryable load failure.
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Failed to load schedule", Details: err.Error()})
		return
	}

	dto := ScheduleDTO{
		StartDate: r.URL.Query().Get("date"),
		Weeks:     weeks,
		Members:   make([]MemberScheduleDTO, 0, len(members)),
	}
	for _, m := range members {
		memberDTO := MemberScheduleDTO{
			Uid:         m.Uid,
			DisplayName: m.DisplayName,
			Weeks:       make(map[string]BreakdownDTO, weeks),
		}
		for key, breakdown := range breakdowns[m.Id] {
			memberDTO.Weeks[key.String()] = breakdownToDTO(breakdown)
		}
		dto.Members = append(dto.Members, memberDTO)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func breakdownToDTO(b *Breakdown) BreakdownDTO {
	projects := make([]ProjectShareDTO, 0, len(b.Projects))
	for _, share := range b.Projects {
		projects = append(projects, ProjectShareDTO{
			ProjectId:   share.ProjectId,
			ProjectName: share.ProjectName,
			ProjectCode: share.ProjectCode,
			Hours:       share.Hours,
		})
	}
	return BreakdownDTO{
		ProjectHours:   b.ProjectHours,
		AnnualLeave:    b.AnnualLeave,
		OtherLeave:     b.OtherLeave,
		OfficeHolidays: b.OfficeHolidays,
		Total:          b.Total,
		Projects:       projects,
	}
}
