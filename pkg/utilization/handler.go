package utilization

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/staffpad/staffpad/internal/rest"
)

type WindowHoursDTO struct {
	Days7  float64 `json:"days7"`
	Days30 float64 `json:"days30"`
	Days90 float64 `json:"days90"`
}

type MemberUtilizationDTO struct {
	Uid            string         `json:"uid"`
	DisplayName    string         `json:"displayName"`
	Days7          int            `json:"days7"`
	Days30         int            `json:"days30"`
	Days90         int            `json:"days90"`
	TotalAllocated WindowHoursDTO `json:"totalAllocatedHours"`
}

type UtilizationDTO struct {
	Date    string                 `json:"date"`
	Members []MemberUtilizationDTO `json:"members"`
}

type Handler struct {
	service Service
	members MemberLister
}

func NewHandler(service Service, members MemberLister) *Handler {
	return &Handler{service: service, members: members}
}

// GetUtilization returns rolling-window utilization for every member of the
// current company. The date parameter picks the week; it defaults to today.
func (handler *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date",
				Details: "date must be in YYYY-MM-DD format",
			})
			return
		}
		date = parsed
	}

	members, err := handler.members.GetAllMembers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	results, err := handler.service.MemberUtilization(r.Context(), date)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Failed to load utilization", Details: err.Error()})
		return
	}

	dto := UtilizationDTO{
		Date:    date.Format("2006-01-02"),
		Members: make([]MemberUtilizationDTO, 0, len(members)),
	}
	sort.Slice(members, func(i, j int) bool { return members[i].DisplayName < members[j].DisplayName })
	for _, m := range members {
		result := results[m.Id]
		dto.Members = append(dto.Members, MemberUtilizationDTO{
			Uid:         m.Uid,
			DisplayName: m.DisplayName,
			Days7:       result.Days7,
			Days30:      result.Days30,
			Days90:      result.Days90,
			TotalAllocated: WindowHoursDTO{
				Days7:  result.TotalAllocated.Days7,
				Days30: result.TotalAllocated.Days30,
				Days90: result.TotalAllocated.Days90,
			},
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
