package allocation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/internal/rest"
)

type AllocationDTO struct {
	Id        int     `json:"id"`
	MemberId  int     `json:"memberId"`
	ProjectId int     `json:"projectId"`
	WeekStart string  `json:"weekStart"`
	Hours     float64 `json:"hours"`
}

type SetAllocationRequest struct {
	MemberUid string `json:"memberUid"`
	ProjectId int    `json:"projectId"`
	Week      string `json:"week"`
	Input     string `json:"input"`
	Mode      string `json:"mode"`
}

type SetAllocationResponse struct {
	Allocation   *AllocationDTO `json:"allocation,omitempty"`
	Valid        bool           `json:"valid"`
	Error        string         `json:"error,omitempty"`
	TotalHours   float64        `json:"totalHours"`
	TotalPercent float64        `json:"totalPercent"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetForRange(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	fromString := r.URL.Query().Get("from")
	from, err := time.Parse("2006-01-02", fromString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid from date",
			Details: "from must be in YYYY-MM-DD format",
		})
		return
	}
	weeks, err := strconv.Atoi(r.URL.Query().Get("weeks"))
	if err != nil || weeks <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid weeks",
			Details: "weeks must be a positive integer",
		})
		return
	}

	allocations, err := handler.service.ListForRange(r.Context(), from, weeks)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]AllocationDTO, 0, len(allocations))
	for _, a := range allocations {
		dtos = append(dtos, allocationToDTO(a))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Set(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting allocation")
	w.Header().Set("Content-Type", "application/json")

	var req SetAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	weekDate, err := time.Parse("2006-01-02", req.Week)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid week",
			Details: "week must be in YYYY-MM-DD format",
		})
		return
	}
	mode := Mode(req.Mode)
	if mode != ModeHours && mode != ModePercentage {
		mode = ModeHours
	}

	stored, validation, err := handler.service.SetAllocation(r.Context(), req.MemberUid, req.ProjectId, weekDate, req.Input, mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := SetAllocationResponse{
		Valid:        validation.Valid,
		Error:        validation.Message,
		TotalHours:   validation.TotalHours,
		TotalPercent: validation.TotalPercent,
	}
	if validation.Valid {
		dto := allocationToDTO(stored)
		response.Allocation = &dto
		w.WriteHeader(http.StatusOK)
	} else {
		// Validation failures are part of the contract, surfaced inline.
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteAllocation(r.Context(), id); err != nil {
		if errors.Is(err, ErrAllocationNotFound) {
			http.Error(w, "Allocation not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func allocationToDTO(a Allocation) AllocationDTO {
	return AllocationDTO{
		Id:        a.Id,
		MemberId:  a.MemberId,
		ProjectId: a.ProjectId,
		WeekStart: a.WeekStart.Format("2006-01-02"),
		Hours:     a.Hours,
	}
}
