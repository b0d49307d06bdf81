package google

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/staffpad/staffpad/internal/rest"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type importRequestDto struct {
	CalendarId string `json:"calendarId"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type importResultDto struct {
	Events int `json:"events"`
	Rows   int `json:"rows"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	items := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		items = append(items, CalendarItemDto{Id: c.ID, Summary: c.Summary})
	}
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request importRequestDto
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	from, err := time.Parse("2006-01-02", request.From)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid from date", Details: "from must be in YYYY-MM-DD format"})
		return
	}
	to, err := time.Parse("2006-01-02", request.To)
	if err != nil || to.Before(from) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid to date", Details: "to must be in YYYY-MM-DD format and not before from"})
		return
	}

	result, err := h.service.ImportHolidays(r.Context(), request.CalendarId, from, to)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Failed to import holidays", Details: err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(importResultDto{Events: result.Events, Rows: result.Rows}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
