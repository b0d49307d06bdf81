package leave

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/staffpad/staffpad/internal/rest"
)

type DailyLeaveDTO struct {
	Id       int     `json:"id"`
	MemberId int     `json:"memberId"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
}

type WeeklyLeaveDTO struct {
	Id        int     `json:"id"`
	MemberId  int     `json:"memberId"`
	WeekStart string  `json:"weekStart"`
	Hours     float64 `json:"hours"`
	Category  string  `json:"category"`
}

type recordLeaveRequest struct {
	MemberId int     `json:"memberId"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Category string  `json:"category"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetForRange(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		badRequest(w, "Invalid from date", "from must be in YYYY-MM-DD format")
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		badRequest(w, "Invalid to date", "to must be in YYYY-MM-DD format")
		return
	}

	daily, err := handler.service.DailyForRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	other, err := handler.service.WeeklyForRange(r.Context(), from, to, Other)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	holidays, err := handler.service.WeeklyForRange(r.Context(), from, to, Holiday)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		Annual   []DailyLeaveDTO  `json:"annual"`
		Other    []WeeklyLeaveDTO `json:"other"`
		Holidays []WeeklyLeaveDTO `json:"holidays"`
	}{
		Annual:   make([]DailyLeaveDTO, 0, len(daily)),
		Other:    make([]WeeklyLeaveDTO, 0, len(other)),
		Holidays: make([]WeeklyLeaveDTO, 0, len(holidays)),
	}
	for _, l := range daily {
		response.Annual = append(response.Annual, dailyToDTO(l))
	}
	for _, l := range other {
		response.Other = append(response.Other, weeklyToDTO(l))
	}
	for _, l := range holidays {
		response.Holidays = append(response.Holidays, weeklyToDTO(l))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Record(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req recordLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		badRequest(w, "Invalid date", "date must be in YYYY-MM-DD format")
		return
	}

	switch Category(req.Category) {
	case Annual:
		created, err := handler.service.RecordAnnualLeave(r.Context(), req.MemberId, date, req.Hours)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dailyToDTO(created))
	case Other, Holiday:
		created, err := handler.service.RecordWeeklyLeave(r.Context(), req.MemberId, date, req.Hours, Category(req.Category))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(weeklyToDTO(created))
	default:
		badRequest(w, "Invalid category", "category must be annual, other, or holiday")
	}
}

func (handler *Handler) DeleteDaily(w http.ResponseWriter, r *http.Request) {
	handler.delete(w, r, handler.service.DeleteDaily)
}

func (handler *Handler) DeleteWeekly(w http.ResponseWriter, r *http.Request) {
	handler.delete(w, r, handler.service.DeleteWeekly)
}

func (handler *Handler) delete(w http.ResponseWriter, r *http.Request, deleteFn func(ctx context.Context, id int) error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := deleteFn(r.Context(), id); err != nil {
		if errors.Is(err, ErrLeaveNotFound) {
			http.Error(w, "Leave entry not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func badRequest(w http.ResponseWriter, message string, details string) {
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func dailyToDTO(l DailyLeave) DailyLeaveDTO {
	return DailyLeaveDTO{Id: l.Id, MemberId: l.MemberId, Date: l.Date.Format("2006-01-02"), Hours: l.Hours}
}

func weeklyToDTO(l WeeklyLeave) WeeklyLeaveDTO {
	return WeeklyLeaveDTO{
		Id:        l.Id,
		MemberId:  l.MemberId,
		WeekStart: l.WeekStart.Format("2006-01-02"),
		Hours:     l.Hours,
		Category:  string(l.Category),
	}
}
