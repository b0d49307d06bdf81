package company

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type CompanyDTO struct {
	Uid                   string  `json:"uid"`
	Name                  string  `json:"name"`
	DefaultWeeklyCapacity float64 `json:"defaultWeeklyCapacity"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	c, err := handler.service.GetCurrentCompany(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(companyToDTO(c)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating current company")
	w.Header().Set("Content-Type", "application/json")

	var dto CompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.service.UpdateCurrentCompany(r.Context(), dto.Name, dto.DefaultWeeklyCapacity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(companyToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func companyToDTO(c Company) CompanyDTO {
	return CompanyDTO{
		Uid:                   c.Uid,
		Name:                  c.Name,
		DefaultWeeklyCapacity: c.DefaultWeeklyCapacity,
	}
}
