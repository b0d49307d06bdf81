package member

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type MemberDTO struct {
	Uid            string   `json:"uid"`
	DisplayName    string   `json:"displayName"`
	Email          string   `json:"email,omitempty"`
	Type           string   `json:"type"`
	WeeklyCapacity *float64 `json:"weeklyCapacity,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	memberType := r.URL.Query().Get("type")
	var members []Member
	var err error
	if memberType != "" {
		members, err = handler.service.GetMembersByType(r.Context(), Type(memberType))
	} else {
		members, err = handler.service.GetAllMembers(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, memberToDTO(m))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	m, err := handler.service.GetMemberByUid(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(memberToDTO(m)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	log.Debug("Inviting new member")
	w.Header().Set("Content-Type", "application/json")

	var dto MemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.DisplayName == "" {
		http.Error(w, "displayName is required", http.StatusBadRequest)
		return
	}

	created, err := handler.service.InviteMember(r.Context(), dto.DisplayName, dto.Email, dto.WeeklyCapacity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(memberToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	var dto MemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := handler.service.GetMemberByUid(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	m.DisplayName = dto.DisplayName
	m.Email = dto.Email
	m.WeeklyCapacity = dto.WeeklyCapacity
	if dto.Type != "" {
		m.Type = Type(dto.Type)
	}

	updated, err := handler.service.UpdateMember(r.Context(), m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(memberToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	if err := handler.service.DeleteMember(r.Context(), uid); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, "Member not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func memberToDTO(m Member) MemberDTO {
	return MemberDTO{
		Uid:            m.Uid,
		DisplayName:    m.DisplayName,
		Email:          m.Email,
		Type:           string(m.Type),
		WeeklyCapacity: m.WeeklyCapacity,
	}
}
