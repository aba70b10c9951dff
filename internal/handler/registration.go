package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/service"
)

// RegistrationHandler serves the public intake endpoint and the admin
// lifecycle endpoints.
type RegistrationHandler struct {
	svc *service.RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Create handles POST /api/registrations, the only path that creates a
// registration.
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	reg, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "Registration not found")
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// List handles GET /api/registrations. The archived=true query switches to
// the archived view; the default view excludes archived registrations.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	archived := r.URL.Query().Get("archived") == "true"
	regs, err := h.svc.List(r.Context(), archived)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// Get handles GET /api/registrations/{id}.
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	reg, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Registration not found")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Update handles PATCH /api/registrations/{id}: status, archive flag, and
// notes changes. Status moves are unconditional in every direction.
func (h *RegistrationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateRegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	reg, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "Registration not found")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Archive handles POST /api/registrations/{id}/archive.
func (h *RegistrationHandler) Archive(w http.ResponseWriter, r *http.Request) {
	reg, err := h.svc.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Registration not found")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Unarchive handles POST /api/registrations/{id}/unarchive.
func (h *RegistrationHandler) Unarchive(w http.ResponseWriter, r *http.Request) {
	reg, err := h.svc.Unarchive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Registration not found")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Delete handles DELETE /api/registrations/{id}. The reserved spot on any
// referenced listing is not released.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "Registration not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
