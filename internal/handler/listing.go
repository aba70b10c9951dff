package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/service"
)

// ListingHandler serves the per-kind listing collections. One handler covers
// events, programs, and trips; the kind is bound per route.
type ListingHandler struct {
	svc *service.ListingService
}

// NewListingHandler constructs a ListingHandler.
func NewListingHandler(svc *service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// List handles GET /api/{kind}. The active=true query narrows to publicly
// visible listings.
func (h *ListingHandler) List(kind model.ListingKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"
		listings, err := h.svc.List(r.Context(), kind, activeOnly)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list "+kind.Path())
			return
		}
		// Return an empty array rather than null for better client compatibility.
		if listings == nil {
			listings = []model.Listing{}
		}
		writeJSON(w, http.StatusOK, listings)
	}
}

// Get handles GET /api/{kind}/{id}.
func (h *ListingHandler) Get(kind model.ListingKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		listing, err := h.svc.Get(r.Context(), kind, id)
		if err != nil {
			writeDomainError(w, err, kind.Label()+" not found")
			return
		}
		writeJSON(w, http.StatusOK, listing)
	}
}

// Create handles POST /api/{kind}.
func (h *ListingHandler) Create(kind model.ListingKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateListingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		listing, err := h.svc.Create(r.Context(), kind, req)
		if err != nil {
			writeDomainError(w, err, kind.Label()+" not found")
			return
		}
		writeJSON(w, http.StatusCreated, listing)
	}
}

// Update handles PATCH /api/{kind}/{id} as a partial-field merge.
func (h *ListingHandler) Update(kind model.ListingKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req model.UpdateListingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		listing, err := h.svc.Update(r.Context(), kind, id, req)
		if err != nil {
			writeDomainError(w, err, kind.Label()+" not found")
			return
		}
		writeJSON(w, http.StatusOK, listing)
	}
}

// Delete handles DELETE /api/{kind}/{id}. The delete is hard and does not
// cascade to registrations.
func (h *ListingHandler) Delete(kind model.ListingKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.svc.Delete(r.Context(), kind, id); err != nil {
			writeDomainError(w, err, kind.Label()+" not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
