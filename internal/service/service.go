// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer: listing CRUD, the capacity
// guard, the registration intake pipeline, and the registration lifecycle.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/repository"
)

// maxCapacity bounds admin-supplied capacities to something sane.
const maxCapacity = 100_000

// ListingService orchestrates admin CRUD for events, programs, and trips.
type ListingService struct {
	listings repository.ListingRepository
}

// NewListingService constructs a ListingService.
func NewListingService(listings repository.ListingRepository) *ListingService {
	return &ListingService{listings: listings}
}

// Create validates the request and persists a new listing of the given kind.
func (s *ListingService) Create(ctx context.Context, kind model.ListingKind, req model.CreateListingRequest) (*model.Listing, error) {
	errs := make(map[string]string)
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		errs["title"] = "title is required"
	}
	if req.Capacity <= 0 {
		errs["capacity"] = "capacity must be a positive integer"
	} else if req.Capacity > maxCapacity {
		errs["capacity"] = fmt.Sprintf("capacity cannot exceed %d", maxCapacity)
	}
	if len(errs) > 0 {
		return nil, &model.ValidationError{Errors: errs}
	}

	now := time.Now().UTC()
	listing := &model.Listing{
		ID:              uuid.New().String(),
		Kind:            kind,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		ImageURL:        req.ImageURL,
		Capacity:        req.Capacity,
		RegisteredCount: 0,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	return listing, nil
}

// Get returns a single listing by kind and id.
func (s *ListingService) Get(ctx context.Context, kind model.ListingKind, id string) (*model.Listing, error) {
	return s.listings.GetByID(ctx, kind, id)
}

// List returns all listings of a kind, optionally only the active ones.
func (s *ListingService) List(ctx context.Context, kind model.ListingKind, activeOnly bool) ([]model.Listing, error) {
	return s.listings.List(ctx, kind, activeOnly)
}

// Update validates and merges the supplied fields into the listing.
// Lowering capacity below the current registered count is allowed: existing
// registrations are never revoked, the listing just stays full.
func (s *ListingService) Update(ctx context.Context, kind model.ListingKind, id string, req model.UpdateListingRequest) (*model.Listing, error) {
	errs := make(map[string]string)
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			errs["title"] = "title cannot be empty"
		}
		req.Title = &trimmed
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			errs["capacity"] = "capacity must be a positive integer"
		} else if *req.Capacity > maxCapacity {
			errs["capacity"] = fmt.Sprintf("capacity cannot exceed %d", maxCapacity)
		}
	}
	if len(errs) > 0 {
		return nil, &model.ValidationError{Errors: errs}
	}

	return s.listings.Update(ctx, kind, id, req)
}

// Delete removes a listing permanently. Registrations referencing it are
// deliberately left in place.
func (s *ListingService) Delete(ctx context.Context, kind model.ListingKind, id string) error {
	return s.listings.Delete(ctx, kind, id)
}
