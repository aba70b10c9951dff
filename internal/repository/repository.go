// Package repository implements persistence for listings and registrations.
// The primary implementation uses pgx directly (no ORM) for transparency and
// performance; an in-memory implementation backs tests and local demos.
package repository

import (
	"context"
	"errors"

	"github.com/maplegrovecc/communityhub/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ListingRepository handles persistence for capacity-bearing listings.
// All lookups are scoped by kind so an event id never resolves through the
// programs collection.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, kind model.ListingKind, id string) (*model.Listing, error)
	List(ctx context.Context, kind model.ListingKind, activeOnly bool) ([]model.Listing, error)
	// Update merges only the supplied fields into the stored listing.
	Update(ctx context.Context, kind model.ListingKind, id string, req model.UpdateListingRequest) (*model.Listing, error)
	// Delete removes the listing permanently. Registrations pointing at it
	// are left in place, matching the hard-delete/no-cascade policy.
	Delete(ctx context.Context, kind model.ListingKind, id string) error
}

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository interface {
	// Create inserts the registration and increments the registered count of
	// every listing it references, all in one transaction. The capacity
	// check and the increment are serialized per listing at the store level,
	// so two concurrent registrations against the last open spot cannot both
	// commit. Returns *model.ReferenceNotFoundError or
	// *model.CapacityExceededError without persisting anything when a
	// reference fails.
	Create(ctx context.Context, reg *model.Registration) error
	GetByID(ctx context.Context, id string) (*model.Registration, error)
	// List returns the archived or the non-archived view.
	List(ctx context.Context, archived bool) ([]model.Registration, error)
	// Update merges only the supplied fields. Status and archive transitions
	// are unconditional; deleting or cancelling never releases the spot on
	// the referenced listing.
	Update(ctx context.Context, id string, req model.UpdateRegistrationRequest) (*model.Registration, error)
	Delete(ctx context.Context, id string) error
}
