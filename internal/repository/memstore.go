package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maplegrovecc/communityhub/internal/model"
)

// MemStore is an in-memory implementation of both repositories. It backs the
// test suite and local demos; semantics mirror the PostgreSQL implementation,
// including the all-or-nothing capacity increment on registration create.
type MemStore struct {
	mu            sync.Mutex
	listings      map[string]model.Listing
	registrations map[string]model.Registration
}

// NewMemStore constructs an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		listings:      make(map[string]model.Listing),
		registrations: make(map[string]model.Registration),
	}
}

// Listings returns the ListingRepository view of the store.
func (s *MemStore) Listings() ListingRepository {
	return &memListings{s: s}
}

// Registrations returns the RegistrationRepository view of the store.
func (s *MemStore) Registrations() RegistrationRepository {
	return &memRegistrations{s: s}
}

type memListings struct {
	s *MemStore
}

var _ ListingRepository = (*memListings)(nil)

func (r *memListings) Create(ctx context.Context, listing *model.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.listings[listing.ID] = *listing
	return nil
}

func (r *memListings) GetByID(ctx context.Context, kind model.ListingKind, id string) (*model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.Kind != kind {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (r *memListings) List(ctx context.Context, kind model.ListingKind, activeOnly bool) ([]model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var listings []model.Listing
	for _, l := range r.s.listings {
		if l.Kind != kind {
			continue
		}
		if activeOnly && !l.IsActive {
			continue
		}
		listings = append(listings, l)
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (r *memListings) Update(ctx context.Context, kind model.ListingKind, id string, req model.UpdateListingRequest) (*model.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.Kind != kind {
		return nil, ErrNotFound
	}
	applyListingUpdate(&l, req)
	l.UpdatedAt = time.Now().UTC()
	r.s.listings[id] = l
	return &l, nil
}

// Delete removes the listing permanently. Registrations pointing at it stay,
// matching the hard-delete/no-cascade policy.
func (r *memListings) Delete(ctx context.Context, kind model.ListingKind, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok || l.Kind != kind {
		return ErrNotFound
	}
	delete(r.s.listings, id)
	return nil
}

type memRegistrations struct {
	s *MemStore
}

var _ RegistrationRepository = (*memRegistrations)(nil)

// Create inserts the registration and bumps every referenced listing's
// counter under one lock, so the capacity check and the increment are a
// single atomic step.
func (r *memRegistrations) Create(ctx context.Context, reg *model.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	refs := reg.References()
	for _, ref := range refs {
		l, ok := r.s.listings[ref.ID]
		if !ok || l.Kind != ref.Kind {
			return &model.ReferenceNotFoundError{Kind: ref.Kind}
		}
		if l.IsFull() {
			return &model.CapacityExceededError{Kind: ref.Kind}
		}
	}
	for _, ref := range refs {
		l := r.s.listings[ref.ID]
		l.RegisteredCount++
		l.UpdatedAt = time.Now().UTC()
		r.s.listings[ref.ID] = l
	}
	r.s.registrations[reg.ID] = *reg
	return nil
}

func (r *memRegistrations) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &reg, nil
}

func (r *memRegistrations) List(ctx context.Context, archived bool) ([]model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var regs []model.Registration
	for _, reg := range r.s.registrations {
		if reg.IsArchived == archived {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].CreatedAt.After(regs[j].CreatedAt)
	})
	return regs, nil
}

// Update merges the supplied fields; listing counters are never touched.
func (r *memRegistrations) Update(ctx context.Context, id string, req model.UpdateRegistrationRequest) (*model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Status != nil {
		reg.Status = model.RegistrationStatus(*req.Status)
	}
	if req.IsArchived != nil {
		reg.IsArchived = *req.IsArchived
	}
	if req.Notes != nil {
		reg.Notes = *req.Notes
	}
	r.s.registrations[id] = reg
	return &reg, nil
}

func (r *memRegistrations) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.registrations[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.registrations, id)
	return nil
}
