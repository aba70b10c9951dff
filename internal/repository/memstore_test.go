package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplegrovecc/communityhub/internal/model"
)

func newRegistration(eventID *string) *model.Registration {
	return &model.Registration{
		ID:                uuid.New().String(),
		EventID:           eventID,
		FirstName:         "Ada",
		LastName:          "Lovelace",
		Email:             "ada@example.com",
		Phone:             "555-123-4567",
		ParticipationType: model.Participant,
		Status:            model.StatusPending,
		CreatedAt:         time.Now().UTC(),
	}
}

func newMemListing(kind model.ListingKind, capacity int) *model.Listing {
	now := time.Now().UTC()
	return &model.Listing{
		ID:        uuid.New().String(),
		Kind:      kind,
		Title:     "Listing",
		Capacity:  capacity,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestMemStore_ConcurrentRegistrations hammers one listing from many
// goroutines; exactly capacity registrations may succeed and the counter must
// never overshoot.
func TestMemStore_ConcurrentRegistrations(t *testing.T) {
	const capacity = 10
	const workers = 50

	store := NewMemStore()
	ctx := context.Background()
	listing := newMemListing(model.KindEvent, capacity)
	require.NoError(t, store.Listings().Create(ctx, listing))

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			reg := newRegistration(&listing.ID)
			reg.Email = fmt.Sprintf("w%d@example.com", n)
			results <- store.Registrations().Create(ctx, reg)
		}(i)
	}
	wg.Wait()
	close(results)

	successes, rejections := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var full *model.CapacityExceededError
			require.ErrorAs(t, err, &full)
			rejections++
		}
	}
	assert.Equal(t, capacity, successes)
	assert.Equal(t, workers-capacity, rejections)

	got, err := store.Listings().GetByID(ctx, model.KindEvent, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, got.RegisteredCount)

	regs, err := store.Registrations().List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, regs, capacity)
}

func TestMemStore_DeleteListingLeavesRegistrations(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	listing := newMemListing(model.KindProgram, 5)
	require.NoError(t, store.Listings().Create(ctx, listing))

	reg := &model.Registration{
		ID: uuid.New().String(), ProgramID: &listing.ID,
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Phone: "555-123-4567",
		ParticipationType: model.Participant, Status: model.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Registrations().Create(ctx, reg))
	require.NoError(t, store.Listings().Delete(ctx, model.KindProgram, listing.ID))

	// The registration now references a deleted listing; it is not cleaned up.
	got, err := store.Registrations().GetByID(ctx, reg.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ProgramID)
	assert.Equal(t, listing.ID, *got.ProgramID)
}

func TestMemStore_NotFound(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	id := uuid.New().String()

	_, err := store.Listings().GetByID(ctx, model.KindEvent, id)
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = store.Registrations().GetByID(ctx, id)
	require.True(t, errors.Is(err, ErrNotFound))
	require.ErrorIs(t, store.Registrations().Delete(ctx, id), ErrNotFound)
}
