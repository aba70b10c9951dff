package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/repository"
)

func newListingFixture(t *testing.T) (*ListingService, *repository.MemStore) {
	t.Helper()
	store := repository.NewMemStore()
	return NewListingService(store.Listings()), store
}

func TestListingCreate_RoundTrip(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, model.KindTrip, model.CreateListingRequest{
		Title:       "Canyon Hike",
		Description: "Overnight trip",
		Location:    "Red Rock",
		StartDate:   &start,
		Capacity:    12,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.RegisteredCount)
	assert.True(t, created.IsActive, "listings default to active")

	got, err := svc.Get(ctx, model.KindTrip, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Canyon Hike", got.Title)
	assert.Equal(t, "Red Rock", got.Location)
	assert.Equal(t, 12, got.Capacity)
	require.NotNil(t, got.StartDate)
	assert.True(t, got.StartDate.Equal(start))
}

func TestListingCreate_Validation(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "  ", Capacity: 5})
	var validation *model.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "title")

	_, err = svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Picnic", Capacity: 0})
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "capacity")

	_, err = svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Picnic", Capacity: 200_000})
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "capacity")
}

func TestListingUpdate_PartialMerge(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.KindProgram, model.CreateListingRequest{
		Title: "Youth Soccer", Location: "Field 2", Capacity: 30,
	})
	require.NoError(t, err)

	newTitle := "Youth Soccer (Fall)"
	newCapacity := 40
	updated, err := svc.Update(ctx, model.KindProgram, created.ID, model.UpdateListingRequest{
		Title:    &newTitle,
		Capacity: &newCapacity,
	})
	require.NoError(t, err)
	assert.Equal(t, "Youth Soccer (Fall)", updated.Title)
	assert.Equal(t, 40, updated.Capacity)
	assert.Equal(t, "Field 2", updated.Location, "unsupplied fields keep their values")
}

func TestListingUpdate_Validation(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Gala", Capacity: 100})
	require.NoError(t, err)

	zero := 0
	_, err = svc.Update(ctx, model.KindEvent, created.ID, model.UpdateListingRequest{Capacity: &zero})
	var validation *model.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Errors, "capacity")
}

func TestListingDelete(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Gala", Capacity: 100})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, model.KindEvent, created.ID))
	_, err = svc.Get(ctx, model.KindEvent, created.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, model.KindEvent, created.ID), repository.ErrNotFound)
}

func TestListingList_ActiveFilter(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Visible", Capacity: 10})
	require.NoError(t, err)
	hidden := false
	_, err = svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Hidden", Capacity: 10, IsActive: &hidden})
	require.NoError(t, err)

	all, err := svc.List(ctx, model.KindEvent, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, model.KindEvent, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Visible", active[0].Title)
}

func TestListingKindScoping(t *testing.T) {
	svc, _ := newListingFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.KindEvent, model.CreateListingRequest{Title: "Gala", Capacity: 10})
	require.NoError(t, err)

	// An event id must not resolve through the trips collection.
	_, err = svc.Get(ctx, model.KindTrip, created.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
