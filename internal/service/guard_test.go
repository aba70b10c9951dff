package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maplegrovecc/communityhub/internal/model"
)

func TestCheckCapacity_UnresolvedReference(t *testing.T) {
	err := CheckCapacity(model.KindEvent, nil, false)

	var missing *model.ReferenceNotFoundError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, model.KindEvent, missing.Kind)
	require.Equal(t, "Event not found", err.Error())
}

func TestCheckCapacity_Full(t *testing.T) {
	listing := &model.Listing{Kind: model.KindTrip, Capacity: 5, RegisteredCount: 5, IsActive: true}

	err := CheckCapacity(model.KindTrip, listing, false)

	var full *model.CapacityExceededError
	require.ErrorAs(t, err, &full)
	require.Equal(t, "Trip is full", err.Error())
}

func TestCheckCapacity_OverFull(t *testing.T) {
	// A listing whose capacity was lowered below its registered count still
	// rejects new registrations.
	listing := &model.Listing{Kind: model.KindProgram, Capacity: 3, RegisteredCount: 7, IsActive: true}

	err := CheckCapacity(model.KindProgram, listing, false)

	var full *model.CapacityExceededError
	require.ErrorAs(t, err, &full)
	require.Equal(t, "Program is full", err.Error())
}

func TestCheckCapacity_SpotsRemain(t *testing.T) {
	listing := &model.Listing{Kind: model.KindEvent, Capacity: 10, RegisteredCount: 9, IsActive: true}

	require.NoError(t, CheckCapacity(model.KindEvent, listing, false))
}

func TestCheckCapacity_InactiveListing(t *testing.T) {
	listing := &model.Listing{Kind: model.KindEvent, Capacity: 10, RegisteredCount: 0, IsActive: false}

	// Default behavior: inactive listings are hidden from public views but
	// still accept registrations.
	require.NoError(t, CheckCapacity(model.KindEvent, listing, false))

	// With the configured rejection turned on they are closed.
	err := CheckCapacity(model.KindEvent, listing, true)
	var closed *model.ListingClosedError
	require.ErrorAs(t, err, &closed)
	require.Equal(t, "Event is not open for registration", err.Error())
}
