package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/notify"
	"github.com/maplegrovecc/communityhub/internal/repository"
)

// dispatchTimeout bounds how long a fire-and-forget confirmation may take.
const dispatchTimeout = 10 * time.Second

// RegistrationService owns the intake pipeline and the registration
// lifecycle. It is the only path by which registrations are created and by
// which a listing's registered count moves upward.
type RegistrationService struct {
	listings      repository.ListingRepository
	registrations repository.RegistrationRepository
	dispatcher    notify.Dispatcher
	logger        *slog.Logger
	requireActive bool
	tracer        trace.Tracer
}

// NewRegistrationService constructs a RegistrationService with its
// dependencies. requireActive makes the capacity guard reject registrations
// against inactive listings.
func NewRegistrationService(
	listings repository.ListingRepository,
	registrations repository.RegistrationRepository,
	dispatcher notify.Dispatcher,
	logger *slog.Logger,
	requireActive bool,
) *RegistrationService {
	return &RegistrationService{
		listings:      listings,
		registrations: registrations,
		dispatcher:    dispatcher,
		logger:        logger,
		requireActive: requireActive,
		tracer:        otel.Tracer("communityhub/intake"),
	}
}

// Register runs the intake pipeline: validate, guard capacity, persist,
// increment the listing counter, notify. The first failing step stops the
// run with nothing persisted. The notification is dispatched without waiting
// on its result; its failure never fails the registration.
func (s *RegistrationService) Register(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error) {
	ctx, span := s.tracer.Start(ctx, "registration.intake")
	defer span.End()

	if errs := validateIntake(&req); len(errs) > 0 {
		return nil, &model.ValidationError{Errors: errs}
	}
	span.AddEvent("validated")

	participation := model.Participant
	if req.ParticipationType != "" {
		participation = model.ParticipationType(req.ParticipationType)
	}

	reg := &model.Registration{
		ID:                uuid.New().String(),
		EventID:           req.EventID,
		ProgramID:         req.ProgramID,
		TripID:            req.TripID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		Notes:             req.Notes,
		ParticipationType: participation,
		Status:            model.StatusPending,
		IsArchived:        false,
		CreatedAt:         time.Now().UTC(),
	}

	// Each supplied reference is checked independently and all must pass.
	// The first resolved listing provides the notification context.
	var target *model.Listing
	for _, ref := range reg.References() {
		listing, err := s.listings.GetByID(ctx, ref.Kind, ref.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("resolve %s: %w", ref.Kind, err)
		}
		if err := CheckCapacity(ref.Kind, listing, s.requireActive); err != nil {
			return nil, err
		}
		if target == nil {
			target = listing
		}
	}
	span.AddEvent("capacity checked")

	// The store re-runs the capacity check under a row lock while inserting
	// and incrementing, so concurrent intakes against the same listing
	// cannot both take the last spot.
	if err := s.registrations.Create(ctx, reg); err != nil {
		var full *model.CapacityExceededError
		var missing *model.ReferenceNotFoundError
		if errors.As(err, &full) || errors.As(err, &missing) {
			return nil, err
		}
		return nil, fmt.Errorf("persist registration: %w", err)
	}
	span.AddEvent("persisted")
	span.SetAttributes(attribute.String("registration.id", reg.ID))

	s.dispatchConfirmation(reg, target)
	return reg, nil
}

// dispatchConfirmation hands the confirmation off in the background. The
// caller has already succeeded; a failed or panicked dispatch is logged and
// swallowed.
func (s *RegistrationService) dispatchConfirmation(reg *model.Registration, listing *model.Listing) {
	c := notify.Confirmation{
		RecipientEmail:    reg.Email,
		RecipientName:     reg.FullName(),
		ParticipationType: reg.ParticipationType,
	}
	if listing != nil {
		c.ListingKind = listing.Kind
		c.ListingTitle = listing.Title
		c.Location = listing.Location
		c.StartDate = listing.StartDate
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("confirmation dispatch panicked", "registration_id", reg.ID, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if !s.dispatcher.Send(ctx, c) {
			s.logger.Warn("confirmation dispatch failed",
				"registration_id", reg.ID, "email", reg.Email)
		}
	}()
}

// Get returns a single registration by id.
func (s *RegistrationService) Get(ctx context.Context, id string) (*model.Registration, error) {
	return s.registrations.GetByID(ctx, id)
}

// List returns the archived or the default non-archived view.
func (s *RegistrationService) List(ctx context.Context, archived bool) ([]model.Registration, error) {
	return s.registrations.List(ctx, archived)
}

// Update applies an admin lifecycle change. Status transitions are
// unconditional in every direction; only the enum membership is checked.
func (s *RegistrationService) Update(ctx context.Context, id string, req model.UpdateRegistrationRequest) (*model.Registration, error) {
	if req.Status != nil && !model.RegistrationStatus(*req.Status).Valid() {
		return nil, &model.ValidationError{Errors: map[string]string{
			"status": "status must be pending, confirmed, or cancelled",
		}}
	}
	return s.registrations.Update(ctx, id, req)
}

// Archive hides the registration from the default admin view. Status is
// untouched, so unarchiving restores exactly the prior state.
func (s *RegistrationService) Archive(ctx context.Context, id string) (*model.Registration, error) {
	return s.setArchived(ctx, id, true)
}

// Unarchive returns the registration to the default admin view.
func (s *RegistrationService) Unarchive(ctx context.Context, id string) (*model.Registration, error) {
	return s.setArchived(ctx, id, false)
}

func (s *RegistrationService) setArchived(ctx context.Context, id string, archived bool) (*model.Registration, error) {
	return s.registrations.Update(ctx, id, model.UpdateRegistrationRequest{IsArchived: &archived})
}

// Delete removes the registration permanently. The spot it reserved on any
// listing stays taken: capacity is never released automatically.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	return s.registrations.Delete(ctx, id)
}
