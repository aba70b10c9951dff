package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maplegrovecc/communityhub/internal/model"
)

const registrationColumns = `id, event_id, program_id, trip_id, first_name, last_name,
	email, phone, notes, participation_type, status, is_archived, created_at`

// registrationRepository is the PostgreSQL-backed RegistrationRepository.
type registrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository backed by pgx.
func NewRegistrationRepository(db *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{db: db}
}

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	var reg model.Registration
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.ProgramID, &reg.TripID,
		&reg.FirstName, &reg.LastName, &reg.Email, &reg.Phone, &reg.Notes,
		&reg.ParticipationType, &reg.Status, &reg.IsArchived, &reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Create inserts the registration and bumps the registered count of every
// referenced listing inside one transaction.
//
// SELECT ... FOR UPDATE takes a row-level lock on each referenced listing, so
// concurrent registrations against the same listing serialize here: only one
// transaction at a time can read the counter and write it back. Without the
// lock, two registrations could both observe the last free spot and both
// commit, overbooking the listing.
func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (`+registrationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		reg.ID, reg.EventID, reg.ProgramID, reg.TripID,
		reg.FirstName, reg.LastName, reg.Email, reg.Phone, reg.Notes,
		reg.ParticipationType, reg.Status, reg.IsArchived, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}

	for _, ref := range reg.References() {
		var capacity, count int
		err = tx.QueryRow(ctx,
			`SELECT capacity, registered_count FROM listings
			 WHERE id = $1 AND kind = $2
			 FOR UPDATE`,
			ref.ID, ref.Kind,
		).Scan(&capacity, &count)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				err = &model.ReferenceNotFoundError{Kind: ref.Kind}
				return err
			}
			return fmt.Errorf("lock listing row: %w", err)
		}
		if count >= capacity {
			err = &model.CapacityExceededError{Kind: ref.Kind}
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE listings
			 SET registered_count = registered_count + 1, updated_at = $2
			 WHERE id = $1`,
			ref.ID, time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("increment registered count: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID returns a single registration or ErrNotFound.
func (r *registrationRepository) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`,
		id,
	)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// List returns the archived or non-archived registrations, newest first.
func (r *registrationRepository) List(ctx context.Context, archived bool) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE is_archived = $1
		 ORDER BY created_at DESC`,
		archived,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// Update merges the supplied fields into the stored registration.
// The registered count of any referenced listing is never touched here:
// cancelling or archiving does not release the reserved spot.
func (r *registrationRepository) Update(ctx context.Context, id string, req model.UpdateRegistrationRequest) (*model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1 FOR UPDATE`,
		id,
	)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock registration row: %w", err)
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

	_, err = tx.Exec(ctx,
		`UPDATE registrations SET status = $1, is_archived = $2, notes = $3 WHERE id = $4`,
		reg.Status, reg.IsArchived, reg.Notes, reg.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// Delete removes the registration permanently, or returns ErrNotFound.
func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
