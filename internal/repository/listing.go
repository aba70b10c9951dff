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

const listingColumns = `id, kind, title, description, location, start_date, end_date,
	image_url, capacity, registered_count, is_active, created_at, updated_at`

// listingRepository is the PostgreSQL-backed ListingRepository.
type listingRepository struct {
	db *pgxpool.Pool
}

// NewListingRepository constructs a ListingRepository backed by pgx.
func NewListingRepository(db *pgxpool.Pool) ListingRepository {
	return &listingRepository{db: db}
}

func scanListing(row pgx.Row) (*model.Listing, error) {
	var l model.Listing
	err := row.Scan(
		&l.ID, &l.Kind, &l.Title, &l.Description, &l.Location,
		&l.StartDate, &l.EndDate, &l.ImageURL,
		&l.Capacity, &l.RegisteredCount, &l.IsActive,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserts a new listing.
func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		listing.ID, listing.Kind, listing.Title, listing.Description, listing.Location,
		listing.StartDate, listing.EndDate, listing.ImageURL,
		listing.Capacity, listing.RegisteredCount, listing.IsActive,
		listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// GetByID returns a single listing of the given kind or ErrNotFound.
func (r *listingRepository) GetByID(ctx context.Context, kind model.ListingKind, id string) (*model.Listing, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1 AND kind = $2`,
		id, kind,
	)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}

// List returns all listings of the given kind, newest first. With activeOnly
// set it returns only publicly visible listings.
func (r *listingRepository) List(ctx context.Context, kind model.ListingKind, activeOnly bool) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE kind = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

// Update merges the supplied fields into the stored listing inside a
// transaction, holding a row lock so a concurrent intake increment cannot be
// lost between the read and the write.
func (r *listingRepository) Update(ctx context.Context, kind model.ListingKind, id string, req model.UpdateListingRequest) (*model.Listing, error) {
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
		`SELECT `+listingColumns+` FROM listings WHERE id = $1 AND kind = $2 FOR UPDATE`,
		id, kind,
	)
	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock listing row: %w", err)
	}

	applyListingUpdate(listing, req)
	listing.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx,
		`UPDATE listings
		 SET title = $1, description = $2, location = $3, start_date = $4, end_date = $5,
		     image_url = $6, capacity = $7, is_active = $8, updated_at = $9
		 WHERE id = $10`,
		listing.Title, listing.Description, listing.Location, listing.StartDate, listing.EndDate,
		listing.ImageURL, listing.Capacity, listing.IsActive, listing.UpdatedAt,
		listing.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return listing, nil
}

// Delete removes the listing permanently, or returns ErrNotFound.
func (r *listingRepository) Delete(ctx context.Context, kind model.ListingKind, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM listings WHERE id = $1 AND kind = $2`,
		id, kind,
	)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// applyListingUpdate copies only the non-nil request fields onto the listing.
func applyListingUpdate(listing *model.Listing, req model.UpdateListingRequest) {
	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.StartDate != nil {
		listing.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		listing.EndDate = req.EndDate
	}
	if req.ImageURL != nil {
		listing.ImageURL = *req.ImageURL
	}
	if req.Capacity != nil {
		listing.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}
}
