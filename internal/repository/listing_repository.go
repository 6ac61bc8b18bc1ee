package repository

// This file defines repository methods for campground listings: CRUD plus the
// authorization-aware update and delete used by the listing handlers. A
// listing belongs to at most one author; admins may modify any listing.

import (
	"context"
	"database/sql"
	"errors"

	"github.com/findmycamp/api/internal/model"
)

// ErrListingNotFound is returned when a listing cannot be found in the DB.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepo encapsulates all database queries related to listings. It
// depends on a sql.DB connection which should be configured elsewhere.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the provided DB handle.
func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

const listingColumns = "id, title, image_url, price, rating, review_count, description, location, author_id, created_at, updated_at"

func scanListing(scan func(dest ...any) error) (*model.Listing, error) {
	var (
		l        model.Listing
		authorID sql.NullInt64
	)
	err := scan(&l.ID, &l.Title, &l.ImageURL, &l.Price, &l.Rating, &l.ReviewCount,
		&l.Description, &l.Location, &authorID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if authorID.Valid {
		id := uint64(authorID.Int64)
		l.AuthorID = &id
	}
	return &l, nil
}

// Create inserts a new listing. On success the listing's ID field is
// populated with the auto-generated value and the timestamp fields are
// read back so callers receive a fully populated record.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	const qInsert = `INSERT INTO listings
		(title, image_url, price, rating, review_count, description, location, author_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var authorID any
	if l.AuthorID != nil {
		authorID = *l.AuthorID
	}
	res, err := r.db.ExecContext(ctx, qInsert,
		l.Title, l.ImageURL, l.Price, l.Rating, l.ReviewCount, l.Description, l.Location, authorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM listings WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, l.ID).Scan(&l.CreatedAt, &l.UpdatedAt)
}

// GetByID fetches a listing by its ID. It returns ErrListingNotFound
// if no row is found.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+listingColumns+" FROM listings WHERE id = ?", id)
	l, err := scanListing(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

// UpdateByIDAndActor updates a listing's editable fields if the actor
// is its author or an admin. Authentication happens before this call;
// here only authorization is checked. Returns sql.ErrNoRows when the
// listing does not exist and ErrForbidden when the actor is neither
// author nor admin.
func (r *ListingRepo) UpdateByIDAndActor(ctx context.Context, l *model.Listing, actorID uint64, isAdmin bool) error {
	var authorID sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT author_id FROM listings WHERE id = ?", l.ID).Scan(&authorID)
	if err != nil {
		return err
	}
	if !isAdmin && (!authorID.Valid || uint64(authorID.Int64) != actorID) {
		return ErrForbidden
	}
	const q = `UPDATE listings
	           SET title = ?, image_url = ?, price = ?, rating = ?, review_count = ?,
	               description = ?, location = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q,
		l.Title, l.ImageURL, l.Price, l.Rating, l.ReviewCount, l.Description, l.Location, l.ID)
	return err
}

// DeleteByIDAndActor removes a listing and every favorite edge that
// references it, provided the actor is its author or an admin. The
// cascade and the delete run in one transaction so no account is left
// holding an edge to a listing that no longer exists. Returns
// sql.ErrNoRows when the listing does not exist and ErrForbidden when
// the actor may not delete it.
func (r *ListingRepo) DeleteByIDAndActor(ctx context.Context, id, actorID uint64, isAdmin bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var authorID sql.NullInt64
	if err = tx.QueryRowContext(ctx, "SELECT author_id FROM listings WHERE id = ?", id).Scan(&authorID); err != nil {
		return err
	}
	if !isAdmin && (!authorID.Valid || uint64(authorID.Int64) != actorID) {
		err = ErrForbidden
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM favorites WHERE listing_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}
