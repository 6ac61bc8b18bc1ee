package repository

import (
	"context"
	"database/sql"

	"github.com/findmycamp/api/internal/model"
)

// FavoriteRepo provides data access to the favorites join table. Each
// row is one (account, listing) edge; the primary key doubles as the
// uniqueness constraint, so an INSERT IGNORE / DELETE pair gives the
// idempotent, race-safe semantics the favorites manager relies on.
// FavoriteRepo satisfies favorites.Store.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the provided database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// ListingExists reports whether a listing row exists.
func (r *FavoriteRepo) ListingExists(ctx context.Context, listingID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM listings WHERE id = ? LIMIT 1", listingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertEdge adds the (account, listing) edge. It reports false when
// the edge already existed; INSERT IGNORE plus the primary key makes
// the check-and-insert a single atomic statement.
func (r *FavoriteRepo) InsertEdge(ctx context.Context, accountID, listingID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO favorites (account_id, listing_id) VALUES (?, ?)",
		accountID, listingID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteEdge removes the (account, listing) edge, reporting false when
// there was nothing to remove.
func (r *FavoriteRepo) DeleteEdge(ctx context.Context, accountID, listingID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE account_id = ? AND listing_id = ?",
		accountID, listingID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListSavedByAccount returns the listings an account has saved, newest
// save first. The JOIN against listings means an edge whose listing
// was deleted between statements simply does not surface as an error
// or a hole in the result.
func (r *FavoriteRepo) ListSavedByAccount(ctx context.Context, accountID uint64) ([]*model.Listing, error) {
	const q = `SELECT l.id, l.title, l.image_url, l.price, l.rating, l.review_count,
	                  l.description, l.location, l.author_id, l.created_at, l.updated_at
	           FROM favorites f
	           JOIN listings l ON l.id = f.listing_id
	           WHERE f.account_id = ?
	           ORDER BY f.created_at DESC, l.id DESC`
	rows, err := r.db.QueryContext(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Listing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaverIDs returns the ids of every account that saved the listing.
func (r *FavoriteRepo) SaverIDs(ctx context.Context, listingID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT account_id FROM favorites WHERE listing_id = ? ORDER BY account_id", listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsSaved reports whether the account currently has the listing saved.
func (r *FavoriteRepo) IsSaved(ctx context.Context, accountID, listingID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM favorites WHERE account_id = ? AND listing_id = ? LIMIT 1",
		accountID, listingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
