package repository

import (
	"context"
	"database/sql"
	"strings"
)

// ListingSearchQuery defines filters & pagination for browsing listings.
// Search matches case-insensitively against title, location and
// description. Sort accepts the browse page's sort keys; anything
// unrecognized falls back to newest-first.
type ListingSearchQuery struct {
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// PublicListingRow is the sanitized listing shape returned to browsers.
type PublicListingRow struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	AuthorID    *uint64 `json:"author_id,omitempty"`
	SavedBy     int     `json:"saved_by"`
}

func sortClause(sort string) string {
	switch strings.ToLower(sort) {
	case "price_asc":
		return "l.price ASC, l.id DESC"
	case "price_desc":
		return "l.price DESC, l.id DESC"
	case "rating_asc":
		return "l.rating ASC, l.id DESC"
	case "rating_desc":
		return "l.rating DESC, l.id DESC"
	case "oldest":
		return "l.id ASC"
	default: // "newest" and anything unknown
		return "l.id DESC"
	}
}

// Search returns one page of listings matching the query along with the
// total match count. SavedBy is the number of accounts that favorited
// each listing, derived from the favorites join table.
func (r *ListingRepo) Search(ctx context.Context, q ListingSearchQuery) ([]PublicListingRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, "(LOWER(l.title) LIKE ? OR LOWER(l.location) LIKE ? OR LOWER(l.description) LIKE ?)")
		args = append(args, term, term, term)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM listings l WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			l.id,
			l.title,
			l.image_url,
			l.price,
			l.rating,
			l.review_count,
			l.description,
			l.location,
			l.author_id,
			(SELECT COUNT(*) FROM favorites f WHERE f.listing_id = l.id) AS saved_by
		FROM listings l
		WHERE ` + cond + `
		ORDER BY ` + sortClause(q.Sort) + `
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicListingRow, 0, limit)
	for rows.Next() {
		var (
			d        PublicListingRow
			authorID sql.NullInt64
		)
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.ImageURL,
			&d.Price,
			&d.Rating,
			&d.ReviewCount,
			&d.Description,
			&d.Location,
			&authorID,
			&d.SavedBy,
		); err != nil {
			return nil, 0, err
		}
		if authorID.Valid {
			id := uint64(authorID.Int64)
			d.AuthorID = &id
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
