// Package favorites maintains the saved-listing relation between
// accounts and listings. The relation is a single edge set keyed by
// (account, listing); the "listings saved by an account" and "accounts
// that saved a listing" views are both derived from it, so the two
// sides cannot diverge under partial failure the way a pair of
// id-arrays can.
package favorites

import (
	"context"
	"errors"
)

// ErrListingNotFound is returned when the target listing does not
// exist (or was deleted out from under the caller).
var ErrListingNotFound = errors.New("listing not found")

// Store is the persistence surface the manager needs. InsertEdge and
// DeleteEdge report whether they changed anything: inserting an edge
// that already exists and deleting one that never did are expected
// no-ops, not errors. Both must be atomic single-row operations so
// racing saves relate a pair exactly once.
type Store interface {
	ListingExists(ctx context.Context, listingID uint64) (bool, error)
	InsertEdge(ctx context.Context, accountID, listingID uint64) (bool, error)
	DeleteEdge(ctx context.Context, accountID, listingID uint64) (bool, error)
}

// Action names the outcome of a save or unsave request. The values
// match the acknowledgment payload returned to API clients.
type Action string

const (
	ActionSaved        Action = "saved"
	ActionAlreadySaved Action = "already_saved"
	ActionUnsaved      Action = "unsaved"
	ActionNotSaved     Action = "not_saved"
)

// Result reports what a save/unsave call did. Changed is false for
// the idempotent no-op outcomes.
type Result struct {
	Action  Action
	Changed bool
}

// Manager implements the idempotent save/unsave operations on top of
// a Store.
type Manager struct {
	store Store
}

// NewManager returns a Manager bound to the given store.
func NewManager(s Store) *Manager {
	if s == nil {
		panic("nil store passed to favorites.NewManager")
	}
	return &Manager{store: s}
}

// Save records that the account saved the listing. Saving an already
// saved listing reports already_saved and issues no write. A missing
// listing yields ErrListingNotFound.
func (m *Manager) Save(ctx context.Context, accountID, listingID uint64) (Result, error) {
	ok, err := m.store.ListingExists(ctx, listingID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, ErrListingNotFound
	}
	inserted, err := m.store.InsertEdge(ctx, accountID, listingID)
	if err != nil {
		return Result{}, err
	}
	if !inserted {
		return Result{Action: ActionAlreadySaved}, nil
	}
	return Result{Action: ActionSaved, Changed: true}, nil
}

// Unsave removes the account's save of the listing. Unsaving a pair
// that was never saved reports not_saved and issues no write beyond
// the delete probe itself. A missing listing yields ErrListingNotFound,
// mirroring Save.
func (m *Manager) Unsave(ctx context.Context, accountID, listingID uint64) (Result, error) {
	ok, err := m.store.ListingExists(ctx, listingID)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, ErrListingNotFound
	}
	deleted, err := m.store.DeleteEdge(ctx, accountID, listingID)
	if err != nil {
		return Result{}, err
	}
	if !deleted {
		return Result{Action: ActionNotSaved}, nil
	}
	return Result{Action: ActionUnsaved, Changed: true}, nil
}
