package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type edge struct{ account, listing uint64 }

// memStore is an in-memory Store with the same atomicity guarantees as
// the uniquely-keyed join table: one mutex-guarded edge set.
type memStore struct {
	mu       sync.Mutex
	listings map[uint64]bool
	edges    map[edge]bool
	writes   int // mutating calls that actually changed state
	failNext error
}

func newMemStore(listingIDs ...uint64) *memStore {
	s := &memStore{listings: map[uint64]bool{}, edges: map[edge]bool{}}
	for _, id := range listingIDs {
		s.listings[id] = true
	}
	return s
}

func (s *memStore) ListingExists(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return false, err
	}
	return s.listings[id], nil
}

func (s *memStore) InsertEdge(_ context.Context, accountID, listingID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := edge{accountID, listingID}
	if s.edges[e] {
		return false, nil
	}
	s.edges[e] = true
	s.writes++
	return true, nil
}

func (s *memStore) DeleteEdge(_ context.Context, accountID, listingID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := edge{accountID, listingID}
	if !s.edges[e] {
		return false, nil
	}
	delete(s.edges, e)
	s.writes++
	return true, nil
}

// deleteListing simulates the listing-delete cascade: the listing and
// every edge referencing it disappear together.
func (s *memStore) deleteListing(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listings, id)
	for e := range s.edges {
		if e.listing == id {
			delete(s.edges, e)
		}
	}
}

// savedBy and saversOf are the two derived views of the edge set; with
// a single edge set they agree by construction, and the tests lean on
// that to check the bidirectional invariant.
func (s *memStore) savedBy(accountID uint64) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint64
	for e := range s.edges {
		if e.account == accountID {
			out = append(out, e.listing)
		}
	}
	return out
}

func (s *memStore) saversOf(listingID uint64) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint64
	for e := range s.edges {
		if e.listing == listingID {
			out = append(out, e.account)
		}
	}
	return out
}

func TestSave_ThenSaveAgainIsNoop(t *testing.T) {
	t.Parallel()

	s := newMemStore(10)
	m := NewManager(s)
	ctx := context.Background()

	res, err := m.Save(ctx, 1, 10)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if res.Action != ActionSaved || !res.Changed {
		t.Fatalf("first save: got %+v", res)
	}

	res, err = m.Save(ctx, 1, 10)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if res.Action != ActionAlreadySaved || res.Changed {
		t.Fatalf("second save: got %+v", res)
	}
	if s.writes != 1 {
		t.Fatalf("writes = %d, want 1", s.writes)
	}
}

func TestSaveUnsave_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newMemStore(10)
	m := NewManager(s)
	ctx := context.Background()

	if _, err := m.Save(ctx, 1, 10); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := m.Unsave(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if res.Action != ActionUnsaved || !res.Changed {
		t.Fatalf("unsave: got %+v", res)
	}
	if len(s.savedBy(1)) != 0 || len(s.saversOf(10)) != 0 {
		t.Fatal("round trip must restore the pre-save state")
	}
}

func TestUnsave_NeverSavedIsNoop(t *testing.T) {
	t.Parallel()

	s := newMemStore(10)
	m := NewManager(s)

	res, err := m.Unsave(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if res.Action != ActionNotSaved || res.Changed {
		t.Fatalf("got %+v", res)
	}
	if s.writes != 0 {
		t.Fatalf("writes = %d, want 0", s.writes)
	}
}

func TestSave_MissingListing(t *testing.T) {
	t.Parallel()

	m := NewManager(newMemStore())
	if _, err := m.Save(context.Background(), 1, 99); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("err = %v, want ErrListingNotFound", err)
	}
	if _, err := m.Unsave(context.Background(), 1, 99); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("unsave err = %v, want ErrListingNotFound", err)
	}
}

func TestSave_StoreFailureSurfaces(t *testing.T) {
	t.Parallel()

	s := newMemStore(10)
	s.failNext = errors.New("connection reset")
	m := NewManager(s)
	if _, err := m.Save(context.Background(), 1, 10); err == nil {
		t.Fatal("expected store failure to surface")
	}
}

// Two racing saves of the same pair must leave it related exactly once,
// with exactly one of them reporting the write.
func TestSave_ConcurrentSamePair(t *testing.T) {
	t.Parallel()

	s := newMemStore(10)
	m := NewManager(s)
	ctx := context.Background()

	const racers = 16
	results := make([]Result, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := m.Save(ctx, 1, 10)
			if err != nil {
				t.Errorf("racer %d: %v", i, err)
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
		}
	}
	if changed != 1 {
		t.Fatalf("changed saves = %d, want exactly 1", changed)
	}
	if got := s.savedBy(1); len(got) != 1 || got[0] != 10 {
		t.Fatalf("saved set = %v, want [10]", got)
	}
}

// A racing save and unsave settle on whichever write landed last; the
// invariant that both derived views agree holds either way.
func TestSaveUnsave_ConcurrentInvariantHolds(t *testing.T) {
	t.Parallel()

	s := newMemStore(10)
	m := NewManager(s)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = m.Save(ctx, 1, 10)
		}()
		go func() {
			defer wg.Done()
			_, _ = m.Unsave(ctx, 1, 10)
		}()
	}
	wg.Wait()

	saved := s.savedBy(1)
	savers := s.saversOf(10)
	if len(saved) != len(savers) {
		t.Fatalf("views diverged: savedBy=%v saversOf=%v", saved, savers)
	}
	if len(saved) > 1 {
		t.Fatalf("pair related more than once: %v", saved)
	}
}

// After an arbitrary mix of saves, unsaves and a listing delete, every
// remaining edge resolves from both sides.
func TestListingDeleteCascade(t *testing.T) {
	t.Parallel()

	s := newMemStore(10, 11)
	m := NewManager(s)
	ctx := context.Background()

	for _, acct := range []uint64{1, 2} {
		for _, l := range []uint64{10, 11} {
			if _, err := m.Save(ctx, acct, l); err != nil {
				t.Fatalf("save %d/%d: %v", acct, l, err)
			}
		}
	}
	_, _ = m.Unsave(ctx, 2, 11)

	s.deleteListing(10)

	for _, acct := range []uint64{1, 2} {
		for _, l := range s.savedBy(acct) {
			if l == 10 {
				t.Fatalf("account %d still references deleted listing", acct)
			}
		}
	}
	if got := s.savedBy(1); len(got) != 1 || got[0] != 11 {
		t.Fatalf("account 1 saved set = %v, want [11]", got)
	}
	if len(s.saversOf(10)) != 0 {
		t.Fatal("deleted listing still has savers")
	}
}
