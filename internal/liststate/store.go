package liststate

import (
	"context"
	"sync"

	"dashboard/internal/domain/models"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// FetchFunc loads one page for a query (normally Collection.List).
type FetchFunc[T any] func(ctx context.Context, q QueryState) (models.Page[T], error)

// Store owns the cached page and fetch lifecycle for one entity kind.
// A fetch in flight is superseded, not queued, by a newer request:
// every request gets a monotonic token and only the latest token may
// write its result back, so responses apply in request-issue order and
// a stale response is discarded silently.
type Store[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	idOf  func(T) int64

	phase   Phase
	items   []T
	meta    models.Meta
	hasMeta bool
	err     error
	query   QueryState
	seq     uint64
}

func NewStore[T any](fetch FetchFunc[T], idOf func(T) int64) *Store[T] {
	return &Store[T]{fetch: fetch, idOf: idOf, phase: Idle}
}

// Snapshot is a read-only view handed to renderers. Items is a copy;
// the cache is only ever mutated through store actions.
type Snapshot[T any] struct {
	Phase   Phase
	Items   []T
	Meta    models.Meta
	HasMeta bool
	Err     error
	Query   QueryState
}

func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return Snapshot[T]{
		Phase:   s.phase,
		Items:   items,
		Meta:    s.meta,
		HasMeta: s.hasMeta,
		Err:     s.err,
		Query:   s.query,
	}
}

// LastPage returns the last known page count, 0 before any metadata.
func (s *Store[T]) LastPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasMeta {
		return 0
	}
	return s.meta.LastPage
}

// Query returns the query of the most recent fetch request.
func (s *Store[T]) Query() QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// RequestFetch issues an asynchronous fetch for q. The returned token
// identifies the request; only the latest token's resolution is applied.
func (s *Store[T]) RequestFetch(ctx context.Context, q QueryState) uint64 {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.phase = Loading
	s.query = q
	s.mu.Unlock()

	go func() {
		page, err := s.fetch(ctx, q)
		s.resolve(token, page, err)
	}()

	return token
}

func (s *Store[T]) resolve(token uint64, page models.Page[T], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		// a newer request was issued; this resolution is stale
		return
	}

	if err != nil {
		// stale-while-error: keep the last good page on display
		s.phase = Failed
		s.err = err
		return
	}

	s.phase = Ready
	s.err = nil
	s.items = page.Items
	s.meta = page.Meta
	s.hasMeta = true
}

// ApplyCreate inserts the entity at the head of the cached page without
// a refetch. Callers wanting consistency with server-side sort/filter
// should refetch instead; this mirrors the optimistic unshift the users
// page did.
func (s *Store[T]) ApplyCreate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
	if s.hasMeta {
		s.meta.Total++
	}
}

// ApplyUpdate replaces the matching item in place. A missing id is a
// no-op, not an error: the entity may live on a different page.
func (s *Store[T]) ApplyUpdate(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.idOf(item)
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = item
			return
		}
	}
}

// ApplyDelete removes the matching item. Missing id is a no-op.
func (s *Store[T]) ApplyDelete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.hasMeta && s.meta.Total > 0 {
				s.meta.Total--
			}
			return
		}
	}
}
