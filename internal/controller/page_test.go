package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dashboard/internal/client"
	"dashboard/internal/domain/models"
	"dashboard/internal/liststate"
)

type fakeCollection struct {
	mu        sync.Mutex
	listCalls []client.ListParams
	items     []models.Category
	listErr   error
	createErr error
	updateErr error
	removeErr error
}

func (f *fakeCollection) List(ctx context.Context, p client.ListParams) (models.Page[models.Category], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, p)
	if f.listErr != nil {
		return models.Page[models.Category]{}, f.listErr
	}
	items := make([]models.Category, len(f.items))
	copy(items, f.items)
	return models.Page[models.Category]{
		Items: items,
		Meta:  models.Meta{CurrentPage: 1, LastPage: 1, Total: len(items)},
	}, nil
}

func (f *fakeCollection) Create(ctx context.Context, fields any) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Category{}, f.createErr
	}
	c := models.Category{ID: int64(len(f.items) + 1), Title: "created"}
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeCollection) Update(ctx context.Context, id int64, fields any) (models.Category, error) {
	if f.updateErr != nil {
		return models.Category{}, f.updateErr
	}
	return models.Category{ID: id}, nil
}

func (f *fakeCollection) Remove(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCollection) calls() []client.ListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]client.ListParams, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached within deadline")
}

func newTestPage(f *fakeCollection, opts ...Option[models.Category]) *Page[models.Category] {
	return NewPage("Category", CategorySchema, f,
		func(c models.Category) int64 { return c.ID }, opts...)
}

func TestSearchInputDebouncedIntoOneFetch(t *testing.T) {
	f := &fakeCollection{}
	p := newTestPage(f, WithSearchDelay[models.Category](40*time.Millisecond))

	p.OnSearchInput("b")
	p.OnSearchInput("bu")
	p.OnSearchInput("budi")

	waitFor(t, func() bool { return len(f.calls()) == 1 })
	time.Sleep(80 * time.Millisecond)

	calls := f.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one fetch, got %d", len(calls))
	}
	if calls[0].Search != "budi" || calls[0].Page != 1 {
		t.Fatalf("fetch should carry last value and page 1: %+v", calls[0])
	}
}

func TestMutationRefetchesWithUnchangedQuery(t *testing.T) {
	f := &fakeCollection{items: []models.Category{{ID: 1, Title: "old"}}}
	p := newTestPage(f)
	ctx := context.Background()

	p.OnFilterChanged(ctx, map[string]string{"title": "ol"})
	waitFor(t, func() bool { return len(f.calls()) == 1 })

	if err := p.SubmitCreate(ctx, map[string]string{"title": "new"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	waitFor(t, func() bool { return len(f.calls()) == 2 })

	calls := f.calls()
	if calls[1].Filters["title"] != "ol" || calls[1].Page != 1 {
		t.Fatalf("refetch should reuse the current query: %+v", calls[1])
	}

	// round-trip: the created entity shows up exactly once
	waitFor(t, func() bool { return p.Store().Snapshot().Phase == liststate.Ready })
	waitFor(t, func() bool { return len(p.Store().Snapshot().Items) == 2 })
	count := 0
	for _, it := range p.Store().Snapshot().Items {
		if it.ID == 2 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("created entity should appear exactly once, got %d", count)
	}
}

func TestDeleteRefetchReflectsServerTotal(t *testing.T) {
	f := &fakeCollection{items: []models.Category{{ID: 5}, {ID: 6}, {ID: 7}, {ID: 8}}}
	p := newTestPage(f)
	ctx := context.Background()

	p.Load(ctx)
	waitFor(t, func() bool { return len(p.Store().Snapshot().Items) == 4 })

	if err := p.ConfirmDelete(ctx, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	waitFor(t, func() bool { return len(p.Store().Snapshot().Items) == 3 })

	snap := p.Store().Snapshot()
	if snap.Meta.Total != 3 {
		t.Fatalf("total should reflect server state, got %d", snap.Meta.Total)
	}
	for _, it := range snap.Items {
		if it.ID == 7 {
			t.Fatalf("deleted entity still listed: %+v", snap.Items)
		}
	}
}

func TestValidationErrorRoutedInline(t *testing.T) {
	var (
		mu       sync.Mutex
		inline   map[string]string
		notified []string
	)
	f := &fakeCollection{createErr: client.ValidationError{
		FieldErrors: map[string]string{"title": "judul wajib diisi"},
	}}
	p := newTestPage(f,
		WithNotifier[models.Category](func(msg string) {
			mu.Lock()
			notified = append(notified, msg)
			mu.Unlock()
		}),
		WithFieldErrorSink[models.Category](func(fe map[string]string) {
			mu.Lock()
			inline = fe
			mu.Unlock()
		}),
	)

	if err := p.SubmitCreate(context.Background(), map[string]string{}); err == nil {
		t.Fatalf("expected error")
	}

	mu.Lock()
	defer mu.Unlock()
	if inline["title"] != "judul wajib diisi" {
		t.Fatalf("field errors not routed inline: %+v", inline)
	}
	if len(notified) != 0 {
		t.Fatalf("validation must not raise a global notification: %v", notified)
	}
}

func TestNotFoundOnDeleteNotifiesAndRefetches(t *testing.T) {
	var (
		mu       sync.Mutex
		notified []string
	)
	f := &fakeCollection{removeErr: client.NotFoundError{Message: "category not found"}}
	p := newTestPage(f, WithNotifier[models.Category](func(msg string) {
		mu.Lock()
		notified = append(notified, msg)
		mu.Unlock()
	}))

	if err := p.ConfirmDelete(context.Background(), 9); err == nil {
		t.Fatalf("expected error")
	}

	waitFor(t, func() bool { return len(f.calls()) == 1 })
	mu.Lock()
	defer mu.Unlock()
	if len(notified) != 1 {
		t.Fatalf("expected one notification, got %v", notified)
	}
}

func TestServerErrorMessageShownVerbatim(t *testing.T) {
	var (
		mu   sync.Mutex
		msgs []string
	)
	f := &fakeCollection{updateErr: client.ServerError{Status: 409, Message: "judul sudah dipakai"}}
	p := newTestPage(f, WithNotifier[models.Category](func(msg string) {
		mu.Lock()
		msgs = append(msgs, msg)
		mu.Unlock()
	}))

	_ = p.SubmitUpdate(context.Background(), 1, map[string]string{})

	mu.Lock()
	defer mu.Unlock()
	if len(msgs) != 1 || msgs[0] != "judul sudah dipakai" {
		t.Fatalf("server message should be shown verbatim: %v", msgs)
	}
}

func TestNetworkFailureOnMutationNotifiesGeneric(t *testing.T) {
	var (
		mu   sync.Mutex
		msgs []string
	)
	f := &fakeCollection{removeErr: client.TransportError{Err: errors.New("connection refused")}}
	p := newTestPage(f, WithNotifier[models.Category](func(msg string) {
		mu.Lock()
		msgs = append(msgs, msg)
		mu.Unlock()
	}))

	_ = p.ConfirmDelete(context.Background(), 1)

	mu.Lock()
	defer mu.Unlock()
	if len(msgs) != 1 || msgs[0] != "Network error. Please check your connection and try again." {
		t.Fatalf("unexpected notifications: %v", msgs)
	}
}

func TestListFailureKeepsPreviousRows(t *testing.T) {
	f := &fakeCollection{items: []models.Category{{ID: 1, Title: "keep"}}}
	p := newTestPage(f)
	ctx := context.Background()

	p.Load(ctx)
	waitFor(t, func() bool { return len(p.Store().Snapshot().Items) == 1 })

	f.mu.Lock()
	f.listErr = client.TransportError{}
	f.mu.Unlock()

	p.OnPageChanged(ctx, 1)
	waitFor(t, func() bool { return p.Store().Snapshot().Phase == liststate.Failed })

	snap := p.Store().Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Title != "keep" {
		t.Fatalf("stale-while-error violated: %+v", snap.Items)
	}
}
