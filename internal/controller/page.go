package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"dashboard/internal/client"
	"dashboard/internal/domain/models"
	"dashboard/internal/liststate"
)

// RemoteCollection is the slice of client.Collection the controller
// needs; tests substitute fakes here.
type RemoteCollection[T any] interface {
	List(ctx context.Context, p client.ListParams) (models.Page[T], error)
	Create(ctx context.Context, fields any) (T, error)
	Update(ctx context.Context, id int64, fields any) (T, error)
	Remove(ctx context.Context, id int64) error
}

// Notifier receives user-visible messages. Dismissal is an explicit
// user action; the controller never expires its own notification.
type Notifier func(message string)

// FieldErrorSink receives per-field validation messages for inline
// display in the form dialog.
type FieldErrorSink func(fieldErrors map[string]string)

// Page orchestrates one dashboard page: table events go through the
// query reducer into the store, form submits go to the backend and, on
// success, trigger a refetch with the unchanged QueryState (local
// splicing is unsound under server-side sort/filter/pagination).
type Page[T any] struct {
	label  string
	schema liststate.Schema
	coll   RemoteCollection[T]
	store  *liststate.Store[T]

	mu    sync.Mutex
	query liststate.QueryState

	debouncer   *liststate.Debouncer
	notify      Notifier
	fieldErrors FieldErrorSink
}

// Option tweaks controller construction.
type Option[T any] func(*Page[T])

func WithNotifier[T any](n Notifier) Option[T] {
	return func(p *Page[T]) { p.notify = n }
}

func WithFieldErrorSink[T any](s FieldErrorSink) Option[T] {
	return func(p *Page[T]) { p.fieldErrors = s }
}

func WithSearchDelay[T any](d time.Duration) Option[T] {
	return func(p *Page[T]) {
		p.debouncer = liststate.NewDebouncer(d, p.searchChanged)
	}
}

// NewPage wires schema, store and collection for one entity kind.
// label names the entity in notifications ("User", "Category", "Post").
func NewPage[T any](label string, schema liststate.Schema, coll RemoteCollection[T], idOf func(T) int64, opts ...Option[T]) *Page[T] {
	p := &Page[T]{
		label:       label,
		schema:      schema,
		coll:        coll,
		query:       schema.Initial(),
		notify:      func(string) {},
		fieldErrors: func(map[string]string) {},
	}
	p.store = liststate.NewStore(p.fetch, idOf)
	for _, opt := range opts {
		opt(p)
	}
	if p.debouncer == nil {
		p.debouncer = liststate.NewDebouncer(liststate.DefaultSearchDelay, p.searchChanged)
	}
	return p
}

// Store exposes the underlying list-state store for renderers.
func (p *Page[T]) Store() *liststate.Store[T] {
	return p.store
}

// Query returns the controller's current query state.
func (p *Page[T]) Query() liststate.QueryState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *Page[T]) fetch(ctx context.Context, q liststate.QueryState) (models.Page[T], error) {
	return p.coll.List(ctx, client.ListParams{
		Page:      q.Page,
		Limit:     q.Limit,
		Search:    q.Search,
		Filters:   q.Filters,
		SortField: q.SortField,
		SortOrder: string(q.SortOrder),
	})
}

// Load triggers the initial fetch.
func (p *Page[T]) Load(ctx context.Context) {
	p.store.RequestFetch(ctx, p.Query())
}

func (p *Page[T]) apply(ctx context.Context, ev liststate.Event) {
	p.mu.Lock()
	p.query = p.schema.Reduce(p.query, ev, p.store.LastPage())
	q := p.query
	p.mu.Unlock()
	p.store.RequestFetch(ctx, q)
}

// OnSearchInput is called on every keystroke; only the last value in a
// debounce window becomes a SearchChanged event.
func (p *Page[T]) OnSearchInput(text string) {
	p.debouncer.Input(text)
}

func (p *Page[T]) searchChanged(text string) {
	p.apply(context.Background(), liststate.SearchChanged{Text: text})
}

// OnFilterChanged receives the table's complete current filter set.
func (p *Page[T]) OnFilterChanged(ctx context.Context, filters map[string]string) {
	p.apply(ctx, liststate.ColumnFilterChanged{Filters: filters})
}

// OnSortChanged receives the primary sort entry; empty field clears it.
func (p *Page[T]) OnSortChanged(ctx context.Context, field string, direction liststate.SortDirection) {
	p.apply(ctx, liststate.SortChanged{Field: field, Direction: direction})
}

func (p *Page[T]) OnPageChanged(ctx context.Context, page int) {
	p.apply(ctx, liststate.PageChanged{Page: page})
}

// SubmitCreate sends the captured form values and refetches on success.
func (p *Page[T]) SubmitCreate(ctx context.Context, fields any) error {
	if _, err := p.coll.Create(ctx, fields); err != nil {
		p.routeMutationError(ctx, err)
		return err
	}
	p.notify(p.label + " created successfully!")
	p.refetch(ctx)
	return nil
}

func (p *Page[T]) SubmitUpdate(ctx context.Context, id int64, fields any) error {
	if _, err := p.coll.Update(ctx, id, fields); err != nil {
		p.routeMutationError(ctx, err)
		return err
	}
	p.notify(p.label + " updated successfully!")
	p.refetch(ctx)
	return nil
}

// ConfirmDelete runs after the user confirmed the delete dialog.
func (p *Page[T]) ConfirmDelete(ctx context.Context, id int64) error {
	if err := p.coll.Remove(ctx, id); err != nil {
		p.routeMutationError(ctx, err)
		return err
	}
	p.notify(p.label + " deleted successfully!")
	p.refetch(ctx)
	return nil
}

func (p *Page[T]) refetch(ctx context.Context) {
	p.store.RequestFetch(ctx, p.Query())
}

// routeMutationError maps failures per the error taxonomy: validation
// goes inline next to form fields, everything else becomes a global
// notification. A vanished entity additionally refetches so the stale
// row drops out.
func (p *Page[T]) routeMutationError(ctx context.Context, err error) {
	var (
		validation client.ValidationError
		server     client.ServerError
	)
	switch {
	case errors.As(err, &validation):
		p.fieldErrors(validation.FieldErrors)
	case client.IsNotFound(err):
		p.notify(p.label + " no longer exists.")
		p.refetch(ctx)
	case errors.As(err, &server):
		if server.Message != "" {
			p.notify(server.Message)
		} else {
			p.notify("Something went wrong. Please try again.")
		}
	default:
		p.notify("Network error. Please check your connection and try again.")
	}
}
