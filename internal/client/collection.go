package client

import (
	"context"
	"net/http"
	"strconv"

	"dashboard/internal/domain/models"
)

// ListParams is the wire form of a paged list request.
type ListParams struct {
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
	Search    string            `json:"search"`
	Filters   map[string]string `json:"filters"`
	SortField string            `json:"sortField"`
	SortOrder string            `json:"sortOrder"`
}

// Collection is the typed client for one entity kind. List posts the
// query to /{name}; mutations go through /{name}/create, PUT and DELETE.
// No retries anywhere: a retried create could duplicate the entity.
type Collection[T any] struct {
	sess *Session
	name string
}

func NewCollection[T any](sess *Session, name string) Collection[T] {
	return Collection[T]{sess: sess, name: name}
}

func (c Collection[T]) url(parts ...string) string {
	u := c.sess.baseURL + "/" + c.name
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

type listEnvelope[T any] struct {
	Data []T         `json:"data"`
	Meta models.Meta `json:"meta"`
}

type itemEnvelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func (c Collection[T]) List(ctx context.Context, p ListParams) (models.Page[T], error) {
	var out listEnvelope[T]
	if err := doJSON(ctx, c.sess.hc, http.MethodPost, c.url(), c.sess.token(), p, &out); err != nil {
		return models.Page[T]{}, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return models.Page[T]{Items: out.Data, Meta: out.Meta}, nil
}

func (c Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var out itemEnvelope[T]
	err := doJSON(ctx, c.sess.hc, http.MethodGet, c.url(strconv.FormatInt(id, 10)), c.sess.token(), nil, &out)
	return out.Data, err
}

func (c Collection[T]) Create(ctx context.Context, fields any) (T, error) {
	var out itemEnvelope[T]
	err := doJSON(ctx, c.sess.hc, http.MethodPost, c.url("create"), c.sess.token(), fields, &out)
	return out.Data, err
}

func (c Collection[T]) Update(ctx context.Context, id int64, fields any) (T, error) {
	var out itemEnvelope[T]
	err := doJSON(ctx, c.sess.hc, http.MethodPut, c.url(strconv.FormatInt(id, 10)), c.sess.token(), fields, &out)
	return out.Data, err
}

func (c Collection[T]) Remove(ctx context.Context, id int64) error {
	return doJSON(ctx, c.sess.hc, http.MethodDelete, c.url(strconv.FormatInt(id, 10)), c.sess.token(), nil, nil)
}
