package controller

import (
	"dashboard/internal/client"
	intconfig "dashboard/internal/config"
	"dashboard/internal/domain/models"
	"dashboard/internal/liststate"
)

// DefaultSession builds a session from process configuration
// (API_BASE_URL, HTTP_TIMEOUT_SECONDS).
func DefaultSession() *client.Session {
	env := intconfig.LoadEnv()
	return client.NewSession(env.APIBaseURL, env.HTTPTimeout, nil)
}

// Per-entity schemas: one source of truth for what each page may
// filter, sort and search on, replacing the loose per-page mappings.

var UserSchema = liststate.Schema{
	FilterFields:     []string{"id", "name", "email", "setting.phone", "setting.city"},
	SortFields:       []string{"id", "name", "email", "setting.phone", "setting.city"},
	SearchFields:     []string{"name", "email"},
	DefaultSortField: "id",
	DefaultLimit:     20,
}

var CategorySchema = liststate.Schema{
	FilterFields:     []string{"id", "title", "description"},
	SortFields:       []string{"id", "title", "description"},
	SearchFields:     []string{"title", "description"},
	DefaultSortField: "id",
	DefaultLimit:     20,
}

var PostSchema = liststate.Schema{
	FilterFields:     []string{"id", "title", "description", "user.name", "user_id"},
	SortFields:       []string{"id", "title", "description", "user.name"},
	SearchFields:     []string{"title", "description"},
	DefaultSortField: "id",
	DefaultLimit:     20,
}

// UsersPage builds the controller for the users page.
func UsersPage(sess *client.Session, opts ...Option[models.User]) *Page[models.User] {
	coll := client.NewCollection[models.User](sess, "users")
	return NewPage("User", UserSchema, coll, func(u models.User) int64 { return u.ID }, opts...)
}

func CategoriesPage(sess *client.Session, opts ...Option[models.Category]) *Page[models.Category] {
	coll := client.NewCollection[models.Category](sess, "categories")
	return NewPage("Category", CategorySchema, coll, func(c models.Category) int64 { return c.ID }, opts...)
}

func PostsPage(sess *client.Session, opts ...Option[models.Post]) *Page[models.Post] {
	coll := client.NewCollection[models.Post](sess, "posts")
	return NewPage("Post", PostSchema, coll, func(p models.Post) int64 { return p.ID }, opts...)
}
