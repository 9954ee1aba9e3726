package models

// Meta is the pagination block returned alongside every paged listing.
type Meta struct {
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
	Total       int `json:"total"`
}

// Page is one server-paginated slice of a collection.
type Page[T any] struct {
	Items []T
	Meta  Meta
}
