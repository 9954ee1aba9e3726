package models

// Post references one author and many categories by id; list and detail
// responses embed the denormalized objects the way the dashboard table
// expects them (user.name, categories).
type Post struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	UserID      int64      `json:"user_id"`
	User        *UserRef   `json:"user,omitempty"`
	Categories  []Category `json:"categories"`
	CreatedAt   string     `json:"createdAt,omitempty"`
}
