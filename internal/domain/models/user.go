package models

// UserSetting holds the nested contact block shown in the users table
// (setting.phone / setting.city columns).
type UserSetting struct {
	Phone string `json:"phone"`
	City  string `json:"city"`
}

type User struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username,omitempty"`
	Email    string      `json:"email"`
	Role     string      `json:"role,omitempty"`
	Status   string      `json:"status,omitempty"`
	Setting  UserSetting `json:"setting"`

	// PasswordHash never leaves the server.
	PasswordHash string `json:"-"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UserRef is the denormalized author embedded in post listings.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
