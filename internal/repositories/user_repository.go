package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "dashboard/internal/config"
	intdb "dashboard/internal/db"
	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
)

// UserRepository wraps DB access for the users collection.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var userSchema = collectionSchema{
	columns: map[string]column{
		"id":            {name: "id", exact: true},
		"name":          {name: "name"},
		"email":         {name: "email"},
		"setting.phone": {name: "phone"},
		"setting.city":  {name: "city"},
	},
	searchColumns: []string{"name", "email"},
	searchFields:  []string{"name", "email"},
	sortable: map[string]string{
		"id":            "id",
		"name":          "name",
		"email":         "email",
		"setting.phone": "phone",
		"setting.city":  "city",
	},
	defaultSort: "id",
}

const userSelect = `
	SELECT
		id,
		name,
		COALESCE(username,''),
		email,
		COALESCE(phone,''),
		COALESCE(city,''),
		COALESCE(role,''),
		COALESCE(status,''),
		COALESCE(created_at,'')
	FROM users`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Setting.Phone,
		&u.Setting.City,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
	)
	return u, err
}

// List returns one paged slice. The count runs first so an out-of-range
// page can be clamped to the last page before the row query.
func (r UserRepository) List(p ListParams) (models.Page[models.User], error) {
	p = p.Normalize()
	db := r.db()

	where, args := userSchema.whereClause(p)

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return models.Page[models.User]{}, domain.InternalError{Msg: "gagal menghitung users", Err: err}
	}

	meta, page := pageMeta(total, p.Page, p.Limit)
	offset := (page - 1) * p.Limit

	query := userSelect + where + userSchema.orderClause(p) + " LIMIT ? OFFSET ?"
	rows, err := db.Query(query, append(args, p.Limit, offset)...)
	if err != nil {
		return models.Page[models.User]{}, domain.InternalError{Msg: "gagal mengambil data users", Err: err}
	}
	defer rows.Close()

	items := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return models.Page[models.User]{}, domain.InternalError{Msg: "gagal scan user", Err: err}
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.User]{}, domain.InternalError{Msg: "error iterasi rows", Err: err}
	}

	return models.Page[models.User]{Items: items, Meta: meta}, nil
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	u, err := scanUser(r.db().QueryRow(userSelect+" WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "gagal query user", Err: err}
	}
	return u, nil
}

// UserInput is the create/update payload after handler-side validation.
type UserInput struct {
	Name         string
	Username     string
	Email        string
	Phone        string
	City         string
	Role         string
	Status       string
	PasswordHash string
}

func (r UserRepository) Create(in UserInput) (models.User, error) {
	db := r.db()

	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ? OR (username <> '' AND username = ?)`,
		in.Email, in.Username).Scan(&exists)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal cek user", Err: err}
	}
	if exists > 0 {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email atau username sudah terdaftar"}
	}

	if in.Role == "" {
		in.Role = "user"
	}
	if in.Status == "" {
		in.Status = "active"
	}

	res, err := db.Exec(`
		INSERT INTO users (name, username, email, phone, city, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		in.Name, intdb.NullIfEmpty(in.Username), in.Email,
		intdb.NullIfEmpty(in.Phone), intdb.NullIfEmpty(in.City),
		in.PasswordHash, in.Role, in.Status,
	)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal menyimpan user", Err: err}
	}

	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r UserRepository) Update(id int64, in UserInput) (models.User, error) {
	if _, err := r.GetByID(id); err != nil {
		return models.User{}, err
	}

	_, err := r.db().Exec(`
		UPDATE users
		SET name = ?, email = ?, phone = ?, city = ?, updated_at = NOW()
		WHERE id = ?`,
		in.Name, in.Email, in.Phone, in.City, id,
	)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "gagal update user", Err: err}
	}
	return r.GetByID(id)
}

// Delete refuses to remove an author that still owns posts.
func (r UserRepository) Delete(id int64) error {
	db := r.db()

	if _, err := r.GetByID(id); err != nil {
		return err
	}

	var posts int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts WHERE user_id = ?`, id).Scan(&posts); err != nil {
		return domain.InternalError{Msg: "gagal cek posts", Err: err}
	}
	if posts > 0 {
		return domain.ConflictError{Resource: "user", Msg: "user masih memiliki post"}
	}

	if _, err := db.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return domain.InternalError{Msg: "gagal hapus user", Err: err}
	}
	return nil
}

// FindByLogin loads a user plus password hash by email or username.
func (r UserRepository) FindByLogin(login string) (models.User, error) {
	login = strings.TrimSpace(login)
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, COALESCE(username,''), email, COALESCE(phone,''), COALESCE(city,''),
		       COALESCE(password_hash,''), COALESCE(role,''), COALESCE(status,'')
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1`, login, login).Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.Setting.Phone,
		&u.Setting.City,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "gagal query user", Err: err}
	}
	return u, nil
}
