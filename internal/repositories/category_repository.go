package repositories

import (
	"database/sql"
	"errors"

	intconfig "dashboard/internal/config"
	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
)

// CategoryRepository wraps DB access for the categories collection.
type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var categorySchema = collectionSchema{
	columns: map[string]column{
		"id":          {name: "id", exact: true},
		"title":       {name: "title"},
		"description": {name: "description"},
	},
	searchColumns: []string{"title", "description"},
	searchFields:  []string{"title", "description"},
	sortable: map[string]string{
		"id":          "id",
		"title":       "title",
		"description": "description",
	},
	defaultSort: "id",
}

const categorySelect = `
	SELECT id, title, COALESCE(description,''), COALESCE(created_at,'')
	FROM categories`

func scanCategory(row interface{ Scan(...any) error }) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt)
	return c, err
}

func (r CategoryRepository) List(p ListParams) (models.Page[models.Category], error) {
	p = p.Normalize()
	db := r.db()

	where, args := categorySchema.whereClause(p)

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories"+where, args...).Scan(&total); err != nil {
		return models.Page[models.Category]{}, domain.InternalError{Msg: "gagal menghitung categories", Err: err}
	}

	meta, page := pageMeta(total, p.Page, p.Limit)
	offset := (page - 1) * p.Limit

	query := categorySelect + where + categorySchema.orderClause(p) + " LIMIT ? OFFSET ?"
	rows, err := db.Query(query, append(args, p.Limit, offset)...)
	if err != nil {
		return models.Page[models.Category]{}, domain.InternalError{Msg: "gagal mengambil data categories", Err: err}
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return models.Page[models.Category]{}, domain.InternalError{Msg: "gagal scan category", Err: err}
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Category]{}, domain.InternalError{Msg: "error iterasi rows", Err: err}
	}

	return models.Page[models.Category]{Items: items, Meta: meta}, nil
}

func (r CategoryRepository) GetByID(id int64) (models.Category, error) {
	if id <= 0 {
		return models.Category{}, domain.NotFoundError{Resource: "category"}
	}
	c, err := scanCategory(r.db().QueryRow(categorySelect+" WHERE id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, domain.NotFoundError{Resource: "category", Err: err}
		}
		return models.Category{}, domain.InternalError{Msg: "gagal query category", Err: err}
	}
	return c, nil
}

type CategoryInput struct {
	Title       string
	Description string
}

func (r CategoryRepository) Create(in CategoryInput) (models.Category, error) {
	db := r.db()

	var exists int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories WHERE title = ?`, in.Title).Scan(&exists); err != nil {
		return models.Category{}, domain.InternalError{Msg: "gagal cek category", Err: err}
	}
	if exists > 0 {
		return models.Category{}, domain.ConflictError{Resource: "category", Msg: "judul sudah dipakai"}
	}

	res, err := db.Exec(`
		INSERT INTO categories (title, description, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())`,
		in.Title, in.Description,
	)
	if err != nil {
		return models.Category{}, domain.InternalError{Msg: "gagal menyimpan category", Err: err}
	}

	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

func (r CategoryRepository) Update(id int64, in CategoryInput) (models.Category, error) {
	if _, err := r.GetByID(id); err != nil {
		return models.Category{}, err
	}

	_, err := r.db().Exec(`
		UPDATE categories SET title = ?, description = ?, updated_at = NOW() WHERE id = ?`,
		in.Title, in.Description, id,
	)
	if err != nil {
		return models.Category{}, domain.InternalError{Msg: "gagal update category", Err: err}
	}
	return r.GetByID(id)
}

func (r CategoryRepository) Delete(id int64) error {
	db := r.db()

	if _, err := r.GetByID(id); err != nil {
		return err
	}

	// drop links first, categories referenced by posts just lose the tag
	if _, err := db.Exec(`DELETE FROM post_categories WHERE category_id = ?`, id); err != nil {
		return domain.InternalError{Msg: "gagal hapus relasi category", Err: err}
	}
	if _, err := db.Exec(`DELETE FROM categories WHERE id = ?`, id); err != nil {
		return domain.InternalError{Msg: "gagal hapus category", Err: err}
	}
	return nil
}
