package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "dashboard/internal/config"
	"dashboard/internal/domain"
	"dashboard/internal/domain/models"
)

// PostRepository wraps DB access for the posts collection. Listings embed
// the denormalized author and the category objects linked through
// post_categories.
type PostRepository struct {
	DB *sql.DB
}

func (r PostRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var postSchema = collectionSchema{
	columns: map[string]column{
		"id":          {name: "p.id", exact: true},
		"title":       {name: "p.title"},
		"description": {name: "p.description"},
		"user.name":   {name: "u.name"},
		"user_id":     {name: "p.user_id", exact: true},
	},
	searchColumns: []string{"p.title", "p.description"},
	searchFields:  []string{"title", "description"},
	sortable: map[string]string{
		"id":          "p.id",
		"title":       "p.title",
		"description": "p.description",
		"user.name":   "u.name",
	},
	defaultSort: "p.id",
}

const postSelect = `
	SELECT
		p.id,
		p.title,
		COALESCE(p.description,''),
		p.user_id,
		COALESCE(u.name,''),
		COALESCE(p.created_at,'')
	FROM posts p
	LEFT JOIN users u ON u.id = p.user_id`

func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var (
		p          models.Post
		authorName string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &authorName, &p.CreatedAt)
	if err != nil {
		return models.Post{}, err
	}
	if p.UserID > 0 {
		p.User = &models.UserRef{ID: p.UserID, Name: authorName}
	}
	p.Categories = []models.Category{}
	return p, nil
}

func (r PostRepository) List(p ListParams) (models.Page[models.Post], error) {
	p = p.Normalize()
	db := r.db()

	where, args := postSchema.whereClause(p)

	var total int
	countQuery := "SELECT COUNT(*) FROM posts p LEFT JOIN users u ON u.id = p.user_id" + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return models.Page[models.Post]{}, domain.InternalError{Msg: "gagal menghitung posts", Err: err}
	}

	meta, page := pageMeta(total, p.Page, p.Limit)
	offset := (page - 1) * p.Limit

	query := postSelect + where + postSchema.orderClause(p) + " LIMIT ? OFFSET ?"
	rows, err := db.Query(query, append(args, p.Limit, offset)...)
	if err != nil {
		return models.Page[models.Post]{}, domain.InternalError{Msg: "gagal mengambil data posts", Err: err}
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return models.Page[models.Post]{}, domain.InternalError{Msg: "gagal scan post", Err: err}
		}
		items = append(items, post)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Post]{}, domain.InternalError{Msg: "error iterasi rows", Err: err}
	}

	if err := r.attachCategories(items); err != nil {
		return models.Page[models.Post]{}, err
	}

	return models.Page[models.Post]{Items: items, Meta: meta}, nil
}

// attachCategories fills Categories for a page of posts with one IN query.
func (r PostRepository) attachCategories(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	idx := make(map[int64]int, len(posts))
	placeholders := make([]string, 0, len(posts))
	args := make([]any, 0, len(posts))
	for i, p := range posts {
		idx[p.ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	rows, err := r.db().Query(`
		SELECT pc.post_id, c.id, c.title, COALESCE(c.description,''), COALESCE(c.created_at,'')
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY c.id`, args...)
	if err != nil {
		return domain.InternalError{Msg: "gagal mengambil categories post", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postID int64
			c      models.Category
		)
		if err := rows.Scan(&postID, &c.ID, &c.Title, &c.Description, &c.CreatedAt); err != nil {
			return domain.InternalError{Msg: "gagal scan category post", Err: err}
		}
		if i, ok := idx[postID]; ok {
			posts[i].Categories = append(posts[i].Categories, c)
		}
	}
	return rows.Err()
}

func (r PostRepository) GetByID(id int64) (models.Post, error) {
	if id <= 0 {
		return models.Post{}, domain.NotFoundError{Resource: "post"}
	}
	post, err := scanPost(r.db().QueryRow(postSelect+" WHERE p.id = ? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, domain.NotFoundError{Resource: "post", Err: err}
		}
		return models.Post{}, domain.InternalError{Msg: "gagal query post", Err: err}
	}

	posts := []models.Post{post}
	if err := r.attachCategories(posts); err != nil {
		return models.Post{}, err
	}
	return posts[0], nil
}

type PostInput struct {
	Title       string
	Description string
	UserID      int64
	CategoryIDs []int64
}

func (r PostRepository) Create(in PostInput) (models.Post, error) {
	db := r.db()

	res, err := db.Exec(`
		INSERT INTO posts (title, description, user_id, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())`,
		in.Title, in.Description, in.UserID,
	)
	if err != nil {
		return models.Post{}, domain.InternalError{Msg: "gagal menyimpan post", Err: err}
	}

	id, _ := res.LastInsertId()
	if err := r.replaceCategoryLinks(id, in.CategoryIDs); err != nil {
		return models.Post{}, err
	}
	return r.GetByID(id)
}

func (r PostRepository) Update(id int64, in PostInput) (models.Post, error) {
	if _, err := r.GetByID(id); err != nil {
		return models.Post{}, err
	}

	_, err := r.db().Exec(`
		UPDATE posts SET title = ?, description = ?, user_id = ?, updated_at = NOW() WHERE id = ?`,
		in.Title, in.Description, in.UserID, id,
	)
	if err != nil {
		return models.Post{}, domain.InternalError{Msg: "gagal update post", Err: err}
	}

	if err := r.replaceCategoryLinks(id, in.CategoryIDs); err != nil {
		return models.Post{}, err
	}
	return r.GetByID(id)
}

func (r PostRepository) Delete(id int64) error {
	db := r.db()

	if _, err := r.GetByID(id); err != nil {
		return err
	}

	if _, err := db.Exec(`DELETE FROM post_categories WHERE post_id = ?`, id); err != nil {
		return domain.InternalError{Msg: "gagal hapus relasi post", Err: err}
	}
	if _, err := db.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return domain.InternalError{Msg: "gagal hapus post", Err: err}
	}
	return nil
}

func (r PostRepository) replaceCategoryLinks(postID int64, categoryIDs []int64) error {
	db := r.db()

	if _, err := db.Exec(`DELETE FROM post_categories WHERE post_id = ?`, postID); err != nil {
		return domain.InternalError{Msg: "gagal reset relasi post", Err: err}
	}
	for _, cid := range categoryIDs {
		if cid <= 0 {
			continue
		}
		if _, err := db.Exec(`INSERT INTO post_categories (post_id, category_id) VALUES (?, ?)`, postID, cid); err != nil {
			return domain.InternalError{Msg: "gagal menyimpan relasi post", Err: err}
		}
	}
	return nil
}
