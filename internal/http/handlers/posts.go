package handlers

import (
	"net/http"
	"strings"

	"dashboard/internal/http/middleware"
	"dashboard/internal/repositories"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type postPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	UserID      int64   `json:"user_id"`
	CategoryIDs []int64 `json:"category_ids"`
}

func (p postPayload) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		errs["title"] = "judul wajib diisi"
	}
	if p.UserID <= 0 {
		errs["user_id"] = "author wajib dipilih"
	}
	return errs
}

func (p postPayload) input() repositories.PostInput {
	return repositories.PostInput{
		Title:       utils.NormalizeSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		UserID:      p.UserID,
		CategoryIDs: p.CategoryIDs,
	}
}

// POST /api/posts
func ListPosts(c *gin.Context) {
	var req listRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	page, err := repositories.PostRepository{}.List(req.params())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page.Items, "meta": page.Meta})
}

// GET /api/posts (legacy unpaged listing)
func GetPosts(c *gin.Context) {
	page, err := repositories.PostRepository{}.List(repositories.ListParams{Page: 1, Limit: 100})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page.Items})
}

// GET /api/posts/:id
func GetPostByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	post, err := repositories.PostRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

// POST /api/posts/create
func CreatePost(c *gin.Context) {
	var payload postPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	post, err := repositories.PostRepository{}.Create(payload.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "posts", "create", "post dibuat")
	c.JSON(http.StatusCreated, gin.H{"data": post, "message": "Post created successfully!"})
}

// PUT /api/posts/:id
func UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	var payload postPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	post, err := repositories.PostRepository{}.Update(id, payload.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "posts", "update", "post diperbarui")
	c.JSON(http.StatusOK, gin.H{"data": post, "message": "Post updated successfully!"})
}

// DELETE /api/posts/:id
func DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	if err := (repositories.PostRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "posts", "delete", "post dihapus")
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully!", "id": id})
}
