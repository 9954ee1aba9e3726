package handlers

import (
	"net/http"
	"strings"

	"dashboard/internal/http/middleware"
	"dashboard/internal/repositories"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type categoryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p categoryPayload) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		errs["title"] = "judul wajib diisi"
	}
	return errs
}

func (p categoryPayload) input() repositories.CategoryInput {
	return repositories.CategoryInput{
		Title:       utils.NormalizeSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
	}
}

// POST /api/categories
func ListCategories(c *gin.Context) {
	var req listRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	page, err := repositories.CategoryRepository{}.List(req.params())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page.Items, "meta": page.Meta})
}

// GET /api/categories (legacy unpaged listing)
func GetCategories(c *gin.Context) {
	page, err := repositories.CategoryRepository{}.List(repositories.ListParams{Page: 1, Limit: 100})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page.Items})
}

// GET /api/categories/:id
func GetCategoryByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	category, err := repositories.CategoryRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

// POST /api/categories/create
func CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	category, err := repositories.CategoryRepository{}.Create(payload.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "categories", "create", "category dibuat")
	c.JSON(http.StatusCreated, gin.H{"data": category, "message": "Category created successfully!"})
}

// PUT /api/categories/:id
func UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	var payload categoryPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	category, err := repositories.CategoryRepository{}.Update(id, payload.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "categories", "update", "category diperbarui")
	c.JSON(http.StatusOK, gin.H{"data": category, "message": "Category updated successfully!"})
}

// DELETE /api/categories/:id
func DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	if err := (repositories.CategoryRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "categories", "delete", "category dihapus")
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully!", "id": id})
}
