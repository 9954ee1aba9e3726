package handlers

import (
	"net/http"
	"strings"

	"dashboard/internal/http/middleware"
	"dashboard/internal/repositories"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type settingPayload struct {
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// userPayload accepts both the documented "setting" key and the legacy
// "settings" key the old form dialog sent.
type userPayload struct {
	Name     string          `json:"name"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Setting  *settingPayload `json:"setting"`
	Settings *settingPayload `json:"settings"`
}

func (p userPayload) setting() settingPayload {
	if p.Setting != nil {
		return *p.Setting
	}
	if p.Settings != nil {
		return *p.Settings
	}
	return settingPayload{}
}

func (p userPayload) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "nama wajib diisi"
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		errs["email"] = "email wajib diisi"
	} else if !strings.Contains(email, "@") {
		errs["email"] = "format email tidak valid"
	}
	return errs
}

func (p userPayload) input() repositories.UserInput {
	s := p.setting()
	in := repositories.UserInput{
		Name:     utils.NormalizeSpace(p.Name),
		Username: strings.TrimSpace(p.Username),
		Email:    strings.TrimSpace(p.Email),
		Phone:    strings.TrimSpace(s.Phone),
		City:     strings.TrimSpace(s.City),
	}
	if pw := strings.TrimSpace(p.Password); pw != "" {
		if hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost); err == nil {
			in.PasswordHash = string(hash)
		}
	}
	return in
}

// POST /api/users
func ListUsers(c *gin.Context) {
	var req listRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	page, err := repositories.UserRepository{}.List(req.params())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page.Items, "meta": page.Meta})
}

// GET /api/users (legacy unpaged listing)
func GetUsers(c *gin.Context) {
	page, err := repositories.UserRepository{}.List(repositories.ListParams{Page: 1, Limit: 100})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page.Items})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// POST /api/users/create
func CreateUser(c *gin.Context) {
	var payload userPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := repositories.UserRepository{}.Create(payload.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "create", "user dibuat")
	c.JSON(http.StatusCreated, gin.H{"data": user, "message": "User created successfully!"})
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	var payload userPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := repositories.UserRepository{}.Update(id, payload.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "update", "user diperbarui")
	c.JSON(http.StatusOK, gin.H{"data": user, "message": "User updated successfully!"})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_id", "id tidak valid", nil)
		return
	}

	if err := (repositories.UserRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "users", "delete", "user dihapus")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully!", "id": id})
}
