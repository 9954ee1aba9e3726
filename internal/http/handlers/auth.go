package handlers

import (
	"net/http"
	"strings"
	"time"

	"dashboard/internal/domain"
	"dashboard/internal/http/middleware"
	"dashboard/internal/repositories"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte("super-secret-key-change-me")

// SetJWTSecret overrides the signing key from env config. Called once at
// router construction.
func SetJWTSecret(secret string) {
	if s := strings.TrimSpace(secret); s != "" {
		jwtSecret = []byte(s)
	}
}

// JWTSecret exposes the active key for the auth middleware.
func JWTSecret() []byte {
	return jwtSecret
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func issueToken(userID int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// POST /api/auth/login
// The email field also accepts a username, matching the old login form.
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := repositories.UserRepository{}.FindByLogin(req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "Email/username atau password salah", nil)
		} else {
			RespondDomainError(c, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Email/username atau password salah", nil)
		return
	}

	tokenString, err := issueToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "gagal membuat token", nil)
		return
	}

	user.PasswordHash = ""
	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "login berhasil")
	c.JSON(http.StatusOK, gin.H{
		"message": "login berhasil",
		"data": gin.H{
			"user":  user,
			"token": gin.H{"value": tokenString},
		},
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "nama wajib diisi"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "email wajib diisi"
	}
	if len(strings.TrimSpace(req.Password)) < 6 {
		errs["password"] = "password minimal 6 karakter"
	}
	if len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "gagal meng-hash password", nil)
		return
	}

	user, err := repositories.UserRepository{}.Create(repositories.UserInput{
		Name:         utils.NormalizeSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	tokenString, err := issueToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "gagal membuat token", nil)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "registrasi berhasil")
	c.JSON(http.StatusCreated, gin.H{
		"message": "registrasi berhasil",
		"data": gin.H{
			"user":  user,
			"token": gin.H{"value": tokenString},
		},
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	id := middleware.AuthUserID(c)
	if id <= 0 {
		respondError(c, http.StatusUnauthorized, "unauthorized", "token tidak valid", nil)
		return
	}

	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": user}})
}

// POST /api/auth/logout
// The token is stateless; the client just discards it.
func Logout(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "auth", "logout", "logout")
	c.JSON(http.StatusOK, gin.H{"message": "logout berhasil"})
}
