package api

import (
	"log"
	stdhttp "net/http"

	intconfig "dashboard/internal/config"
	h "dashboard/internal/http/handlers"
	"dashboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth(h.JWTSecret())
	adminOnly := middleware.RequireRoles("admin", "owner")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", auth, h.Me)

		// Users
		users := api.Group("/users")
		users.POST("", h.ListUsers)
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.GET("/export/pdf", auth, adminOnly, h.ExportUsersPDF)
		users.POST("/create", auth, h.CreateUser)
		users.PUT("/:id", auth, h.UpdateUser)
		users.DELETE("/:id", auth, adminOnly, h.DeleteUser)

		// Categories
		categories := api.Group("/categories")
		categories.POST("", h.ListCategories)
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.POST("/create", auth, h.CreateCategory)
		categories.PUT("/:id", auth, h.UpdateCategory)
		categories.DELETE("/:id", auth, adminOnly, h.DeleteCategory)

		// Posts
		posts := api.Group("/posts")
		posts.POST("", h.ListPosts)
		posts.GET("", h.GetPosts)
		posts.GET("/:id", h.GetPostByID)
		posts.GET("/export/pdf", auth, adminOnly, h.ExportPostsPDF)
		posts.POST("/create", auth, h.CreatePost)
		posts.PUT("/:id", auth, h.UpdatePost)
		posts.DELETE("/:id", auth, adminOnly, h.DeletePost)
	}

	h.SetRouter(r)
	return r
}
