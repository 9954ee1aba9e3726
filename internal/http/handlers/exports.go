package handlers

import (
	"net/http"

	"dashboard/internal/http/middleware"
	"dashboard/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users/export/pdf
func ExportUsersPDF(c *gin.Context) {
	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.GenerateUserListing(listParamsFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/posts/export/pdf
func ExportPostsPDF(c *gin.Context) {
	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.GeneratePostListing(listParamsFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
