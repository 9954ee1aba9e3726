package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"dashboard/internal/domain/models"
	"dashboard/internal/repositories"
	"dashboard/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService menghasilkan PDF listing sesuai filter/sort yang aktif di
// dashboard (users & posts).
type ExportService struct {
	UserRepo  repositories.UserRepository
	PostRepo  repositories.PostRepository
	RequestID string
}

func (s ExportService) GenerateUserListing(p repositories.ListParams) ([]byte, string, error) {
	page, err := s.UserRepo.List(p)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "users_pdf", fmt.Sprintf("rows=%d", len(page.Items)))

	rows := make([][]string, 0, len(page.Items))
	for _, u := range page.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Email,
			u.Setting.Phone,
			u.Setting.City,
		})
	}

	data, err := buildListingPDF("Users", page.Meta,
		[]string{"ID", "Nama", "Email", "Phone", "City"},
		[]float64{15, 45, 55, 35, 35},
		rows)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename("users"), nil
}

func (s ExportService) GeneratePostListing(p repositories.ListParams) ([]byte, string, error) {
	page, err := s.PostRepo.List(p)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "posts_pdf", fmt.Sprintf("rows=%d", len(page.Items)))

	rows := make([][]string, 0, len(page.Items))
	for _, post := range page.Items {
		author := ""
		if post.User != nil {
			author = post.User.Name
		}
		titles := make([]string, 0, len(post.Categories))
		for _, c := range post.Categories {
			titles = append(titles, c.Title)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", post.ID),
			post.Title,
			author,
			strings.Join(titles, ", "),
		})
	}

	data, err := buildListingPDF("Posts", page.Meta,
		[]string{"ID", "Judul", "Author", "Categories"},
		[]float64{15, 70, 45, 55},
		rows)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename("posts"), nil
}

func exportFilename(collection string) string {
	return fmt.Sprintf("%s-%s.pdf", collection, time.Now().Format("20060102-150405"))
}

func buildListingPDF(title string, meta models.Meta, headers []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, strings.ToUpper(title))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Halaman %d/%d - total %d data - dicetak %s",
		meta.CurrentPage, meta.LastPage, meta.Total, time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > 40 {
				cell = cell[:37] + "..."
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
