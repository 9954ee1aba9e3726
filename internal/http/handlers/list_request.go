package handlers

import (
	"fmt"
	"strconv"

	"dashboard/internal/repositories"
	"dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// listRequest is the body of POST /{collection}. The original frontend
// sent the search text as "q"; "search" is the documented field, "q" is
// kept as a legacy alias.
type listRequest struct {
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	Search    string         `json:"search"`
	Q         string         `json:"q"`
	Filters   map[string]any `json:"filters"`
	SortField string         `json:"sortField"`
	SortOrder string         `json:"sortOrder"`
}

func (r listRequest) params() repositories.ListParams {
	search := utils.TrimOrEmpty(r.Search)
	if search == "" {
		search = utils.TrimOrEmpty(r.Q)
	}

	filters := map[string]string{}
	for k, v := range r.Filters {
		switch val := v.(type) {
		case string:
			filters[k] = val
		case float64:
			filters[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			filters[k] = strconv.FormatBool(val)
		default:
			if v != nil {
				filters[k] = fmt.Sprint(v)
			}
		}
	}

	return repositories.ListParams{
		Page:      r.Page,
		Limit:     r.Limit,
		Search:    search,
		Filters:   filters,
		SortField: utils.TrimOrEmpty(r.SortField),
		SortOrder: utils.TrimOrEmpty(r.SortOrder),
	}
}

// listParamsFromQuery mirrors the body fields as query params for GET
// endpoints (PDF export links cannot carry a body).
func listParamsFromQuery(c *gin.Context) repositories.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	search := utils.TrimOrEmpty(c.Query("search"))
	if search == "" {
		search = utils.TrimOrEmpty(c.Query("q"))
	}

	return repositories.ListParams{
		Page:      page,
		Limit:     limit,
		Search:    search,
		SortField: utils.TrimOrEmpty(c.Query("sortField")),
		SortOrder: utils.TrimOrEmpty(c.Query("sortOrder")),
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(utils.TrimOrEmpty(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
