package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snishiyama/networking-crm/internal/constants"
)

// PaginationParams are the normalized page/limit values for a list query.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse is the pagination block returned alongside list payloads.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// GetPaginationParams reads page and limit from the query string, clamping
// both to the bounds in constants. Malformed values fall back to defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// NewPaginationResponse builds the response block for a total row count.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	pages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return PaginationResponse{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Pages: pages,
	}
}
