package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

// bindPageable reads page, size and sort from the query string. Bad values
// fall back to defaults; Normalize happens inside each service.
func bindPageable(c *gin.Context) (pagination.Pageable, error) {
	var p pagination.Pageable
	if err := c.ShouldBindQuery(&p); err != nil {
		return pagination.Pageable{}, apperror.NewValidation("page", "invalid pagination parameters")
	}
	return p, nil
}

// parsePathID parses the :id path segment into an int64.
func parsePathID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewValidation("id", "must be a numeric identifier")
	}
	return id, nil
}
