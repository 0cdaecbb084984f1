package handler

import (
	"backend/internal/service"
	"backend/pkg/response"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service-layer errors onto HTTP statuses:
// conflict sentinels become 409, unresolved ids 404, everything else 400.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDepartmentHasHead),
		errors.Is(err, service.ErrOpenPeriodExists):
		c.JSON(http.StatusConflict, response.Error(err.Error()))
	case strings.HasSuffix(err.Error(), "not found"):
		c.JSON(http.StatusNotFound, response.Error(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	}
}
