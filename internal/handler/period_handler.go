package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PeriodHandler struct {
	periodService service.PeriodService
}

// NewPeriodHandler sets up the routing dependencies for SubmissionPeriod endpoints
func NewPeriodHandler(periodService service.PeriodService) *PeriodHandler {
	return &PeriodHandler{periodService: periodService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *PeriodHandler) RegisterRoutes(router *gin.RouterGroup) {
	periods := router.Group("/periods", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead))
	{
		periods.GET("", h.ListPeriods)
		periods.GET("/:id", h.GetPeriodByID)
		periods.PUT("/:id", h.UpdatePeriod)
		periods.DELETE("/:id", h.DeletePeriod)
	}
}

// ListPeriods handles GET /periods
// @Summary      List collection periods
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.SubmissionPeriod
// @Router       /periods [get]
func (h *PeriodHandler) ListPeriods(c *gin.Context) {
	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, periods)
}

// GetPeriodByID handles GET /periods/:id
// @Summary      Get collection period by ID
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Period ID"
// @Success      200  {object}  model.SubmissionPeriod
// @Failure      404  {object}  response.ErrorResponse
// @Router       /periods/{id} [get]
func (h *PeriodHandler) GetPeriodByID(c *gin.Context) {
	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, period)
}

// UpdatePeriod handles PUT /periods/:id
// @Summary      Update collection period dates
// @Tags         periods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Period ID"
// @Param        payload  body      service.UpdatePeriodRequest  true  "Update Period Payload"
// @Success      200      {object}  model.SubmissionPeriod
// @Failure      404      {object}  response.ErrorResponse
// @Router       /periods/{id} [put]
func (h *PeriodHandler) UpdatePeriod(c *gin.Context) {
	var req service.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	period, err := h.periodService.UpdatePeriod(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, period)
}

// DeletePeriod handles DELETE /periods/:id
// @Summary      Delete collection period and its submissions
// @Tags         periods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Period ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Router       /periods/{id} [delete]
func (h *PeriodHandler) DeletePeriod(c *gin.Context) {
	if err := h.periodService.DeletePeriod(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
