package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	deptService   service.DepartmentService
	periodService service.PeriodService
}

// NewDepartmentHandler sets up the routing dependencies for Department endpoints
func NewDepartmentHandler(deptService service.DepartmentService, periodService service.PeriodService) *DepartmentHandler {
	return &DepartmentHandler{deptService: deptService, periodService: periodService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DepartmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	departments := router.Group("/departments")
	{
		departments.GET("", middleware.RequireRole(model.RoleAdmin), h.ListDepartments)
		departments.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateDepartment)
		departments.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead), h.GetDepartmentByID)
		departments.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateDepartment)
		departments.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteDepartment)

		departments.GET("/:id/staff", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead), h.ListStaff)
		departments.GET("/:id/categories", middleware.RequireAuth(), h.ListCategories)
		departments.GET("/:id/periods", middleware.RequireAuth(), h.ListPeriods)
		departments.POST("/:id/periods", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead), h.CreatePeriod)
		departments.PUT("/:id/periods/:periodId/status", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead), h.UpdatePeriodStatus)
		departments.GET("/:id/current-period", middleware.RequireAuth(), h.GetCurrentPeriod)
		departments.GET("/:id/submissions", middleware.RequireAuth(), h.ListSubmissions)
	}
}

// CreateDepartment handles POST /departments
// @Summary      Create department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateDepartmentRequest  true  "Create Department Payload"
// @Success      201      {object}  model.Department
// @Failure      400      {object}  response.ErrorResponse
// @Router       /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req service.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	department, err := h.deptService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, department)
}

// ListDepartments handles GET /departments
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Department
// @Router       /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	departments, err := h.deptService.ListDepartments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, departments)
}

// GetDepartmentByID handles GET /departments/:id
// @Summary      Get department by ID
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  model.Department
// @Failure      404  {object}  response.ErrorResponse
// @Router       /departments/{id} [get]
func (h *DepartmentHandler) GetDepartmentByID(c *gin.Context) {
	department, err := h.deptService.GetDepartmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, department)
}

// UpdateDepartment handles PUT /departments/:id
// @Summary      Update department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Department ID"
// @Param        payload  body      service.UpdateDepartmentRequest  true  "Update Department Payload"
// @Success      200      {object}  model.Department
// @Failure      404      {object}  response.ErrorResponse
// @Router       /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req service.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	department, err := h.deptService.UpdateDepartment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, department)
}

// DeleteDepartment handles DELETE /departments/:id
// @Summary      Delete department and everything it owns
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Department ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Router       /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	if err := h.deptService.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListStaff handles GET /departments/:id/staff
// @Summary      List department members
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Department ID"
// @Success      200  {array}  model.User
// @Failure      404  {object} response.ErrorResponse
// @Router       /departments/{id}/staff [get]
func (h *DepartmentHandler) ListStaff(c *gin.Context) {
	staff, err := h.deptService.ListStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, staff)
}

// ListCategories handles GET /departments/:id/categories
// @Summary      List department categories
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Department ID"
// @Success      200  {array}  model.Category
// @Failure      404  {object} response.ErrorResponse
// @Router       /departments/{id}/categories [get]
func (h *DepartmentHandler) ListCategories(c *gin.Context) {
	categories, err := h.deptService.ListCategories(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListPeriods handles GET /departments/:id/periods
// @Summary      List department collection periods
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Department ID"
// @Success      200  {array}  model.SubmissionPeriod
// @Failure      404  {object} response.ErrorResponse
// @Router       /departments/{id}/periods [get]
func (h *DepartmentHandler) ListPeriods(c *gin.Context) {
	periods, err := h.deptService.ListPeriods(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, periods)
}

// CreatePeriod handles POST /departments/:id/periods
// @Summary      Open a new collection period
// @Description  Opens a period for the department; fails when one is already open
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Department ID"
// @Param        payload  body      service.CreatePeriodRequest  true  "Create Period Payload"
// @Success      201      {object}  model.SubmissionPeriod
// @Failure      404      {object}  response.ErrorResponse
// @Failure      409      {object}  response.ErrorResponse
// @Router       /departments/{id}/periods [post]
func (h *DepartmentHandler) CreatePeriod(c *gin.Context) {
	var req service.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	period, err := h.deptService.CreatePeriod(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, period)
}

// UpdatePeriodStatus handles PUT /departments/:id/periods/:periodId/status
// @Summary      Transition a collection period
// @Description  Moves a period forward in its lifecycle (OPEN to CLOSED, CLOSED to ARCHIVED)
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string                             true  "Department ID"
// @Param        periodId  path      string                             true  "Period ID"
// @Param        payload   body      service.UpdatePeriodStatusRequest  true  "Target Status"
// @Success      200       {object}  model.SubmissionPeriod
// @Failure      400       {object}  response.ErrorResponse
// @Failure      404       {object}  response.ErrorResponse
// @Router       /departments/{id}/periods/{periodId}/status [put]
func (h *DepartmentHandler) UpdatePeriodStatus(c *gin.Context) {
	var req service.UpdatePeriodStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	// The period must belong to the department in the path.
	period, err := h.periodService.GetPeriodByID(c.Request.Context(), c.Param("periodId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if period.DepartmentID.String() != c.Param("id") {
		c.JSON(http.StatusNotFound, response.Error("submission period not found"))
		return
	}

	updated, err := h.periodService.UpdatePeriodStatus(c.Request.Context(), c.Param("periodId"), c.GetString("userID"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetCurrentPeriod handles GET /departments/:id/current-period
// @Summary      Get the department's current collection period
// @Description  Returns the open period, or the most recent one when none is open
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  model.SubmissionPeriod
// @Failure      404  {object}  response.ErrorResponse
// @Router       /departments/{id}/current-period [get]
func (h *DepartmentHandler) GetCurrentPeriod(c *gin.Context) {
	period, err := h.deptService.CurrentPeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, period)
}

// ListSubmissions handles GET /departments/:id/submissions
// @Summary      List department submissions
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Department ID"
// @Success      200  {array}  model.Submission
// @Failure      404  {object} response.ErrorResponse
// @Router       /departments/{id}/submissions [get]
func (h *DepartmentHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.deptService.ListSubmissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}
