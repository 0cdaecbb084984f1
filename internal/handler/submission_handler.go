package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler sets up the routing dependencies for Submission endpoints
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *SubmissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	submissions := router.Group("/submissions")
	{
		submissions.GET("", middleware.RequireRole(model.RoleAdmin), h.ListSubmissions)
		submissions.POST("", middleware.RequireAuth(), h.CreateSubmission)
		submissions.GET("/mine", middleware.RequireAuth(), h.ListMySubmissions)
		submissions.GET("/:id", middleware.RequireAuth(), h.GetSubmissionByID)
		submissions.DELETE("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead), h.DeleteSubmission)
		submissions.PATCH("/:id/status", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead), h.UpdateStatus)
	}
}

// CreateSubmission handles POST /submissions
// @Summary      Submit a budget need
// @Description  Files a need in the caller's department; requires an open collection period
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSubmissionRequest  true  "Create Submission Payload"
// @Success      201      {object}  model.Submission
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req service.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	submission, err := h.submissionService.CreateSubmission(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// ListSubmissions handles GET /submissions with pagination
// @Summary      List all submissions
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Items per page"
// @Success      200    {object}  map[string]interface{}
// @Router       /submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	params := pagination.Parse(c)

	submissions, total, err := h.submissionService.ListSubmissions(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  submissions,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// ListMySubmissions handles GET /submissions/mine
// @Summary      List the caller's submissions
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.Submission
// @Router       /submissions/mine [get]
func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	submissions, err := h.submissionService.ListByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, submissions)
}

// GetSubmissionByID handles GET /submissions/:id
// @Summary      Get submission by ID
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  model.Submission
// @Failure      404  {object}  response.ErrorResponse
// @Router       /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmissionByID(c *gin.Context) {
	submission, err := h.submissionService.GetSubmissionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// UpdateStatus handles PATCH /submissions/:id/status
// @Summary      Review a submission
// @Description  Sets the review status and feedback, then notifies connected clients
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                                 true  "Submission ID"
// @Param        payload  body      service.UpdateSubmissionStatusRequest  true  "Review Payload"
// @Success      200      {object}  model.Submission
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Router       /submissions/{id}/status [patch]
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateSubmissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	submission, err := h.submissionService.UpdateStatus(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// DeleteSubmission handles DELETE /submissions/:id
// @Summary      Delete submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Submission ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.ErrorResponse
// @Router       /submissions/{id} [delete]
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	if err := h.submissionService.DeleteSubmission(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
