package handler

import (
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
	deptService   service.DepartmentService
}

// NewReportHandler sets up the routing dependencies for report endpoints
func NewReportHandler(reportService service.ReportService, deptService service.DepartmentService) *ReportHandler {
	return &ReportHandler{reportService: reportService, deptService: deptService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports", middleware.RequireRole(model.RoleAdmin, model.RoleDepartmentHead))
	{
		reports.GET("/summary", h.GetSummary)
		reports.GET("/export", h.ExportXLSX)
	}
}

// resolveScope picks the department and period the report covers. Heads
// default to their own department; the period defaults to the current one.
func (h *ReportHandler) resolveScope(c *gin.Context) (string, string, bool) {
	departmentID := c.Query("department_id")
	if departmentID == "" {
		departmentID = c.GetString("departmentID")
	}
	if departmentID == "" {
		c.JSON(http.StatusBadRequest, response.Error("department_id is required"))
		return "", "", false
	}

	periodID := c.Query("period_id")
	if periodID == "" {
		period, err := h.deptService.CurrentPeriod(c.Request.Context(), departmentID)
		if err != nil {
			writeServiceError(c, err)
			return "", "", false
		}
		periodID = period.ID.String()
	}

	return departmentID, periodID, true
}

// GetSummary handles GET /reports/summary
// @Summary      Per-category budget summary
// @Description  Aggregates approved submissions by category for a department and period
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        department_id  query     string  false  "Department ID (defaults to the caller's department)"
// @Param        period_id      query     string  false  "Period ID (defaults to the current period)"
// @Success      200            {object}  service.ReportSummary
// @Failure      400            {object}  response.ErrorResponse
// @Failure      404            {object}  response.ErrorResponse
// @Router       /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	departmentID, periodID, ok := h.resolveScope(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), departmentID, periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportXLSX handles GET /reports/export
// @Summary      Export approved needs as XLSX
// @Description  Streams a two-sheet workbook with detailed lines and a category summary
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        department_id  query  string  false  "Department ID (defaults to the caller's department)"
// @Param        period_id      query  string  false  "Period ID (defaults to the current period)"
// @Success      200  {file}    file
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /reports/export [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	departmentID, periodID, ok := h.resolveScope(c)
	if !ok {
		return
	}

	workbook, fileName, err := h.reportService.Export(c.Request.Context(), departmentID, periodID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer func() {
		_ = workbook.Close()
	}()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+url.PathEscape(fileName)+`"`)

	if err := workbook.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
