package service

import (
	"backend/internal/model"
	"backend/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetDetailed = "Detailed Needs"
	sheetSummary  = "Summary by Category"
)

// CategorySummary aggregates approved submissions of one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// ReportSummary is the JSON shape of the per-period report.
type ReportSummary struct {
	DepartmentID string            `json:"department_id"`
	PeriodID     string            `json:"period_id"`
	Year         int               `json:"year"`
	Categories   []CategorySummary `json:"categories"`
	TotalBudget  decimal.Decimal   `json:"total_budget"`
}

// ReportService builds per-period reports over APPROVED submissions and
// exports them as a two-sheet XLSX workbook.
type ReportService interface {
	Summary(ctx context.Context, departmentID, periodID string) (*ReportSummary, error)
	// Export returns the workbook and a suggested filename.
	Export(ctx context.Context, departmentID, periodID string) (*excelize.File, string, error)
}

type reportService struct {
	submissionRepo repository.SubmissionRepository
	deptRepo       repository.DepartmentRepository
	periodRepo     repository.PeriodRepository
}

// NewReportService returns a new instance of ReportService
func NewReportService(
	submissionRepo repository.SubmissionRepository,
	deptRepo repository.DepartmentRepository,
	periodRepo repository.PeriodRepository,
) ReportService {
	return &reportService{
		submissionRepo: submissionRepo,
		deptRepo:       deptRepo,
		periodRepo:     periodRepo,
	}
}

func (s *reportService) load(ctx context.Context, departmentID, periodID string) (*model.Department, *model.SubmissionPeriod, []model.Submission, error) {
	department, err := s.deptRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, nil, nil, errors.New("department not found")
	}
	period, err := s.periodRepo.GetByID(ctx, periodID)
	if err != nil {
		return nil, nil, nil, errors.New("submission period not found")
	}
	if period.DepartmentID != department.ID {
		return nil, nil, nil, errors.New("period does not belong to this department")
	}

	approved, err := s.submissionRepo.ListApproved(ctx, departmentID, periodID)
	if err != nil {
		return nil, nil, nil, err
	}
	return department, period, approved, nil
}

func (s *reportService) Summary(ctx context.Context, departmentID, periodID string) (*ReportSummary, error) {
	_, period, approved, err := s.load(ctx, departmentID, periodID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategorySummary)
	order := make([]string, 0)
	total := decimal.Zero

	for i := range approved {
		sub := &approved[i]
		name := "Uncategorized"
		if sub.Category != nil {
			name = sub.Category.Name
		}
		entry, ok := byCategory[name]
		if !ok {
			entry = &CategorySummary{Category: name, Total: decimal.Zero}
			byCategory[name] = entry
			order = append(order, name)
		}
		entry.Count++
		entry.Total = entry.Total.Add(sub.LineTotal())
		total = total.Add(sub.LineTotal())
	}

	categories := make([]CategorySummary, 0, len(order))
	for _, name := range order {
		categories = append(categories, *byCategory[name])
	}

	return &ReportSummary{
		DepartmentID: departmentID,
		PeriodID:     periodID,
		Year:         period.Year,
		Categories:   categories,
		TotalBudget:  total,
	}, nil
}

func (s *reportService) Export(ctx context.Context, departmentID, periodID string) (*excelize.File, string, error) {
	department, period, approved, err := s.load(ctx, departmentID, periodID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	// Sheet 1: detailed approved line items.
	index, err := f.NewSheet(sheetDetailed)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)

	headers := []string{"Title", "Description", "Category", "Requested By", "Quantity", "Unit Price", "Total"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetDetailed, cell, header)
	}

	totalBudget := decimal.Zero
	for i := range approved {
		sub := &approved[i]
		row := i + 2

		categoryName := ""
		if sub.Category != nil {
			categoryName = sub.Category.Name
		}
		requestedBy := ""
		if sub.User != nil {
			requestedBy = sub.User.Name
		}

		lineTotal := sub.LineTotal()
		totalBudget = totalBudget.Add(lineTotal)

		unitPrice, _ := sub.UnitPrice.Float64()
		total, _ := lineTotal.Float64()

		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("A%d", row), sub.Title)
		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("B%d", row), sub.Description)
		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("C%d", row), categoryName)
		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("D%d", row), requestedBy)
		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("E%d", row), sub.Quantity)
		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("F%d", row), unitPrice)
		_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("G%d", row), total)
	}

	// Empty spacer row, then the grand total.
	totalRow := len(approved) + 3
	grandTotal, _ := totalBudget.Float64()
	_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("A%d", totalRow), "TOTAL")
	_ = f.SetCellValue(sheetDetailed, fmt.Sprintf("G%d", totalRow), grandTotal)

	// Sheet 2: per-category summary.
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, "", err
	}

	summary, err := s.Summary(ctx, departmentID, periodID)
	if err != nil {
		return nil, "", err
	}

	summaryHeaders := []string{"Category", "Items", "Total Budget"}
	for i, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetSummary, cell, header)
	}
	for i, cat := range summary.Categories {
		row := i + 2
		catTotal, _ := cat.Total.Float64()
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), cat.Category)
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), cat.Count)
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", row), catTotal)
	}
	summaryTotalRow := len(summary.Categories) + 3
	_ = f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", summaryTotalRow), "TOTAL")
	_ = f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", summaryTotalRow), grandTotal)

	// Drop excelize's default sheet.
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("needs_%s_%d.xlsx", department.Name, period.Year)
	return f, fileName, nil
}
