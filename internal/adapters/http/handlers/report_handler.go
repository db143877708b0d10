package handlers

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"goldtrack/internal/adapters/http/middleware"
	"goldtrack/internal/core/domain"
	"goldtrack/internal/core/services"
	"goldtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reports and the workbook export
type ReportHandler struct {
	reportService   *services.ReportService
	workbookService *services.WorkbookService
	loc             *time.Location
	now             func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, workbookService *services.WorkbookService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{
		reportService:   reportService,
		workbookService: workbookService,
		loc:             loc,
		now:             time.Now,
	}
}

// Performance returns the activity report of a period
// @Summary Performance report
// @Description Sales, collections and top customers inside [from, to]; defaults to the last 30 days
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start (unix ms, RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "End, inclusive (unix ms, RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/performance [get]
func (h *ReportHandler) Performance(c *fiber.Ctx) error {
	r, err := dateRange(c, h.loc)
	if err != nil {
		return fail(c, err, "")
	}

	report, err := h.reportService.Performance(c.UserContext(), middleware.Identity(c), r)
	if err != nil {
		return fail(c, err, "Failed to build performance report")
	}
	return response.Success(c, "Performance report retrieved", report)
}

// Overdue lists customers with outstanding debt
// @Summary Overdue customers
// @Description Customers whose sales exceed their cash payments, largest debt first
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/overdue [get]
func (h *ReportHandler) Overdue(c *fiber.Ctx) error {
	customers, err := h.reportService.Overdue(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to build overdue report")
	}
	return response.Success(c, "Overdue customers retrieved", fiber.Map{"customers": customers})
}

// Daily buckets recent sales per calendar day
// @Summary Daily sales report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	days := services.DefaultDailyDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fail(c, fmt.Errorf("%w: days must be a number", domain.ErrValidation), "")
		}
		days = n
	}

	buckets, err := h.reportService.Daily(c.UserContext(), middleware.Identity(c), days)
	if err != nil {
		return fail(c, err, "Failed to build daily report")
	}
	return response.Success(c, "Daily sales retrieved", fiber.Map{"days": buckets})
}

// ExportWorkbook downloads the caller's ledger as an xlsx workbook
// @Summary Export workbook
// @Description Sales, collections, customers and a summary sheet
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /export/workbook [get]
func (h *ReportHandler) ExportWorkbook(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.workbookService.Export(c.UserContext(), middleware.Identity(c), &buf); err != nil {
		return fail(c, err, "Failed to export workbook")
	}
	filename := fmt.Sprintf("goldtrack_%s.xlsx", h.now().In(h.loc).Format("2006-01-02"))
	return response.Workbook(c, filename, buf.Bytes())
}
