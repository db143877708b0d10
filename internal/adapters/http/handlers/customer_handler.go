package handlers

import (
	"bytes"
	"fmt"

	"goldtrack/internal/adapters/http/middleware"
	"goldtrack/internal/core/services"
	"goldtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TemplateFilename is the download name of the import template
const TemplateFilename = "customers_template.xlsx"

// CustomerHandler handles customer registry endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
	workbookService *services.WorkbookService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService, workbookService *services.WorkbookService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		workbookService: workbookService,
	}
}

// List lists the caller's customers
// @Summary List my customers
// @Description Customers owned by the caller, or every customer for admins; newest first
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customerService.List(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to list customers")
	}
	return response.Success(c, "Customers retrieved", fiber.Map{
		"customers": customers,
	})
}

// Add registers a customer owned by the caller
// @Summary Add customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CustomerInput true "Customer"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers [post]
func (h *CustomerHandler) Add(c *fiber.Ctx) error {
	var input services.CustomerInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "")
	}

	id, err := h.customerService.Add(c.UserContext(), middleware.Identity(c), &input)
	if err != nil {
		return fail(c, err, "Failed to add customer")
	}
	return response.Created(c, "Customer added", fiber.Map{"id": id})
}

// Import adds a batch of customers. Invalid records are reported, not fatal.
// @Summary Import customers
// @Description Add many customers at once; each record succeeds or fails on its own
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ImportInput true "Customers"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /customers/import [post]
func (h *CustomerHandler) Import(c *fiber.Ctx) error {
	var input services.ImportInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.customerService.Import(c.UserContext(), middleware.Identity(c), input.Customers)
	if err != nil {
		return fail(c, err, "Failed to import customers")
	}
	return response.Success(c, importMessage(result), result)
}

// ImportWorkbook imports customers from an uploaded xlsx file
// @Summary Import customers from a workbook
// @Description Reads the first sheet; Arabic or English headers are accepted
// @Tags Customers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /customers/import/workbook [post]
func (h *CustomerHandler) ImportWorkbook(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	defer file.Close()

	result, err := h.workbookService.Import(c.UserContext(), middleware.Identity(c), file)
	if err != nil {
		return fail(c, err, "Failed to import customers")
	}
	return response.Success(c, importMessage(result), result)
}

// Template downloads the customer import template
// @Summary Customer import template
// @Tags Customers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /customers/import/template [get]
func (h *CustomerHandler) Template(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.workbookService.Template(&buf); err != nil {
		return fail(c, err, "Failed to build template")
	}
	return response.Workbook(c, TemplateFilename, buf.Bytes())
}

func importMessage(r *services.ImportResult) string {
	return fmt.Sprintf("Imported %d customers, %d failed", r.Success, r.Failed)
}
