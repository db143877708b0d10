package handlers

import (
	"goldtrack/internal/adapters/http/middleware"
	"goldtrack/internal/core/services"
	"goldtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee profile endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Me returns the caller's employee profile
// @Summary Get my employee profile
// @Description Returns the caller's profile, or null when none exists yet
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /employees/me [get]
func (h *EmployeeHandler) Me(c *fiber.Ctx) error {
	emp, err := h.employeeService.GetCurrent(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to get employee profile")
	}
	return response.Success(c, "Employee profile retrieved", fiber.Map{
		"employee": emp,
	})
}

// Create creates the caller's employee profile
// @Summary Create my employee profile
// @Description Create the caller's profile. The configured admin email gets the admin role.
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEmployeeInput true "Profile data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateEmployeeInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "")
	}

	id, err := h.employeeService.Create(c.UserContext(), middleware.Identity(c), &input)
	if err != nil {
		return fail(c, err, "Failed to create employee profile")
	}
	return response.Created(c, "Employee profile created", fiber.Map{"id": id})
}

// List lists every employee (admin only)
// @Summary List employees
// @Description List all employee profiles, newest first (Admin only)
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.employeeService.ListAll(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to list employees")
	}
	if employees == nil {
		employees = []*services.EmployeeResponse{}
	}
	return response.Success(c, "Employees retrieved", fiber.Map{
		"employees": employees,
	})
}

// Stats returns the all-time totals of one employee (admin only)
// @Summary Employee stats
// @Description Sales, weight and collection totals of an employee (Admin only)
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/stats [get]
func (h *EmployeeHandler) Stats(c *fiber.Ctx) error {
	employeeID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err, "")
	}

	stats, err := h.employeeService.Stats(c.UserContext(), middleware.Identity(c), employeeID)
	if err != nil {
		return fail(c, err, "Failed to get employee stats")
	}
	return response.Success(c, "Employee stats retrieved", stats)
}

// SetStatus activates or deactivates an employee (admin only)
// @Summary Set employee status
// @Description Activate or deactivate an employee profile (Admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.StatusInput true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/status [put]
func (h *EmployeeHandler) SetStatus(c *fiber.Ctx) error {
	employeeID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err, "")
	}
	var input services.StatusInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "")
	}

	if err := h.employeeService.SetActive(c.UserContext(), middleware.Identity(c), employeeID, *input.IsActive); err != nil {
		return fail(c, err, "Failed to update employee status")
	}
	return response.Success(c, "Employee status updated", nil)
}
