package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"

	"go.uber.org/zap"
)

// EmployeeService manages employee profiles and the admin directory
type EmployeeService struct {
	employees   repositories.EmployeeRepository
	customers   repositories.CustomerRepository
	sales       repositories.SaleRepository
	collections repositories.CollectionRepository
	access      accessResolver
	adminEmail  string
	log         *zap.Logger
	now         func() time.Time
}

// NewEmployeeService creates a new employee service.
// adminEmail is the one email whose owner is promoted to admin.
func NewEmployeeService(
	employees repositories.EmployeeRepository,
	customers repositories.CustomerRepository,
	sales repositories.SaleRepository,
	collections repositories.CollectionRepository,
	adminEmail string,
	log *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:   employees,
		customers:   customers,
		sales:       sales,
		collections: collections,
		access:      accessResolver{employees: employees},
		adminEmail:  adminEmail,
		log:         log,
		now:         time.Now,
	}
}

// CreateEmployeeInput represents profile creation input
type CreateEmployeeInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=30"`
}

// StatusInput represents the activate/deactivate input
type StatusInput struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// GetCurrent returns the caller's profile, or nil when the caller is
// anonymous or has not created one yet
func (s *EmployeeService) GetCurrent(ctx context.Context, id *domain.Identity) (*EmployeeResponse, error) {
	emp, err := s.access.profile(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

// Create registers the caller's employee profile. The configured admin
// email is promoted to admin; everyone else becomes an employee.
func (s *EmployeeService) Create(ctx context.Context, id *domain.Identity, input *CreateEmployeeInput) (uint, error) {
	if id == nil || id.UserID == "" {
		return 0, domain.ErrUnauthenticated
	}

	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return 0, fmt.Errorf("%w: name and phone are required", domain.ErrValidation)
	}

	existing, err := s.access.profile(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, domain.ErrEmployeeAlreadyExists
	}

	email := strings.TrimSpace(id.Email)
	if email == "" {
		email = placeholderEmail(id.UserID)
	}
	role := domain.RoleEmployee
	if email == s.adminEmail {
		role = domain.RoleAdmin
	}

	emp := &domain.Employee{
		UserID:    id.UserID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: s.now(),
	}
	// A concurrent create for the same user loses on the unique index
	if err := s.employees.Create(ctx, emp); err != nil {
		return 0, err
	}

	s.log.Info("employee created",
		zap.Uint("employee_id", emp.ID),
		zap.String("user_id", emp.UserID),
		zap.String("role", string(emp.Role)),
	)
	return emp.ID, nil
}

// placeholderEmail builds the address used when the identity carries none
func placeholderEmail(userID string) string {
	suffix := userID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("user_%s@temp.com", suffix)
}

// ListAll returns every employee. Admin only.
func (s *EmployeeService) ListAll(ctx context.Context, id *domain.Identity) ([]*EmployeeResponse, error) {
	_, ok, err := s.access.admin(ctx, id)
	if err != nil || !ok {
		return nil, err
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// Stats returns the all-time totals of one employee. Admin only.
func (s *EmployeeService) Stats(ctx context.Context, id *domain.Identity, employeeID uint) (*aggregate.EmployeeStats, error) {
	_, ok, err := s.access.admin(ctx, id)
	if err != nil || !ok {
		return nil, err
	}

	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	scope := domain.Scope{EmployeeID: employeeID}
	sales, err := s.sales.List(ctx, scope, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	collections, err := s.collections.List(ctx, scope, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.Count(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := aggregate.EmployeeTotals(sales, collections, int(customers))
	return &stats, nil
}

// SetActive activates or deactivates an employee. Admin only; an admin
// cannot deactivate their own profile.
func (s *EmployeeService) SetActive(ctx context.Context, id *domain.Identity, employeeID uint, active bool) error {
	if id == nil || id.UserID == "" {
		return domain.ErrUnauthenticated
	}
	caller, _, err := s.access.admin(ctx, id)
	if err != nil {
		return err
	}
	if caller.ID == employeeID && !active {
		return fmt.Errorf("%w: cannot deactivate your own profile", domain.ErrValidation)
	}

	if err := s.employees.SetActive(ctx, employeeID, active); err != nil {
		return err
	}

	s.log.Info("employee status changed",
		zap.Uint("employee_id", employeeID),
		zap.Bool("is_active", active),
		zap.Uint("by", caller.ID),
	)
	return nil
}
