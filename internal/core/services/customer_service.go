package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/domain"

	"go.uber.org/zap"
)

// CustomerService handles the customer registry
type CustomerService struct {
	customers repositories.CustomerRepository
	employees repositories.EmployeeRepository
	access    accessResolver
	log       *zap.Logger
	now       func() time.Time
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customers repositories.CustomerRepository,
	employees repositories.EmployeeRepository,
	log *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		employees: employees,
		access:    accessResolver{employees: employees},
		log:       log,
		now:       time.Now,
	}
}

// CustomerInput represents a customer to add
type CustomerInput struct {
	Name    string  `json:"name" validate:"required,max=150"`
	Phone   string  `json:"phone" validate:"required,max=30"`
	Email   *string `json:"email,omitempty" validate:"omitempty,max=100"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// ImportInput represents a batch of customers to import
type ImportInput struct {
	Customers []CustomerInput `json:"customers"`
}

// ImportResult is the outcome of a batch import
type ImportResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// List returns the customers visible to the caller, newest first.
// Admin callers also get the owning employee's name.
func (s *CustomerService) List(ctx context.Context, id *domain.Identity) ([]CustomerResponse, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return []CustomerResponse{}, err
	}

	customers, err := s.customers.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]CustomerResponse, 0, len(customers))
	if !scope.All {
		for _, c := range customers {
			out = append(out, toCustomerResponse(c))
		}
		return out, nil
	}

	ownerIDs := make([]uint, 0, len(customers))
	for _, c := range customers {
		ownerIDs = append(ownerIDs, c.EmployeeID)
	}
	owners, err := s.employees.GetByIDs(ctx, uniqueIDs(ownerIDs))
	if err != nil {
		return nil, err
	}
	dir := &directory{employees: make(map[uint]*domain.Employee, len(owners))}
	for _, e := range owners {
		dir.employees[e.ID] = e
	}
	for _, c := range customers {
		r := toCustomerResponse(c)
		r.EmployeeName = dir.employeeName(c.EmployeeID)
		out = append(out, r)
	}
	return out, nil
}

// Add registers a customer owned by the caller
func (s *CustomerService) Add(ctx context.Context, id *domain.Identity, input *CustomerInput) (uint, error) {
	emp, err := s.access.writer(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.add(ctx, emp, input)
}

func (s *CustomerService) add(ctx context.Context, owner *domain.Employee, input *CustomerInput) (uint, error) {
	draft := domain.CustomerDraft{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   optional(input.Email),
		Address: optional(input.Address),
		Notes:   optional(input.Notes),
	}
	if draft.Name == "" {
		return 0, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if draft.Phone == "" {
		return 0, fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}

	customer := &domain.Customer{
		Name:       draft.Name,
		Phone:      draft.Phone,
		Email:      draft.Email,
		Address:    draft.Address,
		Notes:      draft.Notes,
		EmployeeID: owner.ID,
		CreatedAt:  s.now(),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return 0, err
	}
	return customer.ID, nil
}

// Import adds every record independently. A failing record is counted and
// described in the result; it never prevents the others from being stored.
func (s *CustomerService) Import(ctx context.Context, id *domain.Identity, records []CustomerInput) (*ImportResult, error) {
	emp, err := s.access.writer(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}
	for i := range records {
		if _, err := s.add(ctx, emp, &records[i]); err != nil {
			label := strings.TrimSpace(records[i].Name)
			if label == "" {
				label = fmt.Sprintf("row %d", i+1)
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("failed to add %s: %v", label, err))
			continue
		}
		result.Success++
	}

	s.log.Info("customers imported",
		zap.Uint("employee_id", emp.ID),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
