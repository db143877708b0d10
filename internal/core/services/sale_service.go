package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService handles the sales side of the ledger
type SaleService struct {
	sales     repositories.SaleRepository
	customers repositories.CustomerRepository
	employees repositories.EmployeeRepository
	access    accessResolver
	log       *zap.Logger
	now       func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(
	sales repositories.SaleRepository,
	customers repositories.CustomerRepository,
	employees repositories.EmployeeRepository,
	log *zap.Logger,
) *SaleService {
	return &SaleService{
		sales:     sales,
		customers: customers,
		employees: employees,
		access:    accessResolver{employees: employees},
		log:       log,
		now:       time.Now,
	}
}

// SaleInput represents a sale to record
type SaleInput struct {
	CustomerID   uint            `json:"customer_id" validate:"required"`
	ProductName  string          `json:"product_name" validate:"required,max=150"`
	Karat        string          `json:"karat" validate:"required"`
	Weight       decimal.Decimal `json:"weight"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	Notes        *string         `json:"notes,omitempty"`
}

// List returns the sales visible to the caller dated inside r, newest first
func (s *SaleService) List(ctx context.Context, id *domain.Identity, r domain.DateRange) ([]SaleResponse, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return []SaleResponse{}, err
	}
	sales, err := s.sales.List(ctx, scope, r)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, sales)
}

// Export returns every sale visible to the caller, newest first
func (s *SaleService) Export(ctx context.Context, id *domain.Identity) ([]SaleResponse, error) {
	return s.List(ctx, id, domain.DateRange{})
}

func (s *SaleService) enrich(ctx context.Context, sales []*domain.Sale) ([]SaleResponse, error) {
	customerIDs := make([]uint, 0, len(sales))
	employeeIDs := make([]uint, 0, len(sales))
	for _, sale := range sales {
		customerIDs = append(customerIDs, sale.CustomerID)
		employeeIDs = append(employeeIDs, sale.EmployeeID)
	}
	dir, err := loadDirectory(ctx, s.customers, s.employees, customerIDs, employeeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, dir.sale(sale))
	}
	return out, nil
}

// Add records a sale. The total is weight × price per gram, computed here
// once and stored; it is never recomputed.
func (s *SaleService) Add(ctx context.Context, id *domain.Identity, input *SaleInput) (uint, error) {
	emp, err := s.access.writer(ctx, id)
	if err != nil {
		return 0, err
	}

	product := strings.TrimSpace(input.ProductName)
	if product == "" {
		return 0, fmt.Errorf("%w: product_name is required", domain.ErrValidation)
	}
	karat, err := domain.ParseKarat(input.Karat)
	if err != nil {
		return 0, err
	}
	if err := domain.CheckQuantity("weight", input.Weight, domain.WeightPlaces); err != nil {
		return 0, err
	}
	if err := domain.CheckQuantity("price_per_gram", input.PricePerGram, domain.PricePlaces); err != nil {
		return 0, err
	}
	if err := checkCustomer(ctx, s.customers, emp, input.CustomerID); err != nil {
		return 0, err
	}

	sale := &domain.Sale{
		CustomerID:   input.CustomerID,
		EmployeeID:   emp.ID,
		ProductName:  product,
		Karat:        karat,
		Weight:       input.Weight,
		PricePerGram: input.PricePerGram,
		TotalAmount:  input.Weight.Mul(input.PricePerGram),
		SaleDate:     s.now(),
		Notes:        optional(input.Notes),
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return 0, err
	}

	s.log.Debug("sale recorded",
		zap.Uint("sale_id", sale.ID),
		zap.Uint("employee_id", emp.ID),
		zap.String("total_amount", sale.TotalAmount.String()),
	)
	return sale.ID, nil
}

// Weekly summarizes the caller's sales over the trailing seven days
func (s *SaleService) Weekly(ctx context.Context, id *domain.Identity) (*aggregate.SalesBreakdown, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return &aggregate.SalesBreakdown{}, err
	}

	now := s.now()
	since := now.Add(-aggregate.Week)
	sales, err := s.sales.List(ctx, scope, domain.DateRange{From: &since})
	if err != nil {
		return nil, err
	}
	stats := aggregate.WeeklySales(sales, now)
	return &stats, nil
}

// checkCustomer verifies the customer exists and, for non-admin callers,
// belongs to the caller
func checkCustomer(ctx context.Context, customers repositories.CustomerRepository, emp *domain.Employee, customerID uint) error {
	customer, err := customers.GetByID(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrCustomerNotFound
	}
	if err != nil {
		return err
	}
	if !domain.ScopeFor(emp).Allows(customer.EmployeeID) {
		return domain.ErrForbidden
	}
	return nil
}
