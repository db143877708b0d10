package services

import (
	"context"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CollectionService handles the collections side of the ledger
type CollectionService struct {
	collections repositories.CollectionRepository
	customers   repositories.CustomerRepository
	employees   repositories.EmployeeRepository
	access      accessResolver
	log         *zap.Logger
	now         func() time.Time
}

// NewCollectionService creates a new collection service
func NewCollectionService(
	collections repositories.CollectionRepository,
	customers repositories.CustomerRepository,
	employees repositories.EmployeeRepository,
	log *zap.Logger,
) *CollectionService {
	return &CollectionService{
		collections: collections,
		customers:   customers,
		employees:   employees,
		access:      accessResolver{employees: employees},
		log:         log,
		now:         time.Now,
	}
}

// CollectionInput represents a payment to record. Amount is grams for gold
// and currency for cash.
type CollectionInput struct {
	CustomerID     uint            `json:"customer_id" validate:"required"`
	CollectionType string          `json:"collection_type" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  *string         `json:"payment_method,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
}

// List returns the collections visible to the caller dated inside r, newest first
func (s *CollectionService) List(ctx context.Context, id *domain.Identity, r domain.DateRange) ([]CollectionResponse, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return []CollectionResponse{}, err
	}
	collections, err := s.collections.List(ctx, scope, r)
	if err != nil {
		return nil, err
	}

	customerIDs := make([]uint, 0, len(collections))
	employeeIDs := make([]uint, 0, len(collections))
	for _, c := range collections {
		customerIDs = append(customerIDs, c.CustomerID)
		employeeIDs = append(employeeIDs, c.EmployeeID)
	}
	dir, err := loadDirectory(ctx, s.customers, s.employees, customerIDs, employeeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]CollectionResponse, 0, len(collections))
	for _, c := range collections {
		out = append(out, dir.collection(c))
	}
	return out, nil
}

// Export returns every collection visible to the caller, newest first
func (s *CollectionService) Export(ctx context.Context, id *domain.Identity) ([]CollectionResponse, error) {
	return s.List(ctx, id, domain.DateRange{})
}

// Add records a collection. The payment method only applies to cash.
func (s *CollectionService) Add(ctx context.Context, id *domain.Identity, input *CollectionInput) (uint, error) {
	emp, err := s.access.writer(ctx, id)
	if err != nil {
		return 0, err
	}

	typ, err := domain.ParseCollectionType(input.CollectionType)
	if err != nil {
		return 0, err
	}
	if err := domain.CheckQuantity("amount", input.Amount, domain.AmountPlaces); err != nil {
		return 0, err
	}
	var method *domain.PaymentMethod
	if typ == domain.CollectionCash {
		if raw := optional(input.PaymentMethod); raw != nil {
			pm, err := domain.ParsePaymentMethod(*raw)
			if err != nil {
				return 0, err
			}
			method = &pm
		}
	}
	if err := checkCustomer(ctx, s.customers, emp, input.CustomerID); err != nil {
		return 0, err
	}

	collection := &domain.Collection{
		CustomerID:     input.CustomerID,
		EmployeeID:     emp.ID,
		Type:           typ,
		Amount:         input.Amount,
		PaymentMethod:  method,
		CollectionDate: s.now(),
		Notes:          optional(input.Notes),
	}
	if err := s.collections.Create(ctx, collection); err != nil {
		return 0, err
	}

	s.log.Debug("collection recorded",
		zap.Uint("collection_id", collection.ID),
		zap.Uint("employee_id", emp.ID),
		zap.String("type", string(typ)),
	)
	return collection.ID, nil
}

// Weekly summarizes the caller's collections over the trailing seven days
func (s *CollectionService) Weekly(ctx context.Context, id *domain.Identity) (*aggregate.CollectionStats, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return &aggregate.CollectionStats{}, err
	}

	now := s.now()
	since := now.Add(-aggregate.Week)
	collections, err := s.collections.List(ctx, scope, domain.DateRange{From: &since})
	if err != nil {
		return nil, err
	}
	stats := aggregate.WeeklyCollections(collections, now)
	return &stats, nil
}
