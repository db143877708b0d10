package services

import (
	"context"
	"fmt"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"
)

// DefaultDailyDays is the daily report window when none is requested
const DefaultDailyDays = 30

// ReportService builds the role-scoped reports
type ReportService struct {
	sales       repositories.SaleRepository
	collections repositories.CollectionRepository
	customers   repositories.CustomerRepository
	access      accessResolver
	loc         *time.Location
	now         func() time.Time
}

// NewReportService creates a new report service. loc is the calendar used
// for daily buckets.
func NewReportService(
	sales repositories.SaleRepository,
	collections repositories.CollectionRepository,
	customers repositories.CustomerRepository,
	employees repositories.EmployeeRepository,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		sales:       sales,
		collections: collections,
		customers:   customers,
		access:      accessResolver{employees: employees},
		loc:         loc,
		now:         time.Now,
	}
}

// Performance reports activity inside r, which defaults to the trailing 30 days
func (s *ReportService) Performance(ctx context.Context, id *domain.Identity, r domain.DateRange) (*aggregate.PerformanceReport, error) {
	now := s.now()
	period := aggregate.ResolvePeriod(r, now)

	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return aggregate.Performance(nil, nil, period, nil), nil
	}

	window := domain.DateRange{From: &period.Start, To: &period.End}
	sales, err := s.sales.List(ctx, scope, window)
	if err != nil {
		return nil, err
	}
	collections, err := s.collections.List(ctx, scope, window)
	if err != nil {
		return nil, err
	}

	customerIDs := make([]uint, 0, len(sales))
	for _, sale := range sales {
		customerIDs = append(customerIDs, sale.CustomerID)
	}
	customers, err := s.customers.GetByIDs(ctx, uniqueIDs(customerIDs))
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	return aggregate.Performance(sales, collections, period, names), nil
}

// Overdue lists the caller's customers that still owe money, largest debt
// first. Debt counts every sale and cash collection of the customer, not
// only the ones the caller recorded.
func (s *ReportService) Overdue(ctx context.Context, id *domain.Identity) ([]aggregate.OverdueCustomer, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return []aggregate.OverdueCustomer{}, err
	}

	customers, err := s.customers.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}
	sales, err := s.sales.ListByCustomerIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	collections, err := s.collections.ListByCustomerIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return aggregate.Overdue(customers, sales, collections, s.now()), nil
}

// Daily buckets the caller's sales of the last days×24h by local calendar day
func (s *ReportService) Daily(ctx context.Context, id *domain.Identity, days int) ([]aggregate.DailyBucket, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", domain.ErrValidation)
	}

	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil || !ok {
		return []aggregate.DailyBucket{}, err
	}

	now := s.now()
	since := aggregate.DailySince(now, days)
	sales, err := s.sales.List(ctx, scope, domain.DateRange{From: &since})
	if err != nil {
		return nil, err
	}
	return aggregate.DailySales(sales, days, now, s.loc), nil
}
