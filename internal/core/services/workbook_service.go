package services

import (
	"context"
	"io"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/adapters/spreadsheet"
	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"
)

// Arabic labels used in exported sheets
var (
	collectionTypeLabels = map[domain.CollectionType]string{
		domain.CollectionGold: "ذهب",
		domain.CollectionCash: "نقدي",
	}
	paymentMethodLabels = map[domain.PaymentMethod]string{
		domain.PaymentCash:         "نقدي",
		domain.PaymentBankTransfer: "تحويل بنكي",
		domain.PaymentCheque:       "شيك",
	}
)

// WorkbookService exports the ledger to xlsx and imports customers from it
type WorkbookService struct {
	sales       repositories.SaleRepository
	collections repositories.CollectionRepository
	customers   repositories.CustomerRepository
	employees   repositories.EmployeeRepository
	registry    *CustomerService
	access      accessResolver
	loc         *time.Location
}

// NewWorkbookService creates a new workbook service
func NewWorkbookService(
	sales repositories.SaleRepository,
	collections repositories.CollectionRepository,
	customers repositories.CustomerRepository,
	employees repositories.EmployeeRepository,
	registry *CustomerService,
	loc *time.Location,
) *WorkbookService {
	if loc == nil {
		loc = time.UTC
	}
	return &WorkbookService{
		sales:       sales,
		collections: collections,
		customers:   customers,
		employees:   employees,
		registry:    registry,
		access:      accessResolver{employees: employees},
		loc:         loc,
	}
}

// Export writes the caller's unfiltered snapshot: sales, collections,
// customers and a summary sheet. Callers without an active profile get an
// empty workbook.
func (s *WorkbookService) Export(ctx context.Context, id *domain.Identity, w io.Writer) error {
	snapshot, err := s.snapshot(ctx, id)
	if err != nil {
		return err
	}
	return spreadsheet.WriteWorkbook(w, snapshot, s.loc)
}

func (s *WorkbookService) snapshot(ctx context.Context, id *domain.Identity) (*spreadsheet.Export, error) {
	scope, ok, err := s.access.readScope(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &spreadsheet.Export{}, nil
	}

	sales, err := s.sales.List(ctx, scope, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	collections, err := s.collections.List(ctx, scope, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	customerIDs := make([]uint, 0, len(sales)+len(collections))
	for _, sale := range sales {
		customerIDs = append(customerIDs, sale.CustomerID)
	}
	for _, c := range collections {
		customerIDs = append(customerIDs, c.CustomerID)
	}
	dir, err := loadDirectory(ctx, s.customers, s.employees, customerIDs, nil)
	if err != nil {
		return nil, err
	}

	out := &spreadsheet.Export{
		Sales:       make([]spreadsheet.SaleRow, 0, len(sales)),
		Collections: make([]spreadsheet.CollectionRow, 0, len(collections)),
		Customers:   make([]spreadsheet.CustomerRow, 0, len(customers)),
		Summary:     aggregate.ExportSummary(sales, collections, len(customers)),
	}
	for _, sale := range sales {
		name, phone := dir.customer(sale.CustomerID)
		out.Sales = append(out.Sales, spreadsheet.SaleRow{
			Date:          sale.SaleDate,
			CustomerName:  name,
			CustomerPhone: phone,
			ProductName:   sale.ProductName,
			Karat:         string(sale.Karat),
			Weight:        sale.Weight,
			PricePerGram:  sale.PricePerGram,
			TotalAmount:   sale.TotalAmount,
			Notes:         deref(sale.Notes, ""),
		})
	}
	for _, c := range collections {
		name, phone := dir.customer(c.CustomerID)
		method := "-"
		if c.PaymentMethod != nil {
			method = paymentMethodLabels[*c.PaymentMethod]
		}
		out.Collections = append(out.Collections, spreadsheet.CollectionRow{
			Date:          c.CollectionDate,
			CustomerName:  name,
			CustomerPhone: phone,
			Type:          collectionTypeLabels[c.Type],
			Amount:        c.Amount,
			PaymentMethod: method,
			Notes:         deref(c.Notes, ""),
		})
	}
	for _, c := range customers {
		out.Customers = append(out.Customers, spreadsheet.CustomerRow{
			Name:      c.Name,
			Phone:     c.Phone,
			Address:   deref(c.Address, "-"),
			CreatedAt: c.CreatedAt,
			Notes:     deref(c.Notes, ""),
		})
	}
	return out, nil
}

// Import reads customers from an xlsx workbook and adds them for the caller.
// Fully blank rows are ignored; rows missing a name or phone are reported
// as failures.
func (s *WorkbookService) Import(ctx context.Context, id *domain.Identity, r io.Reader) (*ImportResult, error) {
	if _, err := s.access.writer(ctx, id); err != nil {
		return nil, err
	}

	records, err := spreadsheet.ReadCustomers(r)
	if err != nil {
		return nil, err
	}
	inputs := make([]CustomerInput, 0, len(records))
	for _, rec := range records {
		inputs = append(inputs, CustomerInput{
			Name:    rec.Name,
			Phone:   rec.Phone,
			Email:   rec.Email,
			Address: rec.Address,
			Notes:   rec.Notes,
		})
	}
	return s.registry.Import(ctx, id, inputs)
}

// Template writes the customer import template
func (s *WorkbookService) Template(w io.Writer) error {
	return spreadsheet.WriteTemplate(w)
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
