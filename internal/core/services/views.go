package services

import (
	"context"
	"strings"
	"time"

	"goldtrack/internal/adapters/persistence/repositories"
	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

// EmployeeResponse is the API shape of an employee profile
type EmployeeResponse struct {
	ID        uint        `json:"id"`
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
}

func toEmployeeResponse(e *domain.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	return &EmployeeResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Name:      e.Name,
		Phone:     e.Phone,
		Email:     e.Email,
		Role:      e.Role,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}

// CustomerResponse is the API shape of a customer. EmployeeName is only
// filled for admin callers.
type CustomerResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        *string   `json:"email"`
	Address      *string   `json:"address"`
	Notes        *string   `json:"notes"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Notes:      c.Notes,
		EmployeeID: c.EmployeeID,
		CreatedAt:  c.CreatedAt,
	}
}

// SaleResponse is a sale enriched with display names
type SaleResponse struct {
	ID            uint            `json:"id"`
	CustomerID    uint            `json:"customer_id"`
	EmployeeID    uint            `json:"employee_id"`
	ProductName   string          `json:"product_name"`
	Karat         domain.Karat    `json:"karat"`
	Weight        decimal.Decimal `json:"weight"`
	PricePerGram  decimal.Decimal `json:"price_per_gram"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	SaleDate      time.Time       `json:"sale_date"`
	Notes         *string         `json:"notes"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	EmployeeName  string          `json:"employee_name"`
}

// CollectionResponse is a collection enriched with display names
type CollectionResponse struct {
	ID             uint                  `json:"id"`
	CustomerID     uint                  `json:"customer_id"`
	EmployeeID     uint                  `json:"employee_id"`
	CollectionType domain.CollectionType `json:"collection_type"`
	Amount         decimal.Decimal       `json:"amount"`
	PaymentMethod  *domain.PaymentMethod `json:"payment_method"`
	CollectionDate time.Time             `json:"collection_date"`
	Notes          *string               `json:"notes"`
	CustomerName   string                `json:"customer_name"`
	CustomerPhone  string                `json:"customer_phone"`
	EmployeeName   string                `json:"employee_name"`
}

// directory resolves display names for the ids referenced by a batch of
// records. Missing references resolve to placeholders, never to errors.
type directory struct {
	customers map[uint]*domain.Customer
	employees map[uint]*domain.Employee
}

func loadDirectory(ctx context.Context, customers repositories.CustomerRepository, employees repositories.EmployeeRepository, customerIDs, employeeIDs []uint) (*directory, error) {
	d := &directory{
		customers: make(map[uint]*domain.Customer),
		employees: make(map[uint]*domain.Employee),
	}
	cs, err := customers.GetByIDs(ctx, uniqueIDs(customerIDs))
	if err != nil {
		return nil, err
	}
	for _, c := range cs {
		d.customers[c.ID] = c
	}
	es, err := employees.GetByIDs(ctx, uniqueIDs(employeeIDs))
	if err != nil {
		return nil, err
	}
	for _, e := range es {
		d.employees[e.ID] = e
	}
	return d, nil
}

func (d *directory) customer(id uint) (name, phone string) {
	if c, ok := d.customers[id]; ok {
		return c.Name, c.Phone
	}
	return aggregate.UnknownName, ""
}

func (d *directory) employeeName(id uint) string {
	if e, ok := d.employees[id]; ok {
		return e.Name
	}
	return aggregate.UnknownName
}

func (d *directory) sale(s *domain.Sale) SaleResponse {
	name, phone := d.customer(s.CustomerID)
	return SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		EmployeeID:    s.EmployeeID,
		ProductName:   s.ProductName,
		Karat:         s.Karat,
		Weight:        s.Weight,
		PricePerGram:  s.PricePerGram,
		TotalAmount:   s.TotalAmount,
		SaleDate:      s.SaleDate,
		Notes:         s.Notes,
		CustomerName:  name,
		CustomerPhone: phone,
		EmployeeName:  d.employeeName(s.EmployeeID),
	}
}

func (d *directory) collection(c *domain.Collection) CollectionResponse {
	name, phone := d.customer(c.CustomerID)
	return CollectionResponse{
		ID:             c.ID,
		CustomerID:     c.CustomerID,
		EmployeeID:     c.EmployeeID,
		CollectionType: c.Type,
		Amount:         c.Amount,
		PaymentMethod:  c.PaymentMethod,
		CollectionDate: c.CollectionDate,
		Notes:          c.Notes,
		CustomerName:   name,
		CustomerPhone:  phone,
		EmployeeName:   d.employeeName(c.EmployeeID),
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// optional trims s and returns nil when nothing is left
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
