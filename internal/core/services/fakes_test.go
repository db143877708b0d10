package services

import (
	"context"
	"testing"
	"time"

	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memStore is an in-memory backing store shared by the fake repositories.
// Records are appended in id order, so iterating backwards is newest first.
type memStore struct {
	users       []*domain.User
	tokens      []*domain.RefreshToken
	employees   []*domain.Employee
	customers   []*domain.Customer
	sales       []*domain.Sale
	collections []*domain.Collection
}

func newStore() *memStore { return &memStore{} }

// ---- employees

type fakeEmployees struct{ s *memStore }

func (f fakeEmployees) Create(_ context.Context, e *domain.Employee) error {
	for _, x := range f.s.employees {
		if x.UserID == e.UserID {
			return domain.ErrEmployeeAlreadyExists
		}
	}
	cp := *e
	cp.ID = uint(len(f.s.employees) + 1)
	f.s.employees = append(f.s.employees, &cp)
	e.ID = cp.ID
	return nil
}

func (f fakeEmployees) GetByID(_ context.Context, id uint) (*domain.Employee, error) {
	for _, e := range f.s.employees {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeEmployees) GetByUserID(_ context.Context, userID string) (*domain.Employee, error) {
	for _, e := range f.s.employees {
		if e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeEmployees) GetByIDs(_ context.Context, ids []uint) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range f.s.employees {
		if containsID(ids, e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f fakeEmployees) List(_ context.Context) ([]*domain.Employee, error) {
	out := make([]*domain.Employee, 0, len(f.s.employees))
	for i := len(f.s.employees) - 1; i >= 0; i-- {
		out = append(out, f.s.employees[i])
	}
	return out, nil
}

func (f fakeEmployees) SetActive(_ context.Context, id uint, active bool) error {
	for _, e := range f.s.employees {
		if e.ID == id {
			e.IsActive = active
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- customers

type fakeCustomers struct{ s *memStore }

func (f fakeCustomers) Create(_ context.Context, c *domain.Customer) error {
	cp := *c
	cp.ID = uint(len(f.s.customers) + 1)
	f.s.customers = append(f.s.customers, &cp)
	c.ID = cp.ID
	return nil
}

func (f fakeCustomers) GetByID(_ context.Context, id uint) (*domain.Customer, error) {
	for _, c := range f.s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeCustomers) GetByIDs(_ context.Context, ids []uint) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for _, c := range f.s.customers {
		if containsID(ids, c.ID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeCustomers) List(_ context.Context, scope domain.Scope) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for i := len(f.s.customers) - 1; i >= 0; i-- {
		if scope.Allows(f.s.customers[i].EmployeeID) {
			out = append(out, f.s.customers[i])
		}
	}
	return out, nil
}

func (f fakeCustomers) Count(ctx context.Context, scope domain.Scope) (int64, error) {
	cs, _ := f.List(ctx, scope)
	return int64(len(cs)), nil
}

// ---- sales

type fakeSales struct{ s *memStore }

func (f fakeSales) Create(_ context.Context, sale *domain.Sale) error {
	cp := *sale
	cp.ID = uint(len(f.s.sales) + 1)
	f.s.sales = append(f.s.sales, &cp)
	sale.ID = cp.ID
	return nil
}

func (f fakeSales) List(_ context.Context, scope domain.Scope, r domain.DateRange) ([]*domain.Sale, error) {
	var out []*domain.Sale
	for i := len(f.s.sales) - 1; i >= 0; i-- {
		s := f.s.sales[i]
		if scope.Allows(s.EmployeeID) && r.Contains(s.SaleDate) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f fakeSales) ListByCustomerIDs(_ context.Context, ids []uint) ([]*domain.Sale, error) {
	var out []*domain.Sale
	for _, s := range f.s.sales {
		if containsID(ids, s.CustomerID) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---- collections

type fakeCollections struct{ s *memStore }

func (f fakeCollections) Create(_ context.Context, c *domain.Collection) error {
	cp := *c
	cp.ID = uint(len(f.s.collections) + 1)
	f.s.collections = append(f.s.collections, &cp)
	c.ID = cp.ID
	return nil
}

func (f fakeCollections) List(_ context.Context, scope domain.Scope, r domain.DateRange) ([]*domain.Collection, error) {
	var out []*domain.Collection
	for i := len(f.s.collections) - 1; i >= 0; i-- {
		c := f.s.collections[i]
		if scope.Allows(c.EmployeeID) && r.Contains(c.CollectionDate) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f fakeCollections) ListByCustomerIDs(_ context.Context, ids []uint) ([]*domain.Collection, error) {
	var out []*domain.Collection
	for _, c := range f.s.collections {
		if containsID(ids, c.CustomerID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ---- users and refresh tokens

type fakeUsers struct{ s *memStore }

func (f fakeUsers) Create(_ context.Context, u *domain.User) error {
	cp := *u
	f.s.users = append(f.s.users, &cp)
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.s.users {
		if u.Email != nil && *u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokens struct {
	s      *memStore
	purged int64
}

func (f *fakeTokens) Create(_ context.Context, t *domain.RefreshToken) error {
	cp := *t
	cp.ID = uint(len(f.s.tokens) + 1)
	f.s.tokens = append(f.s.tokens, &cp)
	return nil
}

func (f *fakeTokens) GetByTokenHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	for _, t := range f.s.tokens {
		if t.TokenHash == hash && t.RevokedAt == nil {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTokens) RevokeByTokenHash(_ context.Context, hash string) error {
	now := time.Now()
	for _, t := range f.s.tokens {
		if t.TokenHash == hash {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeTokens) RevokeAllByUserID(_ context.Context, userID string) error {
	now := time.Now()
	for _, t := range f.s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeTokens) DeleteExpired(_ context.Context) (int64, error) {
	return f.purged, nil
}

func containsID(ids []uint, id uint) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// ---- fixtures

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

const adminEmail = "admin@newegyptgold.com"

// env wires every service to one store with a fixed clock
type env struct {
	store       *memStore
	employees   *EmployeeService
	customers   *CustomerService
	sales       *SaleService
	collections *CollectionService
	reports     *ReportService
	workbooks   *WorkbookService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := newStore()
	emps, custs := fakeEmployees{s}, fakeCustomers{s}
	sales, cols := fakeSales{s}, fakeCollections{s}
	log := zap.NewNop()
	clock := func() time.Time { return fixedNow }

	e := &env{
		store:       s,
		employees:   NewEmployeeService(emps, custs, sales, cols, adminEmail, log),
		customers:   NewCustomerService(custs, emps, log),
		sales:       NewSaleService(sales, custs, emps, log),
		collections: NewCollectionService(cols, custs, emps, log),
		reports:     NewReportService(sales, cols, custs, emps, time.UTC),
	}
	e.workbooks = NewWorkbookService(sales, cols, custs, emps, e.customers, time.UTC)
	e.employees.now = clock
	e.customers.now = clock
	e.sales.now = clock
	e.collections.now = clock
	e.reports.now = clock
	return e
}

func identity(userID, email string) *domain.Identity {
	return &domain.Identity{UserID: userID, Email: email}
}

// hire creates a profile for a fresh identity and returns both
func (e *env) hire(t *testing.T, userID, email string) (*domain.Identity, uint) {
	t.Helper()
	id := identity(userID, email)
	empID, err := e.employees.Create(context.Background(), id, &CreateEmployeeInput{Name: "emp " + userID, Phone: "0100"})
	if err != nil {
		t.Fatalf("create employee %s: %v", userID, err)
	}
	return id, empID
}

func (e *env) customer(t *testing.T, id *domain.Identity, name string) uint {
	t.Helper()
	cid, err := e.customers.Add(context.Background(), id, &CustomerInput{Name: name, Phone: "0123"})
	if err != nil {
		t.Fatalf("add customer %s: %v", name, err)
	}
	return cid
}

func (e *env) sell(t *testing.T, id *domain.Identity, customerID uint, weight, price string) uint {
	t.Helper()
	sid, err := e.sales.Add(context.Background(), id, &SaleInput{
		CustomerID:   customerID,
		ProductName:  "bracelet",
		Karat:        "21",
		Weight:       decimal.RequireFromString(weight),
		PricePerGram: decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("add sale: %v", err)
	}
	return sid
}

func (e *env) collect(t *testing.T, id *domain.Identity, customerID uint, typ, amount string) {
	t.Helper()
	if _, err := e.collections.Add(context.Background(), id, &CollectionInput{
		CustomerID:     customerID,
		CollectionType: typ,
		Amount:         decimal.RequireFromString(amount),
	}); err != nil {
		t.Fatalf("add collection: %v", err)
	}
}
