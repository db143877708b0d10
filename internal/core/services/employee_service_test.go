package services

import (
	"context"
	"errors"
	"testing"

	"goldtrack/internal/core/domain"

	"go.uber.org/zap"
)

func TestCreateEmployeeRoleAndEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		userID    string
		email     string
		wantRole  domain.Role
		wantEmail string
	}{
		{"admin email promoted", "u-admin", adminEmail, domain.RoleAdmin, adminEmail},
		{"other email", "u-1", "sara@example.com", domain.RoleEmployee, "sara@example.com"},
		{"no email gets placeholder", "6f9619ff-8b86-d011-b42d-00cf4fc964ff", "", domain.RoleEmployee, "user_4fc964ff@temp.com"},
		{"admin email differs in case", "u-2", "Admin@newegyptgold.com", domain.RoleEmployee, "Admin@newegyptgold.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			id := identity(tt.userID, tt.email)
			empID, err := e.employees.Create(ctx, id, &CreateEmployeeInput{Name: " Sara ", Phone: "0100"})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}

			got, err := e.employees.GetCurrent(ctx, id)
			if err != nil || got == nil {
				t.Fatalf("GetCurrent = %v, %v", got, err)
			}
			if got.ID != empID || got.Role != tt.wantRole || got.Email != tt.wantEmail {
				t.Errorf("profile = %+v", got)
			}
			if got.Name != "Sara" || !got.IsActive {
				t.Errorf("name/active = %q/%v", got.Name, got.IsActive)
			}
		})
	}
}

func TestCreateEmployeeErrors(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id, _ := e.hire(t, "u-1", "a@example.com")

	if _, err := e.employees.Create(ctx, id, &CreateEmployeeInput{Name: "again", Phone: "1"}); !errors.Is(err, domain.ErrEmployeeAlreadyExists) {
		t.Errorf("second create err = %v, want ErrEmployeeAlreadyExists", err)
	}
	if _, err := e.employees.Create(ctx, nil, &CreateEmployeeInput{Name: "x", Phone: "1"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("anonymous err = %v", err)
	}
	if _, err := e.employees.Create(ctx, identity("u-2", ""), &CreateEmployeeInput{Name: "  ", Phone: "1"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank name err = %v", err)
	}
	if len(e.store.employees) != 1 {
		t.Errorf("employees stored = %d, want 1", len(e.store.employees))
	}
}

// racyEmployees hides existing profiles from the lookup, as a concurrent
// request would see before the first insert commits
type racyEmployees struct{ fakeEmployees }

func (racyEmployees) GetByUserID(context.Context, string) (*domain.Employee, error) {
	return nil, domain.ErrNotFound
}

func TestCreateEmployeeRaceLosesOnStore(t *testing.T) {
	s := newStore()
	racy := racyEmployees{fakeEmployees{s}}
	svc := NewEmployeeService(racy, fakeCustomers{s}, fakeSales{s}, fakeCollections{s}, adminEmail, zap.NewNop())
	id := identity("u-1", "")

	if _, err := svc.Create(context.Background(), id, &CreateEmployeeInput{Name: "a", Phone: "1"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Create(context.Background(), id, &CreateEmployeeInput{Name: "a", Phone: "1"})
	if !errors.Is(err, domain.ErrEmployeeAlreadyExists) {
		t.Fatalf("err = %v, want ErrEmployeeAlreadyExists", err)
	}
	if len(s.employees) != 1 {
		t.Fatalf("employees stored = %d, want 1", len(s.employees))
	}
}

func TestGetCurrentAnonymousAndMissing(t *testing.T) {
	e := newEnv(t)
	for _, id := range []*domain.Identity{nil, identity("nobody", "")} {
		got, err := e.employees.GetCurrent(context.Background(), id)
		if err != nil || got != nil {
			t.Errorf("GetCurrent(%v) = %v, %v; want nil, nil", id, got, err)
		}
	}
}

func TestListAllIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin, _ := e.hire(t, "u-admin", adminEmail)
	emp, _ := e.hire(t, "u-1", "")

	all, err := e.employees.ListAll(ctx, admin)
	if err != nil || len(all) != 2 {
		t.Fatalf("admin ListAll = %d, %v", len(all), err)
	}
	if all[0].UserID != "u-1" {
		t.Errorf("ListAll not newest first: %+v", all[0])
	}

	if _, err := e.employees.ListAll(ctx, emp); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("employee ListAll err = %v, want ErrForbidden", err)
	}
	if _, err := e.employees.ListAll(ctx, identity("no-profile", "")); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("no profile ListAll err = %v, want ErrForbidden", err)
	}
	got, err := e.employees.ListAll(ctx, nil)
	if err != nil || got != nil {
		t.Errorf("anonymous ListAll = %v, %v", got, err)
	}
}

func TestEmployeeStats(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin, _ := e.hire(t, "u-admin", adminEmail)
	emp, empID := e.hire(t, "u-1", "")
	other, _ := e.hire(t, "u-2", "")

	c1 := e.customer(t, emp, "Amal")
	e.customer(t, emp, "Basma")
	e.sell(t, emp, c1, "2", "1000")
	e.sell(t, emp, c1, "1.5", "1000")
	e.collect(t, emp, c1, "cash", "500")
	e.collect(t, emp, c1, "gold", "1")
	oc := e.customer(t, other, "Other")
	e.sell(t, other, oc, "10", "1000")

	stats, err := e.employees.Stats(ctx, admin, empID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalSales.String() != "3500" || stats.TotalWeight.String() != "3.5" || stats.TotalCollections.String() != "501" {
		t.Errorf("totals = %+v", stats)
	}
	if stats.CustomersCount != 2 || stats.SalesCount != 2 || stats.CollectionsCount != 2 {
		t.Errorf("counts = %+v", stats)
	}

	if _, err := e.employees.Stats(ctx, emp, empID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-admin err = %v", err)
	}
	if _, err := e.employees.Stats(ctx, admin, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown employee err = %v", err)
	}
}

func TestSetEmployeeActive(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin, adminID := e.hire(t, "u-admin", adminEmail)
	emp, empID := e.hire(t, "u-1", "")

	if err := e.employees.SetActive(ctx, admin, adminID, false); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("self deactivate err = %v", err)
	}
	if err := e.employees.SetActive(ctx, emp, adminID, false); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-admin err = %v", err)
	}
	if err := e.employees.SetActive(ctx, admin, empID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	cur, err := e.employees.GetCurrent(ctx, emp)
	if err != nil || cur.IsActive {
		t.Errorf("profile after deactivate = %+v, %v", cur, err)
	}
}
