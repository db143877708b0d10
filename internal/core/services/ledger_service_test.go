package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

func TestSalesAreRoleScoped(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin, _ := e.hire(t, "u-admin", adminEmail)
	a, aID := e.hire(t, "u-a", "")
	b, _ := e.hire(t, "u-b", "")

	ca := e.customer(t, a, "Amal")
	cb := e.customer(t, b, "Basma")
	e.sell(t, a, ca, "1", "100")
	e.sell(t, a, ca, "2", "100")
	e.sell(t, b, cb, "3", "100")

	got, err := e.sales.List(ctx, a, domain.DateRange{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("employee sees %d sales, want 2", len(got))
	}
	for _, s := range got {
		if s.EmployeeID != aID {
			t.Errorf("employee sees sale of employee %d", s.EmployeeID)
		}
	}
	if got[0].ID < got[1].ID {
		t.Errorf("sales not newest first")
	}

	all, err := e.sales.List(ctx, admin, domain.DateRange{})
	if err != nil || len(all) != 3 {
		t.Fatalf("admin sees %d sales, %v", len(all), err)
	}

	for _, id := range []*domain.Identity{nil, identity("no-profile", "")} {
		none, err := e.sales.List(ctx, id, domain.DateRange{})
		if err != nil || len(none) != 0 {
			t.Errorf("List(%v) = %d, %v; want empty", id, len(none), err)
		}
	}

	customers, err := e.customers.List(ctx, b)
	if err != nil || len(customers) != 1 || customers[0].ID != cb {
		t.Fatalf("employee customers = %+v, %v", customers, err)
	}
	if customers[0].EmployeeName != "" {
		t.Errorf("employee listing should not carry owner names")
	}
	adminCustomers, err := e.customers.List(ctx, admin)
	if err != nil || len(adminCustomers) != 2 {
		t.Fatalf("admin customers = %d, %v", len(adminCustomers), err)
	}
	if adminCustomers[0].EmployeeName != "emp u-b" {
		t.Errorf("owner name = %q", adminCustomers[0].EmployeeName)
	}
}

func TestAddSaleStoresExactTotal(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, _ := e.hire(t, "u-1", "")
	c := e.customer(t, emp, "Amal")

	e.sell(t, emp, c, "12.345", "3000.50")

	sales, err := e.sales.List(ctx, emp, domain.DateRange{})
	if err != nil || len(sales) != 1 {
		t.Fatalf("sales = %v, %v", sales, err)
	}
	want := decimal.RequireFromString("37041.1725")
	if !sales[0].TotalAmount.Equal(want) {
		t.Errorf("total = %s, want %s", sales[0].TotalAmount, want)
	}
	if !sales[0].SaleDate.Equal(fixedNow) {
		t.Errorf("sale date = %v", sales[0].SaleDate)
	}
	if sales[0].CustomerName != "Amal" || sales[0].EmployeeName != "emp u-1" {
		t.Errorf("enrichment = %q/%q", sales[0].CustomerName, sales[0].EmployeeName)
	}
}

func TestAddSaleTotalMatchesStoredColumns(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, _ := e.hire(t, "u-1", "")
	c := e.customer(t, emp, "Amal")

	// trailing zeros beyond the column scale are accepted
	e.sell(t, emp, c, "1.2340", "100.550")

	sales, err := e.sales.List(ctx, emp, domain.DateRange{})
	if err != nil || len(sales) != 1 {
		t.Fatalf("sales = %v, %v", sales, err)
	}
	s := sales[0]
	stored := func(d decimal.Decimal, places int32) decimal.Decimal { return d.Round(places) }
	w, p, total := stored(s.Weight, domain.WeightPlaces), stored(s.PricePerGram, domain.PricePlaces), stored(s.TotalAmount, domain.TotalPlaces)
	if !total.Equal(w.Mul(p)) {
		t.Errorf("stored total %s != %s x %s", total, w, p)
	}
	if !total.Equal(decimal.RequireFromString("124.0787")) {
		t.Errorf("total = %s", total)
	}
}

func TestAddSaleRejections(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin, _ := e.hire(t, "u-admin", adminEmail)
	a, _ := e.hire(t, "u-a", "")
	b, _ := e.hire(t, "u-b", "")
	ca := e.customer(t, a, "Amal")
	cb := e.customer(t, b, "Basma")

	valid := func() *SaleInput {
		return &SaleInput{
			CustomerID:   ca,
			ProductName:  "ring",
			Karat:        "18",
			Weight:       decimal.NewFromInt(1),
			PricePerGram: decimal.NewFromInt(1),
		}
	}

	tests := []struct {
		name   string
		caller *domain.Identity
		mutate func(*SaleInput)
		want   error
	}{
		{"anonymous", nil, func(*SaleInput) {}, domain.ErrUnauthenticated},
		{"no profile", identity("ghost", ""), func(*SaleInput) {}, domain.ErrEmployeeProfileMissing},
		{"bad karat", a, func(in *SaleInput) { in.Karat = "24" }, domain.ErrValidation},
		{"zero weight", a, func(in *SaleInput) { in.Weight = decimal.Zero }, domain.ErrValidation},
		{"negative price", a, func(in *SaleInput) { in.PricePerGram = decimal.NewFromInt(-5) }, domain.ErrValidation},
		{"weight finer than a milligram", a, func(in *SaleInput) { in.Weight = decimal.RequireFromString("1.2345") }, domain.ErrValidation},
		{"price with three decimals", a, func(in *SaleInput) { in.PricePerGram = decimal.RequireFromString("100.555") }, domain.ErrValidation},
		{"blank product", a, func(in *SaleInput) { in.ProductName = " " }, domain.ErrValidation},
		{"unknown customer", a, func(in *SaleInput) { in.CustomerID = 999 }, domain.ErrCustomerNotFound},
		{"another employee's customer", a, func(in *SaleInput) { in.CustomerID = cb }, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(in)
			if _, err := e.sales.Add(ctx, tt.caller, in); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if len(e.store.sales) != 0 {
		t.Fatalf("rejected sales were stored: %d", len(e.store.sales))
	}

	in := valid()
	in.CustomerID = cb
	in.Karat = " 21 "
	if _, err := e.sales.Add(ctx, admin, in); err != nil {
		t.Fatalf("admin sale on any customer: %v", err)
	}
}

func TestInactiveEmployee(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin, _ := e.hire(t, "u-admin", adminEmail)
	emp, empID := e.hire(t, "u-1", "")
	c := e.customer(t, emp, "Amal")
	e.sell(t, emp, c, "1", "1")

	if err := e.employees.SetActive(ctx, admin, empID, false); err != nil {
		t.Fatal(err)
	}

	if _, err := e.customers.Add(ctx, emp, &CustomerInput{Name: "x", Phone: "1"}); !errors.Is(err, domain.ErrEmployeeInactive) {
		t.Errorf("add customer err = %v", err)
	}
	if _, err := e.collections.Add(ctx, emp, &CollectionInput{CustomerID: c, CollectionType: "cash", Amount: decimal.NewFromInt(1)}); !errors.Is(err, domain.ErrEmployeeInactive) {
		t.Errorf("add collection err = %v", err)
	}
	sales, err := e.sales.List(ctx, emp, domain.DateRange{})
	if err != nil || len(sales) != 0 {
		t.Errorf("inactive List = %d, %v; want empty", len(sales), err)
	}
}

func TestSalesDateFilterIsInclusive(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, _ := e.hire(t, "u-1", "")
	c := e.customer(t, emp, "Amal")

	days := []time.Time{fixedNow.Add(-48 * time.Hour), fixedNow.Add(-24 * time.Hour), fixedNow}
	for _, at := range days {
		at := at
		e.sales.now = func() time.Time { return at }
		e.sell(t, emp, c, "1", "1")
	}

	from, to := days[0], days[1]
	got, err := e.sales.List(ctx, emp, domain.DateRange{From: &from, To: &to})
	if err != nil || len(got) != 2 {
		t.Fatalf("filtered = %d, %v; want both boundary sales", len(got), err)
	}
}

func TestCollectionsTypeAndPaymentMethod(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, _ := e.hire(t, "u-1", "")
	c := e.customer(t, emp, "Amal")

	transfer := "تحويل بنكي"
	if _, err := e.collections.Add(ctx, emp, &CollectionInput{CustomerID: c, CollectionType: "نقدي", Amount: decimal.NewFromInt(300), PaymentMethod: &transfer}); err != nil {
		t.Fatal(err)
	}
	cash := "cash"
	if _, err := e.collections.Add(ctx, emp, &CollectionInput{CustomerID: c, CollectionType: "gold", Amount: decimal.RequireFromString("2.5"), PaymentMethod: &cash}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.collections.Add(ctx, emp, &CollectionInput{CustomerID: c, CollectionType: "silver", Amount: decimal.NewFromInt(1)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad type err = %v", err)
	}
	if _, err := e.collections.Add(ctx, emp, &CollectionInput{CustomerID: c, CollectionType: "cash", Amount: decimal.Zero}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero amount err = %v", err)
	}
	if _, err := e.collections.Add(ctx, emp, &CollectionInput{CustomerID: c, CollectionType: "gold", Amount: decimal.RequireFromString("0.000001")}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("six decimal amount err = %v", err)
	}

	got, err := e.collections.List(ctx, emp, domain.DateRange{})
	if err != nil || len(got) != 2 {
		t.Fatalf("collections = %d, %v", len(got), err)
	}
	gold, cashCol := got[0], got[1]
	if gold.CollectionType != domain.CollectionGold || gold.PaymentMethod != nil {
		t.Errorf("gold collection = %+v", gold)
	}
	if cashCol.CollectionType != domain.CollectionCash || cashCol.PaymentMethod == nil || *cashCol.PaymentMethod != domain.PaymentBankTransfer {
		t.Errorf("cash collection = %+v", cashCol)
	}

	weekly, err := e.collections.Weekly(ctx, emp)
	if err != nil {
		t.Fatal(err)
	}
	if weekly.Count != 2 || !weekly.TotalGold.Equal(decimal.RequireFromString("2.5")) || !weekly.TotalCash.Equal(decimal.NewFromInt(300)) {
		t.Errorf("weekly = %+v", weekly)
	}
}

func TestEnrichmentUsesPlaceholders(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, empID := e.hire(t, "u-1", "")
	// a sale whose customer no longer resolves
	e.store.sales = append(e.store.sales, &domain.Sale{
		ID: 1, CustomerID: 42, EmployeeID: empID, Karat: domain.Karat18,
		Weight: decimal.NewFromInt(1), PricePerGram: decimal.NewFromInt(1), TotalAmount: decimal.NewFromInt(1),
		SaleDate: fixedNow,
	})

	got, err := e.sales.Export(ctx, emp)
	if err != nil || len(got) != 1 {
		t.Fatalf("export = %v, %v", got, err)
	}
	if got[0].CustomerName != aggregate.UnknownName || got[0].CustomerPhone != "" {
		t.Errorf("placeholders = %q/%q", got[0].CustomerName, got[0].CustomerPhone)
	}
}

func TestWeeklySalesBoundary(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, _ := e.hire(t, "u-1", "")
	c := e.customer(t, emp, "Amal")

	for _, at := range []time.Time{fixedNow.Add(-aggregate.Week), fixedNow.Add(-aggregate.Week - time.Millisecond)} {
		at := at
		e.sales.now = func() time.Time { return at }
		e.sell(t, emp, c, "1", "100")
	}
	e.sales.now = func() time.Time { return fixedNow }

	stats, err := e.sales.Weekly(ctx, emp)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 1 || stats.Karat21.Count != 1 {
		t.Fatalf("weekly = %+v, want only the sale exactly one week old", stats)
	}
}

func TestImportCustomersPartialSuccess(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	emp, _ := e.hire(t, "u-1", "")

	records := []CustomerInput{
		{Name: "Amal", Phone: "0100"},
		{Name: "NoPhone", Phone: ""},
		{Name: "Basma", Phone: "0101"},
		{Name: "", Phone: "0102"},
		{Name: "Camilia", Phone: "0103"},
	}
	res, err := e.customers.Import(ctx, emp, records)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Success != 3 || res.Failed != 2 || len(res.Errors) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if !strings.HasPrefix(res.Errors[0], "failed to add NoPhone:") {
		t.Errorf("error[0] = %q", res.Errors[0])
	}
	if !strings.HasPrefix(res.Errors[1], "failed to add row 4:") {
		t.Errorf("error[1] = %q", res.Errors[1])
	}
	if len(e.store.customers) != 3 {
		t.Errorf("stored customers = %d, want 3", len(e.store.customers))
	}

	if _, err := e.customers.Import(ctx, nil, records); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("anonymous import err = %v", err)
	}
}
