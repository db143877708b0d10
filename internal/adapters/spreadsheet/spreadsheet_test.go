package spreadsheet

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"goldtrack/internal/core/aggregate"
	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// sheetBytes builds a single-sheet workbook from rows
func sheetBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestReadCustomersArabicHeaders(t *testing.T) {
	buf := sheetBytes(t, [][]interface{}{
		{"ملاحظات", "الهاتف", "الاسم", "العنوان"},
		{"vip", "0100", "Amal", "Cairo"},
		{},
		{"", "", "", ""},
		{"", "0101", "", ""},
	})

	got, err := ReadCustomers(buf)
	if err != nil {
		t.Fatalf("ReadCustomers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2 (blank rows skipped, incomplete row kept)", len(got))
	}
	first := got[0]
	if first.Name != "Amal" || first.Phone != "0100" {
		t.Errorf("first = %+v", first)
	}
	if first.Notes == nil || *first.Notes != "vip" || first.Address == nil || *first.Address != "Cairo" {
		t.Errorf("optional fields = %v / %v", first.Notes, first.Address)
	}
	if first.Email != nil {
		t.Errorf("email = %q, want nil", *first.Email)
	}
	if got[1].Name != "" || got[1].Phone != "0101" {
		t.Errorf("incomplete row = %+v", got[1])
	}
}

func TestReadCustomersEnglishHeadersAnyCase(t *testing.T) {
	buf := sheetBytes(t, [][]interface{}{
		{},
		{"NAME", " Phone ", "email"},
		{"Basma", "0200", "b@example.com"},
	})

	got, err := ReadCustomers(buf)
	if err != nil {
		t.Fatalf("ReadCustomers: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Basma" || got[0].Email == nil || *got[0].Email != "b@example.com" {
		t.Fatalf("got %+v", got)
	}
}

func TestReadCustomersMissingColumns(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{"no phone", [][]interface{}{{"name", "email"}, {"a", "b"}}},
		{"no name", [][]interface{}{{"phone"}, {"1"}}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCustomers(sheetBytes(t, tt.rows))
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestReadCustomersRejectsNonWorkbook(t *testing.T) {
	_, err := ReadCustomers(bytes.NewBufferString("name,phone\nx,y\n"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestTemplateReadsBack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	got, err := ReadCustomers(&buf)
	if err != nil {
		t.Fatalf("ReadCustomers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("template rows = %d, want 2", len(got))
	}
	if got[1].Email != nil {
		t.Errorf("second example should have no email")
	}
}

func TestWriteWorkbook(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	// 23:30 UTC is already the next day in Cairo
	at := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)

	e := &Export{
		Sales: []SaleRow{{
			Date: at, CustomerName: "Amal", CustomerPhone: "0100", ProductName: "ring", Karat: "21",
			Weight: decimal.RequireFromString("2.5"), PricePerGram: decimal.NewFromInt(100), TotalAmount: decimal.NewFromInt(250),
		}},
		Collections: []CollectionRow{{Date: at, CustomerName: "Amal", Type: "نقدي", Amount: decimal.NewFromInt(50), PaymentMethod: "-"}},
		Customers:   []CustomerRow{{Name: "Amal", Phone: "0100", Address: "-", CreatedAt: at}},
		Summary: aggregate.Summary{
			TotalSalesAmount: decimal.NewFromInt(250),
			SalesCount:       1,
			CollectionsCount: 1,
			CustomersCount:   1,
		},
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, e, cairo); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []string{SalesSheet, CollectionsSheet, CustomersSheet, SummarySheet}
	sheets := f.GetSheetList()
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v", sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], want[i])
		}
	}

	date, err := f.GetCellValue(SalesSheet, "A2")
	if err != nil {
		t.Fatal(err)
	}
	if date != "2026-03-15" {
		t.Errorf("sale date = %q, want local 2026-03-15", date)
	}
	total, err := f.GetCellValue(SalesSheet, "H2")
	if err != nil {
		t.Fatal(err)
	}
	if total != "250" {
		t.Errorf("total = %q", total)
	}
	count, err := f.GetCellValue(SummarySheet, "B4")
	if err != nil {
		t.Fatal(err)
	}
	if count != "1" {
		t.Errorf("sales count = %q", count)
	}
}
