// Package spreadsheet reads and writes the shop's xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"goldtrack/internal/core/aggregate"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the export workbook
const (
	SalesSheet       = "Sales"
	CollectionsSheet = "Collections"
	CustomersSheet   = "Customers"
	SummarySheet     = "Summary"
)

// DateLayout renders exported dates
const DateLayout = "2006-01-02"

// SaleRow is one line of the Sales sheet
type SaleRow struct {
	Date          time.Time
	CustomerName  string
	CustomerPhone string
	ProductName   string
	Karat         string
	Weight        decimal.Decimal
	PricePerGram  decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
}

// CollectionRow is one line of the Collections sheet
type CollectionRow struct {
	Date          time.Time
	CustomerName  string
	CustomerPhone string
	Type          string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

// CustomerRow is one line of the Customers sheet
type CustomerRow struct {
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	Notes     string
}

// Export is everything written to the export workbook
type Export struct {
	Sales       []SaleRow
	Collections []CollectionRow
	Customers   []CustomerRow
	Summary     aggregate.Summary
}

var (
	salesHeader = []interface{}{
		"التاريخ", "اسم العميل", "رقم الهاتف", "اسم المنتج", "العيار",
		"الوزن (جرام)", "السعر للجرام", "المبلغ الإجمالي", "ملاحظات",
	}
	collectionsHeader = []interface{}{
		"التاريخ", "اسم العميل", "رقم الهاتف", "نوع التحصيل",
		"المبلغ/الوزن", "طريقة الدفع", "ملاحظات",
	}
	customersHeader = []interface{}{
		"اسم العميل", "رقم الهاتف", "العنوان", "تاريخ الإضافة", "ملاحظات",
	}
	summaryHeader = []interface{}{"البيان", "القيمة"}
)

// WriteWorkbook writes the export workbook to w. Dates are rendered in loc.
func WriteWorkbook(w io.Writer, e *Export, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	b, err := newBook(f)
	if err != nil {
		return err
	}

	if err := b.sheet(SalesSheet, salesHeader, len(e.Sales), func(i int) []interface{} {
		s := e.Sales[i]
		return []interface{}{
			s.Date.In(loc).Format(DateLayout), s.CustomerName, s.CustomerPhone, s.ProductName, s.Karat,
			number(s.Weight), number(s.PricePerGram), number(s.TotalAmount), s.Notes,
		}
	}); err != nil {
		return err
	}

	if err := b.sheet(CollectionsSheet, collectionsHeader, len(e.Collections), func(i int) []interface{} {
		c := e.Collections[i]
		return []interface{}{
			c.Date.In(loc).Format(DateLayout), c.CustomerName, c.CustomerPhone, c.Type,
			number(c.Amount), c.PaymentMethod, c.Notes,
		}
	}); err != nil {
		return err
	}

	if err := b.sheet(CustomersSheet, customersHeader, len(e.Customers), func(i int) []interface{} {
		c := e.Customers[i]
		return []interface{}{c.Name, c.Phone, c.Address, c.CreatedAt.In(loc).Format(DateLayout), c.Notes}
	}); err != nil {
		return err
	}

	sum := e.Summary
	summary := [][]interface{}{
		{"إجمالي المبيعات", number(sum.TotalSalesAmount)},
		{"إجمالي الوزن المباع (جرام)", number(sum.TotalSalesWeight)},
		{"عدد المبيعات", sum.SalesCount},
		{"تحصيلات الذهب (جرام)", number(sum.TotalGoldCollected)},
		{"التحصيلات النقدية", number(sum.TotalCashCollected)},
		{"عدد التحصيلات", sum.CollectionsCount},
		{"عدد العملاء", sum.CustomersCount},
	}
	if err := b.sheet(SummarySheet, summaryHeader, len(summary), func(i int) []interface{} {
		return summary[i]
	}); err != nil {
		return err
	}

	return f.Write(w)
}

// book appends right-to-left sheets to a file, reusing its default sheet first
type book struct {
	f      *excelize.File
	first  bool
	header int
}

func newBook(f *excelize.File) (*book, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F2D98C"}},
	})
	if err != nil {
		return nil, err
	}
	return &book{f: f, first: true, header: header}, nil
}

func (b *book) sheet(name string, header []interface{}, n int, row func(int) []interface{}) error {
	if b.first {
		if err := b.f.SetSheetName(b.f.GetSheetName(0), name); err != nil {
			return err
		}
		b.first = false
	} else if _, err := b.f.NewSheet(name); err != nil {
		return err
	}

	rtl := true
	if err := b.f.SetSheetView(name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return err
	}

	if err := b.f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(name, "A1", last, b.header); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := b.f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+2, err)
		}
	}
	return nil
}

// number converts a decimal into a numeric cell value
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
