package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"goldtrack/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// CustomerRecord is one customer read from an import sheet
type CustomerRecord struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
	Notes   *string
}

type column int

const (
	colName column = iota
	colPhone
	colEmail
	colAddress
	colNotes
)

// headerAliases maps a normalized header cell to its column. Arabic labels
// come first; English names are accepted in any case.
var headerAliases = map[string]column{
	"الاسم":             colName,
	"اسم العميل":        colName,
	"name":              colName,
	"الهاتف":            colPhone,
	"رقم الهاتف":        colPhone,
	"phone":             colPhone,
	"البريد الإلكتروني": colEmail,
	"email":             colEmail,
	"العنوان":           colAddress,
	"address":           colAddress,
	"ملاحظات":           colNotes,
	"notes":             colNotes,
}

// templateRows are the example customers of the import template
var templateRows = [][]interface{}{
	{"محمد أحمد", "0501234567", "mohamed@example.com", "الرياض، حي النخيل", "عميل مميز"},
	{"فاطمة علي", "0559876543", "", "جدة، حي الروضة", ""},
}

// TemplateSheet is the sheet name of the import template
const TemplateSheet = "Customers"

// ReadCustomers reads customer records from the first sheet of an xlsx
// workbook. The first non-blank row is the header. Fully blank rows are
// skipped; every other row is returned as-is, even when name or phone is
// empty, so the caller can report it.
func ReadCustomers(r io.Reader) ([]CustomerRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid xlsx workbook", domain.ErrValidation)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrValidation)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	headerAt := -1
	for i, row := range rows {
		if !blank(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("%w: sheet is empty", domain.ErrValidation)
	}

	index := make(map[column]int)
	for i, cell := range rows[headerAt] {
		key := strings.ToLower(strings.TrimSpace(cell))
		if col, ok := headerAliases[key]; ok {
			if _, seen := index[col]; !seen {
				index[col] = i
			}
		}
	}
	if _, ok := index[colName]; !ok {
		return nil, fmt.Errorf("%w: missing name column", domain.ErrValidation)
	}
	if _, ok := index[colPhone]; !ok {
		return nil, fmt.Errorf("%w: missing phone column", domain.ErrValidation)
	}

	records := make([]CustomerRecord, 0, len(rows)-headerAt-1)
	for _, row := range rows[headerAt+1:] {
		if blank(row) {
			continue
		}
		get := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		records = append(records, CustomerRecord{
			Name:    get(colName),
			Phone:   get(colPhone),
			Email:   optional(get(colEmail)),
			Address: optional(get(colAddress)),
			Notes:   optional(get(colNotes)),
		})
	}
	return records, nil
}

// WriteTemplate writes an import template with the header row and two
// example customers
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	b, err := newBook(f)
	if err != nil {
		return err
	}
	header := []interface{}{"الاسم", "الهاتف", "البريد الإلكتروني", "العنوان", "ملاحظات"}
	if err := b.sheet(TemplateSheet, header, len(templateRows), func(i int) []interface{} {
		return templateRows[i]
	}); err != nil {
		return err
	}
	return f.Write(w)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
