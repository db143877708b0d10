package aggregate

import (
	"math"
	"sort"
	"time"

	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Period is a closed reporting window
type Period struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// ResolvePeriod fills in the default window: the trailing 30 days ending now
func ResolvePeriod(r domain.DateRange, now time.Time) Period {
	p := Period{Start: now.Add(-DefaultReportWindow), End: now}
	if r.From != nil {
		p.Start = *r.From
	}
	if r.To != nil {
		p.End = *r.To
	}
	return p
}

func (p Period) contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// CollectionBreakdown splits collections by type
type CollectionBreakdown struct {
	Count int        `json:"count"`
	Gold  TypeTotals `json:"gold"`
	Cash  TypeTotals `json:"cash"`
}

// TopCustomer is one entry of the customer ranking
type TopCustomer struct {
	CustomerID  uint            `json:"customer_id"`
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PerformanceReport is the windowed activity report
type PerformanceReport struct {
	Period       Period              `json:"period"`
	Sales        SalesBreakdown      `json:"sales"`
	Collections  CollectionBreakdown `json:"collections"`
	TopCustomers []TopCustomer       `json:"top_customers"`
}

// Performance builds the report for the records dated inside period.
// names maps customer ids to display names.
func Performance(sales []*domain.Sale, collections []*domain.Collection, period Period, names map[uint]string) *PerformanceReport {
	report := &PerformanceReport{
		Period: period,
		Sales: breakdownSales(sales, func(s *domain.Sale) bool {
			return period.contains(s.SaleDate)
		}),
		TopCustomers: []TopCustomer{},
	}

	for _, c := range collections {
		if !period.contains(c.CollectionDate) {
			continue
		}
		report.Collections.Count++
		switch c.Type {
		case domain.CollectionGold:
			report.Collections.Gold.Count++
			report.Collections.Gold.TotalAmount = report.Collections.Gold.TotalAmount.Add(c.Amount)
		case domain.CollectionCash:
			report.Collections.Cash.Count++
			report.Collections.Cash.TotalAmount = report.Collections.Cash.TotalAmount.Add(c.Amount)
		}
	}

	perCustomer := make(map[uint]decimal.Decimal)
	for _, s := range sales {
		if period.contains(s.SaleDate) {
			perCustomer[s.CustomerID] = perCustomer[s.CustomerID].Add(s.TotalAmount)
		}
	}
	ranking := make([]TopCustomer, 0, len(perCustomer))
	for id, amount := range perCustomer {
		name, ok := names[id]
		if !ok {
			name = UnknownName
		}
		ranking = append(ranking, TopCustomer{CustomerID: id, Name: name, TotalAmount: amount})
	}
	// Equal amounts rank by ascending customer id so the order is reproducible.
	sort.Slice(ranking, func(i, j int) bool {
		if c := ranking[i].TotalAmount.Cmp(ranking[j].TotalAmount); c != 0 {
			return c > 0
		}
		return ranking[i].CustomerID < ranking[j].CustomerID
	})
	if len(ranking) > TopCustomersLimit {
		ranking = ranking[:TopCustomersLimit]
	}
	report.TopCustomers = append(report.TopCustomers, ranking...)

	return report
}

// OverdueCustomer is a customer whose sales exceed their cash payments
type OverdueCustomer struct {
	Customer             *domain.Customer `json:"customer"`
	TotalSales           decimal.Decimal  `json:"total_sales"`
	TotalCashCollected   decimal.Decimal  `json:"total_cash_collected"`
	RemainingDebt        decimal.Decimal  `json:"remaining_debt"`
	LastPaymentDate      *time.Time       `json:"last_payment_date"`
	DaysSinceLastPayment *int             `json:"days_since_last_payment"`
}

// Overdue computes the outstanding debt of every customer. Debt is in
// currency, so only cash collections reduce it; the last payment date
// considers collections of any type. Only customers with positive debt are
// returned, largest debt first.
func Overdue(customers []*domain.Customer, sales []*domain.Sale, collections []*domain.Collection, now time.Time) []OverdueCustomer {
	salesBy := make(map[uint]decimal.Decimal)
	for _, s := range sales {
		salesBy[s.CustomerID] = salesBy[s.CustomerID].Add(s.TotalAmount)
	}
	cashBy := make(map[uint]decimal.Decimal)
	lastBy := make(map[uint]time.Time)
	for _, c := range collections {
		if c.Type == domain.CollectionCash {
			cashBy[c.CustomerID] = cashBy[c.CustomerID].Add(c.Amount)
		}
		if last, ok := lastBy[c.CustomerID]; !ok || c.CollectionDate.After(last) {
			lastBy[c.CustomerID] = c.CollectionDate
		}
	}

	result := make([]OverdueCustomer, 0)
	for _, cust := range customers {
		entry := OverdueCustomer{
			Customer:           cust,
			TotalSales:         salesBy[cust.ID],
			TotalCashCollected: cashBy[cust.ID],
		}
		entry.RemainingDebt = entry.TotalSales.Sub(entry.TotalCashCollected)
		if !entry.RemainingDebt.IsPositive() {
			continue
		}
		if last, ok := lastBy[cust.ID]; ok {
			days := int(now.Sub(last) / Day)
			entry.LastPaymentDate = &last
			entry.DaysSinceLastPayment = &days
		}
		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RemainingDebt.GreaterThan(result[j].RemainingDebt)
	})
	return result
}

// DailyBucket is the sales activity of one calendar day
type DailyBucket struct {
	Date   string          `json:"date"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Weight decimal.Decimal `json:"weight"`
}

// DateLayout is the bucket key format; lexicographic order is chronological
const DateLayout = "2006-01-02"

// DailySince is the start of a days×24h window ending at now. Windows too
// long for a time.Duration start at the zero time.
func DailySince(now time.Time, days int) time.Time {
	if int64(days) > math.MaxInt64/int64(Day) {
		return time.Time{}
	}
	return now.Add(-time.Duration(days) * Day)
}

// DailySales groups the sales of the last days×24h by calendar day in loc,
// oldest day first.
func DailySales(sales []*domain.Sale, days int, now time.Time, loc *time.Location) []DailyBucket {
	since := DailySince(now, days)

	buckets := make(map[string]*DailyBucket)
	for _, s := range sales {
		if s.SaleDate.Before(since) {
			continue
		}
		key := s.SaleDate.In(loc).Format(DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &DailyBucket{Date: key}
			buckets[key] = b
		}
		b.Count++
		b.Amount = b.Amount.Add(s.TotalAmount)
		b.Weight = b.Weight.Add(s.Weight)
	}

	result := make([]DailyBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
