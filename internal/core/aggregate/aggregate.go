// Package aggregate turns ledger snapshots into statistics and reports.
// Every function here is pure: callers fetch role-scoped records and pass
// them in together with the reference time.
package aggregate

import (
	"time"

	"goldtrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

const (
	// Day is the bucket length used by every window computation
	Day = 24 * time.Hour
	// Week is the trailing window of the weekly stats
	Week = 7 * Day
	// DefaultReportWindow is used by Performance when no start date is given
	DefaultReportWindow = 30 * Day
	// TopCustomersLimit caps the ranking in the performance report
	TopCustomersLimit = 5
	// UnknownName is shown when a reference cannot be resolved
	UnknownName = "unknown"
)

// Totals is a count plus summed amount and weight
type Totals struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalWeight decimal.Decimal `json:"total_weight"`
}

func (t *Totals) addSale(s *domain.Sale) {
	t.Count++
	t.TotalAmount = t.TotalAmount.Add(s.TotalAmount)
	t.TotalWeight = t.TotalWeight.Add(s.Weight)
}

// TypeTotals is a count plus summed collection amount
type TypeTotals struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SalesBreakdown splits sale totals by karat
type SalesBreakdown struct {
	Totals
	Karat18 Totals `json:"karat18"`
	Karat21 Totals `json:"karat21"`
}

func breakdownSales(sales []*domain.Sale, keep func(*domain.Sale) bool) SalesBreakdown {
	var b SalesBreakdown
	for _, s := range sales {
		if !keep(s) {
			continue
		}
		b.addSale(s)
		switch s.Karat {
		case domain.Karat18:
			b.Karat18.addSale(s)
		case domain.Karat21:
			b.Karat21.addSale(s)
		}
	}
	return b
}

// WeeklySales summarizes sales dated within the trailing week of now.
// A sale exactly one week old is included.
func WeeklySales(sales []*domain.Sale, now time.Time) SalesBreakdown {
	since := now.Add(-Week)
	return breakdownSales(sales, func(s *domain.Sale) bool {
		return !s.SaleDate.Before(since)
	})
}

// CollectionStats is the weekly collections summary
type CollectionStats struct {
	Count     int             `json:"count"`
	GoldCount int             `json:"gold_count"`
	CashCount int             `json:"cash_count"`
	TotalGold decimal.Decimal `json:"total_gold"`
	TotalCash decimal.Decimal `json:"total_cash"`
}

// WeeklyCollections summarizes collections dated within the trailing week of now
func WeeklyCollections(collections []*domain.Collection, now time.Time) CollectionStats {
	since := now.Add(-Week)

	var stats CollectionStats
	for _, c := range collections {
		if c.CollectionDate.Before(since) {
			continue
		}
		stats.Count++
		switch c.Type {
		case domain.CollectionGold:
			stats.GoldCount++
			stats.TotalGold = stats.TotalGold.Add(c.Amount)
		case domain.CollectionCash:
			stats.CashCount++
			stats.TotalCash = stats.TotalCash.Add(c.Amount)
		}
	}
	return stats
}

// EmployeeStats is the all-time activity of one employee
type EmployeeStats struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalWeight      decimal.Decimal `json:"total_weight"`
	TotalCollections decimal.Decimal `json:"total_collections"`
	CustomersCount   int             `json:"customers_count"`
	SalesCount       int             `json:"sales_count"`
	CollectionsCount int             `json:"collections_count"`
}

// EmployeeTotals sums every record passed in. Collection amounts are added
// regardless of type, matching how the shop has always read this figure.
func EmployeeTotals(sales []*domain.Sale, collections []*domain.Collection, customersCount int) EmployeeStats {
	stats := EmployeeStats{
		CustomersCount:   customersCount,
		SalesCount:       len(sales),
		CollectionsCount: len(collections),
	}
	for _, s := range sales {
		stats.TotalSales = stats.TotalSales.Add(s.TotalAmount)
		stats.TotalWeight = stats.TotalWeight.Add(s.Weight)
	}
	for _, c := range collections {
		stats.TotalCollections = stats.TotalCollections.Add(c.Amount)
	}
	return stats
}

// Summary is the derived sheet of the workbook export
type Summary struct {
	TotalSalesAmount   decimal.Decimal `json:"total_sales_amount"`
	TotalSalesWeight   decimal.Decimal `json:"total_sales_weight"`
	SalesCount         int             `json:"sales_count"`
	TotalGoldCollected decimal.Decimal `json:"total_gold_collected"`
	TotalCashCollected decimal.Decimal `json:"total_cash_collected"`
	CollectionsCount   int             `json:"collections_count"`
	CustomersCount     int             `json:"customers_count"`
}

// ExportSummary totals an unfiltered snapshot
func ExportSummary(sales []*domain.Sale, collections []*domain.Collection, customersCount int) Summary {
	sum := Summary{
		SalesCount:       len(sales),
		CollectionsCount: len(collections),
		CustomersCount:   customersCount,
	}
	for _, s := range sales {
		sum.TotalSalesAmount = sum.TotalSalesAmount.Add(s.TotalAmount)
		sum.TotalSalesWeight = sum.TotalSalesWeight.Add(s.Weight)
	}
	for _, c := range collections {
		switch c.Type {
		case domain.CollectionGold:
			sum.TotalGoldCollected = sum.TotalGoldCollected.Add(c.Amount)
		case domain.CollectionCash:
			sum.TotalCashCollected = sum.TotalCashCollected.Add(c.Amount)
		}
	}
	return sum
}
