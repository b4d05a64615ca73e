// internal/services/aggregate.go
package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/creativechain/creativechain-backend/internal/models"
)

const (
	dayKeyFormat   = "2006-01-02"
	monthKeyFormat = "Jan 2006"
	topWorksLimit  = 10
)

// saleRecord is one purchase row with its offering and work already resolved.
// Everything downstream folds over these, so the derived views are a pure
// function of the record list.
type saleRecord struct {
	WorkID      uuid.UUID
	WorkTitle   string
	Category    string
	LicenseType string
	Amount      float64
	PurchasedAt time.Time
}

type WorkRevenue struct {
	WorkID  uuid.UUID `json:"workId"`
	Title   string    `json:"title"`
	Revenue float64   `json:"revenue"`
	Count   int64     `json:"count"`
}

type CreatorEarnings struct {
	TotalRevenue  float64            `json:"totalRevenue"`
	TotalSales    int64              `json:"totalSales"`
	RevenueByType map[string]float64 `json:"revenueByType"`
	SalesByDay    map[string]int64   `json:"salesByDay"`
	TopWorks      []WorkRevenue      `json:"topWorks"`
}

type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type DailyActivity struct {
	Date    string  `json:"date"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type ActivitySummary struct {
	TotalSales   int64   `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
	AvgSaleValue float64 `json:"avgSaleValue"`
}

type BreakdownEntry struct {
	Key     string  `json:"key"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type SalesActivity struct {
	DailyActivity        []DailyActivity  `json:"dailyActivity"`
	Summary              ActivitySummary  `json:"summary"`
	CategoryBreakdown    []BreakdownEntry `json:"categoryBreakdown"`
	LicenseTypeBreakdown []BreakdownEntry `json:"licenseTypeBreakdown"`
}

type WorkPerformance struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	TotalRevenue   float64   `json:"totalRevenue"`
	TotalSales     int64     `json:"totalSales"`
	AvgPrice       float64   `json:"avgPrice"`
	ConversionRate float64   `json:"conversionRate"`
	RecentSales    int64     `json:"recentSales"`
	CreatedAt      time.Time `json:"createdAt"`
}

// periodWindow maps a period token onto a half-open [from, to) window ending
// now. Unknown tokens fall back to month.
func periodWindow(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1), now
	case "week":
		return now.AddDate(0, 0, -7), now
	case "year":
		return now.AddDate(-1, 0, 0), now
	default:
		return now.AddDate(0, 0, -30), now
	}
}

// resolveRecords joins orders against their offerings and works. A row whose
// offering or work is missing is dropped: the store is not the record of
// truth here and dangling references are expected, e.g. an offering deleted
// after a sale.
func resolveRecords(orders []models.Order, offerings map[uuid.UUID]models.LicenseOffering, works map[uuid.UUID]models.CreativeWork) []saleRecord {
	records := make([]saleRecord, 0, len(orders))

	for _, order := range orders {
		offering, ok := offerings[order.OfferingID]
		if !ok {
			continue
		}
		work, ok := works[order.WorkID]
		if !ok {
			continue
		}

		purchasedAt := order.CreatedAt
		if order.PurchasedAt != nil {
			purchasedAt = *order.PurchasedAt
		}

		records = append(records, saleRecord{
			WorkID:      work.ID,
			WorkTitle:   work.Title,
			Category:    work.Category,
			LicenseType: string(offering.LicenseType),
			Amount:      order.Amount,
			PurchasedAt: purchasedAt,
		})
	}

	return records
}

// filterCategory keeps records whose work category matches. "all" and the
// empty string mean no filter.
func filterCategory(records []saleRecord, category string) []saleRecord {
	if category == "" || category == "all" {
		return records
	}

	filtered := make([]saleRecord, 0, len(records))
	for _, r := range records {
		if r.Category == category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func sumRevenue(records []saleRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

func revenueByLicenseType(records []saleRecord) map[string]float64 {
	byType := make(map[string]float64)
	for _, r := range records {
		byType[r.LicenseType] += r.Amount
	}
	return byType
}

func salesByDay(records []saleRecord) map[string]int64 {
	byDay := make(map[string]int64)
	for _, r := range records {
		byDay[r.PurchasedAt.Format(dayKeyFormat)]++
	}
	return byDay
}

func topWorksByRevenue(records []saleRecord, n int) []WorkRevenue {
	byWork := make(map[uuid.UUID]*WorkRevenue)
	for _, r := range records {
		entry, ok := byWork[r.WorkID]
		if !ok {
			entry = &WorkRevenue{WorkID: r.WorkID, Title: r.WorkTitle}
			byWork[r.WorkID] = entry
		}
		entry.Revenue += r.Amount
		entry.Count++
	}

	works := make([]WorkRevenue, 0, len(byWork))
	for _, entry := range byWork {
		works = append(works, *entry)
	}

	sort.Slice(works, func(i, j int) bool {
		if works[i].Revenue != works[j].Revenue {
			return works[i].Revenue > works[j].Revenue
		}
		return works[i].Title < works[j].Title
	})

	if len(works) > n {
		works = works[:n]
	}
	return works
}

// dailySeries folds records into one entry per calendar day in [from, to],
// inclusive of both endpoints. Every day is pre-populated to zero before
// actuals are folded in, so the series is dense even with no sales.
func dailySeries(from, to time.Time, records []saleRecord) []DailyActivity {
	from = truncateDay(from)
	to = truncateDay(to)

	index := make(map[string]int)
	series := make([]DailyActivity, 0)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayKeyFormat)
		index[key] = len(series)
		series = append(series, DailyActivity{Date: key})
	}

	for _, r := range records {
		key := r.PurchasedAt.Format(dayKeyFormat)
		if i, ok := index[key]; ok {
			series[i].Sales++
			series[i].Revenue += r.Amount
		}
	}

	return series
}

// monthlySeries folds records into one entry per calendar month in [from, to],
// inclusive of both endpoint months, pre-populated to zero.
func monthlySeries(from, to time.Time, records []saleRecord) []MonthRevenue {
	from = truncateMonth(from)
	to = truncateMonth(to)

	index := make(map[string]int)
	series := make([]MonthRevenue, 0)
	for month := from; !month.After(to); month = month.AddDate(0, 1, 0) {
		key := month.Format(monthKeyFormat)
		index[key] = len(series)
		series = append(series, MonthRevenue{Month: key})
	}

	for _, r := range records {
		key := r.PurchasedAt.Format(monthKeyFormat)
		if i, ok := index[key]; ok {
			series[i].Revenue += r.Amount
		}
	}

	return series
}

func breakdownBy(records []saleRecord, key func(saleRecord) string) []BreakdownEntry {
	byKey := make(map[string]*BreakdownEntry)
	for _, r := range records {
		k := key(r)
		entry, ok := byKey[k]
		if !ok {
			entry = &BreakdownEntry{Key: k}
			byKey[k] = entry
		}
		entry.Sales++
		entry.Revenue += r.Amount
	}

	entries := make([]BreakdownEntry, 0, len(byKey))
	for _, entry := range byKey {
		entries = append(entries, *entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Revenue != entries[j].Revenue {
			return entries[i].Revenue > entries[j].Revenue
		}
		return entries[i].Key < entries[j].Key
	})

	return entries
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
