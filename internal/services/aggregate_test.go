// internal/services/aggregate_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/creativechain/creativechain-backend/internal/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func TestResolveRecordsDropsDanglingReferences(t *testing.T) {
	workID := uuid.New()
	offeringID := uuid.New()
	purchasedAt := mustTime(t, "2025-10-01")

	offerings := map[uuid.UUID]models.LicenseOffering{
		offeringID: {BaseModel: models.BaseModel{ID: offeringID}, WorkID: workID, LicenseType: models.LicenseTypeStandard},
	}
	works := map[uuid.UUID]models.CreativeWork{
		workID: {BaseModel: models.BaseModel{ID: workID}, Title: "Sunset", Category: "photography"},
	}

	orders := []models.Order{
		{OfferingID: offeringID, WorkID: workID, Amount: 100, PurchasedAt: &purchasedAt},
		// offering deleted after the sale
		{OfferingID: uuid.New(), WorkID: workID, Amount: 500, PurchasedAt: &purchasedAt},
		// work no longer resolvable
		{OfferingID: offeringID, WorkID: uuid.New(), Amount: 900, PurchasedAt: &purchasedAt},
	}

	records := resolveRecords(orders, offerings, works)

	assert.Len(t, records, 1)
	assert.Equal(t, 100.0, sumRevenue(records))
	assert.Equal(t, "Sunset", records[0].WorkTitle)
}

func TestResolveRecordsFallsBackToCreatedAt(t *testing.T) {
	workID := uuid.New()
	offeringID := uuid.New()
	createdAt := mustTime(t, "2025-09-15")

	offerings := map[uuid.UUID]models.LicenseOffering{
		offeringID: {BaseModel: models.BaseModel{ID: offeringID}, WorkID: workID},
	}
	works := map[uuid.UUID]models.CreativeWork{
		workID: {BaseModel: models.BaseModel{ID: workID}},
	}

	orders := []models.Order{
		{BaseModel: models.BaseModel{CreatedAt: createdAt}, OfferingID: offeringID, WorkID: workID, Amount: 10},
	}

	records := resolveRecords(orders, offerings, works)

	assert.Len(t, records, 1)
	assert.Equal(t, createdAt, records[0].PurchasedAt)
}

func TestRevenueAndSalesFolds(t *testing.T) {
	day := mustTime(t, "2025-10-01")
	records := []saleRecord{
		{WorkID: uuid.New(), LicenseType: "standard", Amount: 50000, PurchasedAt: day},
		{WorkID: uuid.New(), LicenseType: "commercial", Amount: 120000, PurchasedAt: day},
	}

	assert.Equal(t, 170000.0, sumRevenue(records))

	byType := revenueByLicenseType(records)
	assert.Equal(t, 50000.0, byType["standard"])
	assert.Equal(t, 120000.0, byType["commercial"])

	byDay := salesByDay(records)
	assert.Equal(t, int64(2), byDay["2025-10-01"])
}

func TestFoldsAreIdempotent(t *testing.T) {
	day := mustTime(t, "2025-10-01")
	records := []saleRecord{
		{WorkID: uuid.New(), WorkTitle: "A", LicenseType: "standard", Amount: 50, PurchasedAt: day},
		{WorkID: uuid.New(), WorkTitle: "B", LicenseType: "exclusive", Amount: 200, PurchasedAt: day.AddDate(0, 0, 3)},
	}

	first := topWorksByRevenue(records, topWorksLimit)
	second := topWorksByRevenue(records, topWorksLimit)
	assert.Equal(t, first, second)

	assert.Equal(t, sumRevenue(records), sumRevenue(records))
	assert.Equal(t, revenueByLicenseType(records), revenueByLicenseType(records))
	assert.Equal(t, salesByDay(records), salesByDay(records))
}

func TestTopWorksByRevenueOrderingAndTruncation(t *testing.T) {
	day := mustTime(t, "2025-10-01")
	lowID := uuid.New()
	highID := uuid.New()
	tieID := uuid.New()

	records := []saleRecord{
		{WorkID: lowID, WorkTitle: "Beach", Amount: 40, PurchasedAt: day},
		{WorkID: highID, WorkTitle: "Canyon", Amount: 60, PurchasedAt: day},
		{WorkID: highID, WorkTitle: "Canyon", Amount: 60, PurchasedAt: day},
		{WorkID: tieID, WorkTitle: "Alps", Amount: 40, PurchasedAt: day},
	}

	top := topWorksByRevenue(records, 10)
	assert.Len(t, top, 3)
	assert.Equal(t, "Canyon", top[0].Title)
	assert.Equal(t, 120.0, top[0].Revenue)
	assert.Equal(t, int64(2), top[0].Count)
	// revenue tie breaks on title
	assert.Equal(t, "Alps", top[1].Title)
	assert.Equal(t, "Beach", top[2].Title)

	truncated := topWorksByRevenue(records, 2)
	assert.Len(t, truncated, 2)
}

func TestDailySeriesIsDenseAndInclusive(t *testing.T) {
	from := mustTime(t, "2025-10-01")
	to := mustTime(t, "2025-10-30")

	series := dailySeries(from, to, nil)

	assert.Len(t, series, 30)
	assert.Equal(t, "2025-10-01", series[0].Date)
	assert.Equal(t, "2025-10-30", series[len(series)-1].Date)
	for _, entry := range series {
		assert.Equal(t, int64(0), entry.Sales)
		assert.Equal(t, 0.0, entry.Revenue)
	}
}

func TestDailySeriesFoldsActualsIntoWindow(t *testing.T) {
	from := mustTime(t, "2025-10-01")
	to := mustTime(t, "2025-10-07")

	records := []saleRecord{
		{Amount: 25, PurchasedAt: mustTime(t, "2025-10-03")},
		{Amount: 75, PurchasedAt: mustTime(t, "2025-10-03")},
		// outside the window, must not surface anywhere
		{Amount: 999, PurchasedAt: mustTime(t, "2025-11-01")},
	}

	series := dailySeries(from, to, records)

	assert.Len(t, series, 7)
	assert.Equal(t, int64(2), series[2].Sales)
	assert.Equal(t, 100.0, series[2].Revenue)

	var total float64
	for _, entry := range series {
		total += entry.Revenue
	}
	assert.Equal(t, 100.0, total)
}

func TestMonthlySeriesIsDenseAcrossYearBoundary(t *testing.T) {
	from := mustTime(t, "2024-11-15")
	to := mustTime(t, "2025-02-20")

	records := []saleRecord{
		{Amount: 30, PurchasedAt: mustTime(t, "2024-12-25")},
	}

	series := monthlySeries(from, to, records)

	assert.Len(t, series, 4)
	assert.Equal(t, "Nov 2024", series[0].Month)
	assert.Equal(t, "Dec 2024", series[1].Month)
	assert.Equal(t, "Jan 2025", series[2].Month)
	assert.Equal(t, "Feb 2025", series[3].Month)
	assert.Equal(t, 30.0, series[1].Revenue)
	assert.Equal(t, 0.0, series[0].Revenue)
}

func TestFilterCategory(t *testing.T) {
	records := []saleRecord{
		{Category: "music", Amount: 1},
		{Category: "photography", Amount: 2},
	}

	assert.Len(t, filterCategory(records, ""), 2)
	assert.Len(t, filterCategory(records, "all"), 2)

	filtered := filterCategory(records, "music")
	assert.Len(t, filtered, 1)
	assert.Equal(t, 1.0, filtered[0].Amount)
}

func TestPeriodWindow(t *testing.T) {
	now := mustTime(t, "2025-10-31")

	from, to := periodWindow("day", now)
	assert.Equal(t, now.AddDate(0, 0, -1), from)
	assert.Equal(t, now, to)

	from, _ = periodWindow("week", now)
	assert.Equal(t, now.AddDate(0, 0, -7), from)

	from, _ = periodWindow("year", now)
	assert.Equal(t, now.AddDate(-1, 0, 0), from)

	// unknown tokens fall back to the month window
	from, _ = periodWindow("fortnight", now)
	assert.Equal(t, now.AddDate(0, 0, -30), from)
}

func TestBreakdownBySortsByRevenue(t *testing.T) {
	day := mustTime(t, "2025-10-01")
	records := []saleRecord{
		{Category: "music", Amount: 10, PurchasedAt: day},
		{Category: "photography", Amount: 50, PurchasedAt: day},
		{Category: "music", Amount: 15, PurchasedAt: day},
	}

	entries := breakdownBy(records, func(r saleRecord) string { return r.Category })

	assert.Len(t, entries, 2)
	assert.Equal(t, "photography", entries[0].Key)
	assert.Equal(t, 50.0, entries[0].Revenue)
	assert.Equal(t, "music", entries[1].Key)
	assert.Equal(t, int64(2), entries[1].Sales)
	assert.Equal(t, 25.0, entries[1].Revenue)
}
