// internal/services/analytics_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/creativechain/creativechain-backend/internal/models"
	"github.com/creativechain/creativechain-backend/internal/utils"
)

// AnalyticsService computes creator-scoped earnings views. Its declared
// contract is that store failures never propagate: every method logs the
// failure and returns the zeroed aggregate shape so the dashboard keeps
// rendering.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// GetCreatorEarnings returns revenue and sales for the creator's own works
// within the period window, optionally filtered by work category.
func (s *AnalyticsService) GetCreatorEarnings(creatorID uuid.UUID, period, category string) *CreatorEarnings {
	from, to := periodWindow(period, time.Now())

	records, err := s.fetchCreatorSales(creatorID, from, to)
	if err != nil {
		logrus.WithError(err).WithField("creator_id", creatorID).
			Error("Failed to fetch creator earnings, returning zeroed aggregate")
		return emptyCreatorEarnings()
	}

	records = filterCategory(records, category)

	return &CreatorEarnings{
		TotalRevenue:  sumRevenue(records),
		TotalSales:    int64(len(records)),
		RevenueByType: revenueByLicenseType(records),
		SalesByDay:    salesByDay(records),
		TopWorks:      topWorksByRevenue(records, topWorksLimit),
	}
}

// GetRevenueChart returns the trailing twelve months of revenue, one entry
// per month, zero-filled.
func (s *AnalyticsService) GetRevenueChart(creatorID uuid.UUID) []MonthRevenue {
	now := time.Now()
	from := truncateMonth(now).AddDate(0, -11, 0)

	records, err := s.fetchCreatorSales(creatorID, from, now)
	if err != nil {
		logrus.WithError(err).WithField("creator_id", creatorID).
			Error("Failed to fetch revenue chart, returning zeroed series")
		return monthlySeries(from, now, nil)
	}

	return monthlySeries(from, now, records)
}

// GetSalesActivity returns the last 30 days of activity, zero-filled, with
// summary and breakdown views.
func (s *AnalyticsService) GetSalesActivity(creatorID uuid.UUID) *SalesActivity {
	now := time.Now()
	from := truncateDay(now).AddDate(0, 0, -29)

	records, err := s.fetchCreatorSales(creatorID, from, now)
	if err != nil {
		logrus.WithError(err).WithField("creator_id", creatorID).
			Error("Failed to fetch sales activity, returning zeroed aggregate")
		records = nil
	}

	totalRevenue := sumRevenue(records)
	totalSales := int64(len(records))
	avgSaleValue := 0.0
	if totalSales > 0 {
		avgSaleValue = totalRevenue / float64(totalSales)
	}

	return &SalesActivity{
		DailyActivity: dailySeries(from, now, records),
		Summary: ActivitySummary{
			TotalSales:   totalSales,
			TotalRevenue: totalRevenue,
			AvgSaleValue: avgSaleValue,
		},
		CategoryBreakdown:    breakdownBy(records, func(r saleRecord) string { return r.Category }),
		LicenseTypeBreakdown: breakdownBy(records, func(r saleRecord) string { return r.LicenseType }),
	}
}

// GetWorksPerformance returns per-work lifetime metrics sorted descending by
// revenue.
func (s *AnalyticsService) GetWorksPerformance(creatorID uuid.UUID) []WorkPerformance {
	var works []models.CreativeWork
	if err := s.db.Where("creator_id = ?", creatorID).Find(&works).Error; err != nil {
		logrus.WithError(err).WithField("creator_id", creatorID).
			Error("Failed to fetch works performance, returning empty set")
		return []WorkPerformance{}
	}

	records, err := s.fetchCreatorSales(creatorID, time.Time{}, time.Now())
	if err != nil {
		logrus.WithError(err).WithField("creator_id", creatorID).
			Error("Failed to fetch sales for works performance, returning zeroed metrics")
		records = nil
	}

	recentCutoff := time.Now().AddDate(0, 0, -30)

	index := make(map[uuid.UUID]int, len(works))
	viewCounts := make(map[uuid.UUID]int64, len(works))
	performance := make([]WorkPerformance, 0, len(works))
	for _, work := range works {
		index[work.ID] = len(performance)
		viewCounts[work.ID] = work.ViewCount
		performance = append(performance, WorkPerformance{
			ID:        work.ID,
			Title:     work.Title,
			Category:  work.Category,
			CreatedAt: work.CreatedAt,
		})
	}

	for _, r := range records {
		i, ok := index[r.WorkID]
		if !ok {
			continue
		}
		performance[i].TotalRevenue += r.Amount
		performance[i].TotalSales++
		if r.PurchasedAt.After(recentCutoff) {
			performance[i].RecentSales++
		}
	}

	for i := range performance {
		p := &performance[i]
		if p.TotalSales > 0 {
			p.AvgPrice = p.TotalRevenue / float64(p.TotalSales)
		}
		if views := viewCounts[p.ID]; views > 0 {
			p.ConversionRate = float64(p.TotalSales) / float64(views) * 100
		}
	}

	sort.Slice(performance, func(i, j int) bool {
		return performance[i].TotalRevenue > performance[j].TotalRevenue
	})
	return performance
}

// ExportEarningsCSV renders the creator's sales within the period window as
// CSV rows.
func (s *AnalyticsService) ExportEarningsCSV(creatorID uuid.UUID, period string) ([]byte, error) {
	from, to := periodWindow(period, time.Now())

	records, err := s.fetchCreatorSales(creatorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earnings for export: %w", err)
	}

	header := []string{"date", "work", "category", "license_type", "amount"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.PurchasedAt.Format(dayKeyFormat),
			r.WorkTitle,
			r.Category,
			r.LicenseType,
			utils.FormatAmount(r.Amount),
		})
	}

	return utils.BuildCSV(header, rows)
}

// fetchCreatorSales loads completed orders for the creator's works in
// [from, to) and resolves them against offerings and works. A zero from
// means no lower bound.
func (s *AnalyticsService) fetchCreatorSales(creatorID uuid.UUID, from, to time.Time) ([]saleRecord, error) {
	var works []models.CreativeWork
	if err := s.db.Where("creator_id = ?", creatorID).Find(&works).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch creator works: %w", err)
	}

	if len(works) == 0 {
		return nil, nil
	}

	workIDs := make([]uuid.UUID, 0, len(works))
	workMap := make(map[uuid.UUID]models.CreativeWork, len(works))
	for _, work := range works {
		workIDs = append(workIDs, work.ID)
		workMap[work.ID] = work
	}

	var offerings []models.LicenseOffering
	if err := s.db.Where("work_id IN ?", workIDs).Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch license offerings: %w", err)
	}

	offeringMap := make(map[uuid.UUID]models.LicenseOffering, len(offerings))
	for _, offering := range offerings {
		offeringMap[offering.ID] = offering
	}

	query := s.db.Where("work_id IN ? AND status = ?", workIDs, models.OrderStatusCompleted)
	if !from.IsZero() {
		query = query.Where("purchased_at >= ?", from)
	}
	query = query.Where("purchased_at < ?", to)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return resolveRecords(orders, offeringMap, workMap), nil
}

func emptyCreatorEarnings() *CreatorEarnings {
	return &CreatorEarnings{
		RevenueByType: map[string]float64{},
		SalesByDay:    map[string]int64{},
		TopWorks:      []WorkRevenue{},
	}
}
