package billing

import (
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
)

// BillableAsset is the minimal asset view the metrics calculation needs.
type BillableAsset struct {
	Status   lifecycle.Status
	Location string
}

// ClientRevenue is the per-client slice of the revenue breakdown. The
// grouping key is the asset's current location, which holds the client name
// for deployed assets.
type ClientRevenue struct {
	AssetCount     int     `json:"asset_count"`
	MonthlyRate    float64 `json:"monthly_rate"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	AnnualRevenue  float64 `json:"annual_revenue"`
}

// Metrics aggregates billing figures over a collection of assets.
type Metrics struct {
	BillableCount   int                      `json:"billable_count"`
	PausedCount     int                      `json:"paused_count"`
	TotalCount      int                      `json:"total_count"`
	UtilizationRate float64                  `json:"utilization_rate"`
	MonthlyRate     float64                  `json:"monthly_rate"`
	DailyRate       float64                  `json:"daily_rate"`
	MonthlyRevenue  float64                  `json:"monthly_revenue"`
	AnnualRevenue   float64                  `json:"annual_revenue"`
	ClientBreakdown map[string]ClientRevenue `json:"client_breakdown"`
}

// CalculateMetrics computes revenue projections as count(active) * rate.
// No proration and no per-client custom rates; a rate of 0 selects the
// default. The result is independent of asset order.
func CalculateMetrics(assets []BillableAsset, rate float64) Metrics {
	if rate <= 0 {
		rate = DefaultMonthlyRate
	}

	var billableCount, pausedCount int
	clientCounts := make(map[string]int)

	for _, asset := range assets {
		switch {
		case IsBillable(asset.Status):
			billableCount++
			if asset.Location != "" {
				clientCounts[asset.Location]++
			}
		case IsPaused(asset.Status):
			pausedCount++
		}
	}

	totalCount := len(assets)
	monthlyRevenue := float64(billableCount) * rate

	var utilization float64
	if totalCount > 0 {
		utilization = float64(billableCount) / float64(totalCount) * 100
	}

	breakdown := make(map[string]ClientRevenue, len(clientCounts))
	for client, count := range clientCounts {
		breakdown[client] = ClientRevenue{
			AssetCount:     count,
			MonthlyRate:    rate,
			MonthlyRevenue: float64(count) * rate,
			AnnualRevenue:  float64(count) * rate * 12,
		}
	}

	return Metrics{
		BillableCount:   billableCount,
		PausedCount:     pausedCount,
		TotalCount:      totalCount,
		UtilizationRate: utilization,
		MonthlyRate:     rate,
		DailyRate:       rate / 30,
		MonthlyRevenue:  monthlyRevenue,
		AnnualRevenue:   monthlyRevenue * 12,
		ClientBreakdown: breakdown,
	}
}
