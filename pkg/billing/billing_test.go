package billing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
)

func TestClassifyIsTotalAndExclusive(t *testing.T) {
	for _, status := range lifecycle.Statuses() {
		bucket := Classify(status)

		assert.Contains(t, []BucketStatus{BucketActive, BucketPaused, BucketNotApplicable}, bucket.Status)
		assert.NotEmpty(t, bucket.Label)
		assert.NotEmpty(t, bucket.Reason)

		// Exactly one of the three buckets applies.
		assert.False(t, IsBillable(status) && IsPaused(status), "status %s in two buckets", status)
		assert.Equal(t, IsBillable(status), bucket.Billable)
	}
}

func TestClassifyBuckets(t *testing.T) {
	assert.Equal(t, BucketActive, Classify(lifecycle.StatusWithClient).Status)
	assert.Equal(t, BucketPaused, Classify(lifecycle.StatusReturnedFromClient).Status)
	assert.Equal(t, BucketPaused, Classify(lifecycle.StatusWithVendorRepair).Status)
	assert.Equal(t, BucketNotApplicable, Classify(lifecycle.StatusInStockWorking).Status)
	assert.Equal(t, BucketNotApplicable, Classify(lifecycle.StatusInOfficeTesting).Status)
	assert.Equal(t, BucketNotApplicable, Classify(lifecycle.StatusSold).Status)
	assert.Equal(t, BucketNotApplicable, Classify(lifecycle.StatusDisposed).Status)
}

func TestCalculateMetrics(t *testing.T) {
	assets := []BillableAsset{
		{Status: lifecycle.StatusWithClient, Location: "Acme Corp"},
		{Status: lifecycle.StatusWithClient, Location: "Acme Corp"},
		{Status: lifecycle.StatusWithClient, Location: "Globex"},
		{Status: lifecycle.StatusReturnedFromClient},
		{Status: lifecycle.StatusWithVendorRepair},
		{Status: lifecycle.StatusInStockWorking},
	}

	metrics := CalculateMetrics(assets, 0)

	assert.Equal(t, 3, metrics.BillableCount)
	assert.Equal(t, 2, metrics.PausedCount)
	assert.Equal(t, 6, metrics.TotalCount)
	assert.Equal(t, DefaultMonthlyRate, metrics.MonthlyRate)
	assert.Equal(t, 3*DefaultMonthlyRate, metrics.MonthlyRevenue)
	assert.Equal(t, 3*DefaultMonthlyRate*12, metrics.AnnualRevenue)
	assert.Equal(t, DefaultMonthlyRate/30, metrics.DailyRate)
	assert.InDelta(t, 50.0, metrics.UtilizationRate, 0.001)

	acme := metrics.ClientBreakdown["Acme Corp"]
	assert.Equal(t, 2, acme.AssetCount)
	assert.Equal(t, 2*DefaultMonthlyRate, acme.MonthlyRevenue)
}

func TestCalculateMetricsWithOverrideRate(t *testing.T) {
	assets := []BillableAsset{
		{Status: lifecycle.StatusWithClient, Location: "Acme Corp"},
	}

	metrics := CalculateMetrics(assets, 5000)

	assert.Equal(t, 5000.0, metrics.MonthlyRate)
	assert.Equal(t, 5000.0, metrics.MonthlyRevenue)
	assert.Equal(t, 60000.0, metrics.AnnualRevenue)
}

func TestCalculateMetricsEmptyFleet(t *testing.T) {
	metrics := CalculateMetrics(nil, 0)

	assert.Equal(t, 0, metrics.TotalCount)
	assert.Equal(t, 0.0, metrics.MonthlyRevenue)
	assert.Equal(t, 0.0, metrics.UtilizationRate)
}

func TestCalculateMetricsOrderIndependent(t *testing.T) {
	assets := []BillableAsset{
		{Status: lifecycle.StatusWithClient, Location: "Acme Corp"},
		{Status: lifecycle.StatusWithClient, Location: "Globex"},
		{Status: lifecycle.StatusReturnedFromClient},
		{Status: lifecycle.StatusSold},
		{Status: lifecycle.StatusInOfficeTesting},
	}

	want := CalculateMetrics(assets, 0)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]BillableAsset, len(assets))
		copy(shuffled, assets)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, want, CalculateMetrics(shuffled, 0))
	}
}
