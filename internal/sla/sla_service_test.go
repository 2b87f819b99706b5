package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

func assetIn(status lifecycle.Status, daysAgo int, now time.Time) models.Asset {
	return models.Asset{
		ID:              1,
		SerialNumber:    "LT-2001",
		Status:          status,
		StatusChangedAt: now.AddDate(0, 0, -daysAgo),
	}
}

func TestEvaluateUntrackedStatus(t *testing.T) {
	now := time.Now()

	_, tracked := Evaluate(assetIn(lifecycle.StatusWithClient, 100, now), now)
	assert.False(t, tracked)

	_, tracked = Evaluate(assetIn(lifecycle.StatusInStockWorking, 100, now), now)
	assert.False(t, tracked)
}

func TestEvaluateLevels(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		status  lifecycle.Status
		daysAgo int
		want    Level
	}{
		{"returned fresh", lifecycle.StatusReturnedFromClient, 1, LevelOK},
		{"returned warning", lifecycle.StatusReturnedFromClient, 4, LevelWarning},
		{"returned breached", lifecycle.StatusReturnedFromClient, 8, LevelBreached},
		{"repair fresh", lifecycle.StatusWithVendorRepair, 5, LevelOK},
		{"repair warning", lifecycle.StatusWithVendorRepair, 8, LevelWarning},
		{"repair breached", lifecycle.StatusWithVendorRepair, 15, LevelBreached},
		{"testing fresh", lifecycle.StatusInOfficeTesting, 1, LevelOK},
		{"testing warning", lifecycle.StatusInOfficeTesting, 3, LevelWarning},
		{"testing breached", lifecycle.StatusInOfficeTesting, 6, LevelBreached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standing, tracked := Evaluate(assetIn(tt.status, tt.daysAgo, now), now)
			assert.True(t, tracked)
			assert.Equal(t, tt.want, standing.Level)
			assert.Equal(t, tt.daysAgo, standing.DaysInStatus)
		})
	}
}

func TestEvaluateDaysToBreachNeverNegative(t *testing.T) {
	now := time.Now()

	standing, tracked := Evaluate(assetIn(lifecycle.StatusInOfficeTesting, 30, now), now)
	assert.True(t, tracked)
	assert.Equal(t, 0, standing.DaysToBreach)
}

func TestSummarizeCountsByLevel(t *testing.T) {
	now := time.Now()

	assets := []models.Asset{
		assetIn(lifecycle.StatusReturnedFromClient, 1, now),
		assetIn(lifecycle.StatusReturnedFromClient, 5, now),
		assetIn(lifecycle.StatusWithVendorRepair, 20, now),
		assetIn(lifecycle.StatusWithClient, 200, now),
	}

	summary := Summarize(assets, now)

	assert.Equal(t, 3, summary.Tracked)
	assert.Equal(t, 1, summary.OK)
	assert.Equal(t, 1, summary.Warning)
	assert.Equal(t, 1, summary.Breached)
	assert.Len(t, summary.Assets, 3)
}
