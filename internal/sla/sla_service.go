package sla

import (
	"time"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

// Level is how far an asset has drifted past its dwell-time target.
type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelBreached Level = "breached"
)

// Threshold holds the warning and breach limits, in days, for time spent in
// one status.
type Threshold struct {
	WarnAfterDays   int
	BreachAfterDays int
}

// thresholds covers the statuses with a dwell-time expectation. Assets in
// any other status are not tracked.
var thresholds = map[lifecycle.Status]Threshold{
	lifecycle.StatusReturnedFromClient: {WarnAfterDays: 3, BreachAfterDays: 7},
	lifecycle.StatusWithVendorRepair:   {WarnAfterDays: 7, BreachAfterDays: 14},
	lifecycle.StatusInOfficeTesting:    {WarnAfterDays: 2, BreachAfterDays: 5},
}

// AssetStanding is the SLA view of one tracked asset.
type AssetStanding struct {
	AssetID      int              `json:"asset_id"`
	SerialNumber string           `json:"serial_number"`
	Status       lifecycle.Status `json:"status"`
	DaysInStatus int              `json:"days_in_status"`
	Level        Level            `json:"level"`
	DaysToBreach int              `json:"days_to_breach"`
}

// Summary aggregates SLA standings across the tracked fleet.
type Summary struct {
	Tracked  int             `json:"tracked"`
	OK       int             `json:"ok"`
	Warning  int             `json:"warning"`
	Breached int             `json:"breached"`
	Assets   []AssetStanding `json:"assets"`
}

// Tracked reports whether a status carries a dwell-time threshold.
func Tracked(status lifecycle.Status) bool {
	_, ok := thresholds[status]
	return ok
}

// Evaluate classifies one asset against its status threshold at the given
// time. The second return is false for untracked statuses.
func Evaluate(asset models.Asset, now time.Time) (AssetStanding, bool) {
	threshold, ok := thresholds[asset.Status]
	if !ok {
		return AssetStanding{}, false
	}

	days := int(now.Sub(asset.StatusChangedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}

	level := LevelOK
	switch {
	case days >= threshold.BreachAfterDays:
		level = LevelBreached
	case days >= threshold.WarnAfterDays:
		level = LevelWarning
	}

	remaining := threshold.BreachAfterDays - days
	if remaining < 0 {
		remaining = 0
	}

	return AssetStanding{
		AssetID:      asset.ID,
		SerialNumber: asset.SerialNumber,
		Status:       asset.Status,
		DaysInStatus: days,
		Level:        level,
		DaysToBreach: remaining,
	}, true
}

// Summarize evaluates every tracked asset and aggregates the counts.
// Untracked assets are skipped, not counted.
func Summarize(assets []models.Asset, now time.Time) Summary {
	summary := Summary{Assets: []AssetStanding{}}

	for _, asset := range assets {
		standing, ok := Evaluate(asset, now)
		if !ok {
			continue
		}

		summary.Tracked++
		switch standing.Level {
		case LevelBreached:
			summary.Breached++
		case LevelWarning:
			summary.Warning++
		default:
			summary.OK++
		}
		summary.Assets = append(summary.Assets, standing)
	}

	return summary
}
