package billing

import (
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
)

// DefaultMonthlyRate is the flat per-asset monthly rate applied to every
// billable asset unless an admin override substitutes another rate.
const DefaultMonthlyRate = 3000.0

// BucketStatus classifies an asset status into one of three billing buckets.
type BucketStatus string

const (
	BucketActive        BucketStatus = "active"
	BucketPaused        BucketStatus = "paused"
	BucketNotApplicable BucketStatus = "not_applicable"
)

var bucketLabels = map[BucketStatus]string{
	BucketActive:        "Billing Active",
	BucketPaused:        "Billing Paused",
	BucketNotApplicable: "Not Billable",
}

// billableStates and pausedStates are the two fixed sets the classifier
// checks; any status in neither is not-applicable.
var billableStates = map[lifecycle.Status]bool{
	lifecycle.StatusWithClient: true,
}

var pausedStates = map[lifecycle.Status]bool{
	lifecycle.StatusReturnedFromClient: true,
	lifecycle.StatusWithVendorRepair:   true,
}

var pausedReasons = map[lifecycle.Status]string{
	lifecycle.StatusReturnedFromClient: "Asset returned from client",
	lifecycle.StatusWithVendorRepair:   "Asset sent for repair",
}

var notApplicableReasons = map[lifecycle.Status]string{
	lifecycle.StatusInStockWorking:  "Asset in stock - not deployed",
	lifecycle.StatusInOfficeTesting: "Asset under testing",
	lifecycle.StatusSold:            "Asset sold - final billing completed",
	lifecycle.StatusDisposed:        "Asset disposed",
}

// Bucket is the billing classification of a single asset status.
type Bucket struct {
	Status   BucketStatus `json:"status"`
	Label    string       `json:"label"`
	Reason   string       `json:"reason"`
	Billable bool         `json:"is_billable"`
}

// Classify maps a lifecycle status to its billing bucket. The function is
// total over the status enum: every status lands in exactly one bucket.
func Classify(status lifecycle.Status) Bucket {
	if billableStates[status] {
		return Bucket{
			Status:   BucketActive,
			Label:    bucketLabels[BucketActive],
			Reason:   "Asset is deployed with client",
			Billable: true,
		}
	}

	if pausedStates[status] {
		reason := pausedReasons[status]
		if reason == "" {
			reason = "Billing temporarily paused"
		}
		return Bucket{
			Status:   BucketPaused,
			Label:    bucketLabels[BucketPaused],
			Reason:   reason,
			Billable: false,
		}
	}

	reason := notApplicableReasons[status]
	if reason == "" {
		reason = "Not in billable state"
	}
	return Bucket{
		Status:   BucketNotApplicable,
		Label:    bucketLabels[BucketNotApplicable],
		Reason:   reason,
		Billable: false,
	}
}

// IsBillable reports whether a status is in the billable set.
func IsBillable(status lifecycle.Status) bool {
	return billableStates[status]
}

// IsPaused reports whether a status is in the paused set.
func IsPaused(status lifecycle.Status) bool {
	return pausedStates[status]
}
