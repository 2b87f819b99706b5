package models

import "time"

const (
	RepairStatusWithVendor = "WITH_VENDOR"
	RepairStatusCompleted  = "COMPLETED"
)

// Repair is a vendor-repair record tied to an asset. Opened when the asset
// enters WITH_VENDOR_REPAIR, closed when it exits.
type Repair struct {
	ID             int        `json:"id" db:"id"`
	AssetID        int        `json:"asset_id" db:"asset_id"`
	Reference      string     `json:"repair_reference" db:"repair_reference"`
	VendorName     string     `json:"vendor_name" db:"vendor_name"`
	Description    string     `json:"repair_description" db:"repair_description"`
	SentDate       time.Time  `json:"sent_date" db:"sent_date"`
	ExpectedReturn *time.Time `json:"expected_return,omitempty" db:"expected_return"`
	ReturnDate     *time.Time `json:"return_date,omitempty" db:"return_date"`
	Cost           *float64   `json:"repair_cost,omitempty" db:"repair_cost"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

type CreateRepairRequest struct {
	AssetID        int        `json:"asset_id" binding:"required"`
	VendorName     string     `json:"vendor_name"`
	Description    string     `json:"repair_description"`
	ExpectedReturn *time.Time `json:"expected_return"`
}

type RepairChanges struct {
	VendorName  *string    `json:"vendor_name"`
	Description *string    `json:"repair_description"`
	ReturnDate  *time.Time `json:"return_date"`
	Cost        *float64   `json:"repair_cost"`
	Status      *string    `json:"status"`
}

func (c *RepairChanges) HasChanges() bool {
	return c.VendorName != nil || c.Description != nil || c.ReturnDate != nil ||
		c.Cost != nil || c.Status != nil
}
