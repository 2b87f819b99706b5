package models

import "time"

const (
	AssignmentStatusActive    = "ACTIVE"
	AssignmentStatusCompleted = "COMPLETED"
)

// Assignment links one asset to one client for a time window. Opened when an
// asset transitions to WITH_CLIENT, closed when it transitions out.
type Assignment struct {
	ID           int        `json:"id" db:"id"`
	AssetID      int        `json:"asset_id" db:"asset_id"`
	ClientID     *int       `json:"client_id,omitempty" db:"client_id"`
	ClientName   string     `json:"client_name" db:"client_name"`
	BillingType  string     `json:"billing_type" db:"billing_type"`
	ShipmentDate time.Time  `json:"shipment_date" db:"shipment_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty" db:"return_date"`
	Status       string     `json:"status" db:"status"`
	Notes        string     `json:"notes" db:"notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
