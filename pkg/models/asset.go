package models

import (
	"time"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
)

// Asset is a trackable piece of equipment with a unique serial number and a
// single current lifecycle status. Status changes only through the
// transition validator; assets are never physically deleted.
type Asset struct {
	ID              int              `json:"id" db:"id"`
	SerialNumber    string           `json:"serial_number" db:"serial_number"`
	AssetType       string           `json:"asset_type" db:"asset_type"`
	Brand           string           `json:"brand" db:"brand"`
	Model           string           `json:"model" db:"model"`
	Specs           string           `json:"specs" db:"specs"`
	Status          lifecycle.Status `json:"current_status" db:"current_status"`
	Location        string           `json:"current_location" db:"current_location"`
	StatusChangedAt time.Time        `json:"status_changed_at" db:"status_changed_at"`
	ReuseCount      int              `json:"reuse_count" db:"reuse_count"`
	PurchaseDate    *time.Time       `json:"purchase_date,omitempty" db:"purchase_date"`
	PurchasePrice   *float64         `json:"purchase_price,omitempty" db:"purchase_price"`
	Notes           string           `json:"notes" db:"notes"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

type CreateAssetRequest struct {
	SerialNumber  string     `json:"serial_number" binding:"required"`
	AssetType     string     `json:"asset_type" binding:"required"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	Specs         string     `json:"specs"`
	Status        string     `json:"current_status"`
	Location      string     `json:"current_location"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	PurchasePrice *float64   `json:"purchase_price"`
	Notes         string     `json:"notes"`
}

// AssetChanges carries the descriptive fields an edit may touch. Status is
// deliberately absent: it only moves through the transition pipeline.
type AssetChanges struct {
	AssetType *string `json:"asset_type"`
	Brand     *string `json:"brand"`
	Model     *string `json:"model"`
	Specs     *string `json:"specs"`
	Notes     *string `json:"notes"`
}

func (c *AssetChanges) HasChanges() bool {
	return c.AssetType != nil || c.Brand != nil || c.Model != nil || c.Specs != nil || c.Notes != nil
}

// StatusChangeRequest is one transition attempt against an asset.
type StatusChangeRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
	Location  string `json:"location"`
}
