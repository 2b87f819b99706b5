package models

import "time"

// AuditEntry is the durable shape of one attempted action. Entries are
// append-only: no update or delete path exists anywhere in the codebase.
type AuditEntry struct {
	ID            int       `json:"id" db:"id"`
	AuditID       string    `json:"audit_id" db:"audit_id"`
	SessionID     string    `json:"session_id" db:"session_id"`
	ActionType    string    `json:"action_type" db:"action_type"`
	Category      string    `json:"category" db:"action_category"`
	UserRole      string    `json:"performed_by" db:"user_role"`
	AssetID       *int      `json:"asset_id,omitempty" db:"asset_id"`
	SerialNumber  string    `json:"serial_number" db:"serial_number"`
	ClientName    string    `json:"client_name" db:"client_name"`
	OldValue      string    `json:"old_value" db:"old_value"`
	NewValue      string    `json:"new_value" db:"new_value"`
	Description   string    `json:"description" db:"description"`
	Severity      string    `json:"severity" db:"severity"`
	Critical      bool      `json:"is_critical" db:"is_critical"`
	BillingImpact bool      `json:"billing_impact" db:"billing_impact"`
	Success       bool      `json:"success" db:"success"`
	ErrorMessage  string    `json:"error_message" db:"error_message"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
