package models

import "time"

const (
	IssueStatusOpen     = "OPEN"
	IssueStatusResolved = "RESOLVED"
)

// Issue is a reported defect tied to an asset. Independent of the state
// machine, but usually precedes a repair.
type Issue struct {
	ID           int        `json:"id" db:"id"`
	AssetID      int        `json:"asset_id" db:"asset_id"`
	Title        string     `json:"issue_title" db:"issue_title"`
	Category     string     `json:"issue_category" db:"issue_category"`
	Description  string     `json:"description" db:"description"`
	Severity     string     `json:"severity" db:"severity"`
	Status       string     `json:"status" db:"status"`
	ReportedDate time.Time  `json:"reported_date" db:"reported_date"`
	ResolvedDate *time.Time `json:"resolved_date,omitempty" db:"resolved_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type CreateIssueRequest struct {
	AssetID     int    `json:"asset_id" binding:"required"`
	Title       string `json:"issue_title" binding:"required"`
	Category    string `json:"issue_category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}
