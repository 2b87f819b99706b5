package auditlog

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

// AuditLogRepository is the durable side of the audit trail. Inserts only;
// the table has no update or delete path and retains all rows indefinitely.
type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

func (r *AuditLogRepository) PersistEntry(entry models.AuditEntry) error {
	query := r.repository.Builder.Insert("audit_log").
		Rows(goqu.Record{
			"audit_id":        entry.AuditID,
			"session_id":      entry.SessionID,
			"action_type":     entry.ActionType,
			"action_category": entry.Category,
			"user_role":       entry.UserRole,
			"asset_id":        entry.AssetID,
			"serial_number":   entry.SerialNumber,
			"client_name":     entry.ClientName,
			"old_value":       entry.OldValue,
			"new_value":       entry.NewValue,
			"description":     entry.Description,
			"severity":        entry.Severity,
			"is_critical":     entry.Critical,
			"billing_impact":  entry.BillingImpact,
			"success":         entry.Success,
			"error_message":   entry.ErrorMessage,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}

// EntryFilter narrows audit queries. Zero values mean "no filter".
type EntryFilter struct {
	ActionType string
	Severity   string
	Category   string
	FailedOnly bool
	Limit      uint
}

func (r *AuditLogRepository) GetEntries(filter EntryFilter) ([]models.AuditEntry, error) {
	query := r.repository.Builder.
		From("audit_log").
		Select(
			"id", "audit_id", "session_id", "action_type", "action_category",
			"user_role", "asset_id", "serial_number", "client_name",
			"old_value", "new_value", "description", "severity", "is_critical",
			"billing_impact", "success", "error_message", "created_at",
		).
		Order(goqu.I("id").Desc())

	conditions := goqu.Ex{}
	if filter.ActionType != "" {
		conditions["action_type"] = filter.ActionType
	}
	if filter.Severity != "" {
		conditions["severity"] = filter.Severity
	}
	if filter.Category != "" {
		conditions["action_category"] = filter.Category
	}
	if filter.FailedOnly {
		conditions["success"] = false
	}
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 200
	}
	query = query.Limit(limit)

	var entries []models.AuditEntry
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("failed to select audit entries: %w", err)
	}

	return entries, nil
}

// GetAssetLog returns the full trail for one asset, oldest first.
func (r *AuditLogRepository) GetAssetLog(assetID int) ([]models.AuditEntry, error) {
	query := r.repository.Builder.
		From("audit_log").
		Select(
			"id", "audit_id", "session_id", "action_type", "action_category",
			"user_role", "asset_id", "serial_number", "client_name",
			"old_value", "new_value", "description", "severity", "is_critical",
			"billing_impact", "success", "error_message", "created_at",
		).
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("id").Asc())

	var entries []models.AuditEntry
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("failed to select audit entries for asset %d: %w", assetID, err)
	}

	return entries, nil
}
