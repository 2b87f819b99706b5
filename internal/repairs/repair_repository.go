package repairs

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

type RepairRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *RepairRepository {
	return &RepairRepository{repository: r}
}

// OpenRepair creates the WITH_VENDOR repair row when an asset is sent out.
func (r *RepairRepository) OpenRepair(tx *goqu.TxDatabase, assetID int, vendorName, description string) error {
	insert := tx.Insert("repairs").
		Rows(goqu.Record{
			"asset_id":           assetID,
			"repair_reference":   newRepairReference(),
			"vendor_name":        vendorName,
			"repair_description": description,
			"sent_date":          time.Now(),
			"status":             models.RepairStatusWithVendor,
		})

	if _, err := insert.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert repair record: %w", err)
	}

	return nil
}

// CreateRepair records a repair outside the transition pipeline, for repairs
// arranged before the asset physically leaves.
func (r *RepairRepository) CreateRepair(req models.CreateRepairRequest) error {
	record := goqu.Record{
		"asset_id":           req.AssetID,
		"repair_reference":   newRepairReference(),
		"vendor_name":        req.VendorName,
		"repair_description": req.Description,
		"sent_date":          time.Now(),
		"status":             models.RepairStatusWithVendor,
	}
	if req.ExpectedReturn != nil {
		record["expected_return"] = *req.ExpectedReturn
	}

	insert := r.repository.Builder.Insert("repairs").Rows(record)

	if _, err := insert.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert repair record: %w", err)
	}

	return nil
}

// CloseActiveRepair completes the open repair for the asset, if one exists.
func (r *RepairRepository) CloseActiveRepair(tx *goqu.TxDatabase, assetID int) (bool, error) {
	result, err := tx.Update("repairs").
		Set(goqu.Record{
			"status":      models.RepairStatusCompleted,
			"return_date": time.Now(),
		}).
		Where(goqu.Ex{
			"asset_id": assetID,
			"status":   models.RepairStatusWithVendor,
		}).
		Executor().
		Exec()
	if err != nil {
		return false, fmt.Errorf("failed to close repair: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *RepairRepository) GetRepairs(assetID int, activeOnly bool) ([]models.Repair, error) {
	query := r.repository.Builder.
		From("repairs").
		Select(
			"id", "asset_id", "repair_reference", "vendor_name",
			"repair_description", "sent_date", "expected_return", "return_date",
			"repair_cost", "status", "created_at",
		).
		Order(goqu.I("id").Desc())

	conditions := goqu.Ex{}
	if assetID != 0 {
		conditions["asset_id"] = assetID
	}
	if activeOnly {
		conditions["status"] = models.RepairStatusWithVendor
	}
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	var repairs []models.Repair
	if err := query.Executor().ScanStructs(&repairs); err != nil {
		return nil, fmt.Errorf("failed to select repairs: %w", err)
	}

	return repairs, nil
}

// UpdateRepair patches cost, notes, dates or status on an existing record.
func (r *RepairRepository) UpdateRepair(repairID int, changes *models.RepairChanges) error {
	record := goqu.Record{}
	if changes.VendorName != nil {
		record["vendor_name"] = *changes.VendorName
	}
	if changes.Description != nil {
		record["repair_description"] = *changes.Description
	}
	if changes.ReturnDate != nil {
		record["return_date"] = *changes.ReturnDate
	}
	if changes.Cost != nil {
		record["repair_cost"] = *changes.Cost
	}
	if changes.Status != nil {
		record["status"] = *changes.Status
	}

	result, err := r.repository.Builder.Update("repairs").
		Set(record).
		Where(goqu.Ex{"id": repairID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update repair: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("repair not found: %d", repairID)
	}

	return nil
}

func newRepairReference() string {
	return "REP-" + uuid.NewString()[:8]
}
