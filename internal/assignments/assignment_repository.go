package assignments

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

type AssignmentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssignmentRepository {
	return &AssignmentRepository{repository: r}
}

// OpenAssignment creates the ACTIVE assignment row for an asset that just
// moved to the client. The client id is resolved from the name when the
// client is registered; assignments to unregistered locations keep a nil id.
func (r *AssignmentRepository) OpenAssignment(tx *goqu.TxDatabase, assetID int, clientName string) error {
	var clientID *int
	var id int
	found, err := tx.Select("id").
		From("clients").
		Where(goqu.Ex{"client_name": clientName}).
		Executor().
		ScanVal(&id)
	if err != nil {
		return fmt.Errorf("failed to resolve client %q: %w", clientName, err)
	}
	if found {
		clientID = &id
	}

	insert := tx.Insert("assignments").
		Rows(goqu.Record{
			"asset_id":      assetID,
			"client_id":     clientID,
			"client_name":   clientName,
			"billing_type":  "Rental",
			"shipment_date": time.Now(),
			"status":        models.AssignmentStatusActive,
		})

	if _, err := insert.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}

	return nil
}

// CloseActiveAssignment completes the open assignment for the asset, if one
// exists. Returns whether a row was closed.
func (r *AssignmentRepository) CloseActiveAssignment(tx *goqu.TxDatabase, assetID int) (bool, error) {
	result, err := tx.Update("assignments").
		Set(goqu.Record{
			"status":      models.AssignmentStatusCompleted,
			"return_date": time.Now(),
		}).
		Where(goqu.Ex{
			"asset_id": assetID,
			"status":   models.AssignmentStatusActive,
		}).
		Executor().
		Exec()
	if err != nil {
		return false, fmt.Errorf("failed to close assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Filter narrows assignment listings. Zero values mean "no filter".
type Filter struct {
	AssetID    int
	ClientName string
	ActiveOnly bool
}

func (r *AssignmentRepository) GetAssignments(filter Filter) ([]models.Assignment, error) {
	query := r.repository.Builder.
		From("assignments").
		Select(
			"id", "asset_id", "client_id", "client_name", "billing_type",
			"shipment_date", "return_date", "status", "notes", "created_at",
		).
		Order(goqu.I("id").Desc())

	conditions := goqu.Ex{}
	if filter.AssetID != 0 {
		conditions["asset_id"] = filter.AssetID
	}
	if filter.ClientName != "" {
		conditions["client_name"] = filter.ClientName
	}
	if filter.ActiveOnly {
		conditions["status"] = models.AssignmentStatusActive
	}
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	var assignments []models.Assignment
	if err := query.Executor().ScanStructs(&assignments); err != nil {
		return nil, fmt.Errorf("failed to select assignments: %w", err)
	}

	return assignments, nil
}
