package assets

import (
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

// ErrAssetNotFound signals a lookup miss for a given asset id.
var ErrAssetNotFound = errors.New("asset not found")

// ErrStatusConflict signals a lost race: the asset's status changed between
// read and update, so the compare-and-swap touched zero rows.
var ErrStatusConflict = errors.New("asset status changed concurrently")

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{repository: r}
}

var assetColumns = []interface{}{
	"id", "serial_number", "asset_type", "brand", "model", "specs",
	"current_status", "current_location", "status_changed_at", "reuse_count",
	"purchase_date", "purchase_price", "notes", "created_at", "updated_at",
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	return r.fetchAssetByCondition(goqu.Ex{"id": id})
}

func (r *AssetsRepository) GetAssetBySerial(serial string) (*models.Asset, error) {
	return r.fetchAssetByCondition(goqu.Ex{"serial_number": serial})
}

func (r *AssetsRepository) fetchAssetByCondition(condition goqu.Expression) (*models.Asset, error) {
	query := r.repository.Builder.
		From("assets").
		Select(assetColumns...).
		Where(condition)

	var asset models.Asset
	found, err := query.Executor().ScanStruct(&asset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, ErrAssetNotFound
	}

	return &asset, nil
}

// GetAssets lists assets, optionally narrowed to a set of statuses.
func (r *AssetsRepository) GetAssets(statuses []lifecycle.Status) ([]models.Asset, error) {
	query := r.repository.Builder.
		From("assets").
		Select(assetColumns...).
		Order(goqu.I("id").Asc())

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = s.String()
		}
		query = query.Where(goqu.Ex{"current_status": values})
	}

	var assets []models.Asset
	if err := query.Executor().ScanStructs(&assets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	return assets, nil
}

// GetAssetStatus loads just the fields the transition pipeline needs.
func (r *AssetsRepository) GetAssetStatus(id int) (lifecycle.Status, string, error) {
	var row struct {
		Status lifecycle.Status `db:"current_status"`
		Serial string           `db:"serial_number"`
	}

	found, err := r.repository.Builder.
		From("assets").
		Select("current_status", "serial_number").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&row)
	if err != nil {
		return "", "", fmt.Errorf("unable to select asset status: %w", err)
	}
	if !found {
		return "", "", ErrAssetNotFound
	}

	return row.Status, row.Serial, nil
}

func (r *AssetsRepository) PersistAsset(req models.CreateAssetRequest, status lifecycle.Status) (*models.Asset, error) {
	record := goqu.Record{
		"serial_number":     req.SerialNumber,
		"asset_type":        req.AssetType,
		"brand":             req.Brand,
		"model":             req.Model,
		"specs":             req.Specs,
		"current_status":    status.String(),
		"current_location":  req.Location,
		"status_changed_at": time.Now(),
		"notes":             req.Notes,
	}
	if req.PurchaseDate != nil {
		record["purchase_date"] = *req.PurchaseDate
	}
	if req.PurchasePrice != nil {
		record["purchase_price"] = *req.PurchasePrice
	}

	query := r.repository.Builder.Insert("assets").Rows(record)

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.WrapDriverError("Duplicate serial number for asset", err)
	}

	return r.GetAssetBySerial(req.SerialNumber)
}

// UpdateAssetStatus performs the compare-and-swap status update. The WHERE
// clause pins the expected current status so concurrent transitions surface
// as ErrStatusConflict instead of silently overwriting each other.
func (r *AssetsRepository) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, from, to lifecycle.Status, location string, incrementReuse bool) error {
	record := goqu.Record{
		"current_status":    to.String(),
		"status_changed_at": time.Now(),
		"updated_at":        time.Now(),
	}
	if location != "" {
		record["current_location"] = location
	}
	if incrementReuse {
		record["reuse_count"] = goqu.L("reuse_count + 1")
	}

	result, err := tx.Update("assets").
		Set(record).
		Where(goqu.Ex{
			"id":             assetID,
			"current_status": from.String(),
		}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update asset status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *AssetsRepository) UpdateAsset(assetID int, changes *models.AssetChanges) error {
	record := goqu.Record{"updated_at": time.Now()}
	if changes.AssetType != nil {
		record["asset_type"] = *changes.AssetType
	}
	if changes.Brand != nil {
		record["brand"] = *changes.Brand
	}
	if changes.Model != nil {
		record["model"] = *changes.Model
	}
	if changes.Specs != nil {
		record["specs"] = *changes.Specs
	}
	if changes.Notes != nil {
		record["notes"] = *changes.Notes
	}

	result, err := r.repository.Builder.Update("assets").
		Set(record).
		Where(goqu.Ex{"id": assetID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAssetNotFound
	}

	return nil
}
