package billing

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/billing"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
)

// BillableAssetSource loads the asset view needed for revenue metrics.
type BillableAssetSource interface {
	GetBillableAssets() ([]billing.BillableAsset, error)
}

type BillingRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *BillingRepository {
	return &BillingRepository{repository: r}
}

func (r *BillingRepository) GetBillableAssets() ([]billing.BillableAsset, error) {
	var rows []struct {
		Status   lifecycle.Status `db:"current_status"`
		Location string           `db:"current_location"`
	}

	query := r.repository.Builder.
		From("assets").
		Select("current_status", "current_location").
		Where(goqu.I("current_status").NotIn(
			lifecycle.StatusSold.String(),
			lifecycle.StatusDisposed.String(),
		))

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to select assets for billing: %w", err)
	}

	assets := make([]billing.BillableAsset, len(rows))
	for i, row := range rows {
		assets[i] = billing.BillableAsset{Status: row.Status, Location: row.Location}
	}

	return assets, nil
}

type BillingService struct {
	source      BillableAssetSource
	defaultRate float64
}

// NewService builds the billing service. A defaultRate of 0 keeps the
// built-in flat rate.
func NewService(source BillableAssetSource, defaultRate float64) *BillingService {
	if defaultRate <= 0 {
		defaultRate = billing.DefaultMonthlyRate
	}
	return &BillingService{source: source, defaultRate: defaultRate}
}

// DefaultRate is the flat monthly rate applied when no override is given.
func (s *BillingService) DefaultRate() float64 {
	return s.defaultRate
}

// Metrics computes the revenue snapshot. A rate of 0 selects the configured
// default; non-default rates must be authorized by the caller before reaching
// here.
func (s *BillingService) Metrics(rate float64) (billing.Metrics, error) {
	assets, err := s.source.GetBillableAssets()
	if err != nil {
		return billing.Metrics{}, err
	}

	if rate <= 0 {
		rate = s.defaultRate
	}

	return billing.CalculateMetrics(assets, rate), nil
}
