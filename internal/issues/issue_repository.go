package issues

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

type IssueRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *IssueRepository {
	return &IssueRepository{repository: r}
}

func (r *IssueRepository) PersistIssue(req models.CreateIssueRequest) error {
	severity := req.Severity
	if severity == "" {
		severity = "medium"
	}

	query := r.repository.Builder.Insert("issues").
		Rows(goqu.Record{
			"asset_id":       req.AssetID,
			"issue_title":    req.Title,
			"issue_category": req.Category,
			"description":    req.Description,
			"severity":       severity,
			"status":         models.IssueStatusOpen,
			"reported_date":  time.Now(),
		})

	if _, err := query.Executor().Exec(); err != nil {
		return custom_error.WrapDriverError("Issue references a missing asset", err)
	}

	return nil
}

func (r *IssueRepository) GetIssues(assetID int, openOnly bool) ([]models.Issue, error) {
	query := r.repository.Builder.
		From("issues").
		Select(
			"id", "asset_id", "issue_title", "issue_category", "description",
			"severity", "status", "reported_date", "resolved_date", "created_at",
		).
		Order(goqu.I("id").Desc())

	conditions := goqu.Ex{}
	if assetID != 0 {
		conditions["asset_id"] = assetID
	}
	if openOnly {
		conditions["status"] = models.IssueStatusOpen
	}
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	var issues []models.Issue
	if err := query.Executor().ScanStructs(&issues); err != nil {
		return nil, fmt.Errorf("failed to select issues: %w", err)
	}

	return issues, nil
}

// ResolveIssue closes an open issue. Returns whether a row changed.
func (r *IssueRepository) ResolveIssue(issueID int) (bool, error) {
	result, err := r.repository.Builder.Update("issues").
		Set(goqu.Record{
			"status":        models.IssueStatusResolved,
			"resolved_date": time.Now(),
		}).
		Where(goqu.Ex{
			"id":     issueID,
			"status": models.IssueStatusOpen,
		}).
		Executor().
		Exec()
	if err != nil {
		return false, fmt.Errorf("failed to resolve issue: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}
