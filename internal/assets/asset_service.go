package assets

import (
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/rbac"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

// AssetStore is the slice of the assets repository the transition pipeline
// needs.
type AssetStore interface {
	GetAssetStatus(id int) (lifecycle.Status, string, error)
	UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, from, to lifecycle.Status, location string, incrementReuse bool) error
}

// AssignmentStore opens and closes client assignments alongside transitions.
type AssignmentStore interface {
	OpenAssignment(tx *goqu.TxDatabase, assetID int, clientName string) error
	CloseActiveAssignment(tx *goqu.TxDatabase, assetID int) (bool, error)
}

// RepairStore opens and closes vendor repairs alongside transitions.
type RepairStore interface {
	OpenRepair(tx *goqu.TxDatabase, assetID int, vendorName, description string) error
	CloseActiveRepair(tx *goqu.TxDatabase, assetID int) (bool, error)
}

// TransactionRunner runs the status update and its side effects atomically.
type TransactionRunner interface {
	WithTransaction(fn func(tx *goqu.TxDatabase) error) error
}

type AssetService struct {
	assets      AssetStore
	assignments AssignmentStore
	repairs     RepairStore
	tx          TransactionRunner
	auditLog    *auditlog.Sink
	log         *zap.Logger
}

func NewAssetService(
	assets AssetStore,
	assignments AssignmentStore,
	repairs RepairStore,
	tx TransactionRunner,
	sink *auditlog.Sink,
	log *zap.Logger,
) *AssetService {
	return &AssetService{
		assets:      assets,
		assignments: assignments,
		repairs:     repairs,
		tx:          tx,
		auditLog:    sink,
		log:         log,
	}
}

// ChangeStatusCommand is one resolved transition attempt: the caller's role
// comes from the verified token, never from the payload.
type ChangeStatusCommand struct {
	AssetID   int
	NewStatus string
	Location  string
	Role      roles.Role
}

// TransitionResult reports the outcome of a transition attempt. A rejected
// attempt is a valid outcome, not an error: Allowed is false and Reason says
// why.
type TransitionResult struct {
	Allowed   bool             `json:"allowed"`
	Denied    bool             `json:"-"`
	OldStatus lifecycle.Status `json:"old_status,omitempty"`
	NewStatus lifecycle.Status `json:"new_status,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	NoOp      bool             `json:"no_op,omitempty"`
}

// ChangeStatus runs the full transition pipeline: permission check,
// validity check, compare-and-swap persistence with assignment and repair
// side effects, and an audit entry for every attempt regardless of outcome.
func (s *AssetService) ChangeStatus(cmd ChangeStatusCommand) (TransitionResult, error) {
	requested, err := lifecycle.NewStatus(cmd.NewStatus)
	if err != nil {
		reason := err.Error()
		s.logAttempt(cmd, "", reason)
		return TransitionResult{Allowed: false, Reason: reason}, nil
	}

	action := rbac.ActionForStatus(requested)
	if err := rbac.Check(cmd.Role, action); err != nil {
		s.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        cmd.Role,
			AssetID:     &cmd.AssetID,
			NewValue:    requested.String(),
			Description: fmt.Sprintf("Denied action '%s'", action),
			Success:     false,
		})
		return TransitionResult{Allowed: false, Denied: true, NewStatus: requested, Reason: err.Error()}, nil
	}

	current, serial, err := s.assets.GetAssetStatus(cmd.AssetID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			s.logAttempt(cmd, "", "Asset not found")
			return TransitionResult{}, err
		}
		return TransitionResult{}, fmt.Errorf("failed to load asset %d: %w", cmd.AssetID, err)
	}

	if err := lifecycle.ValidateTransition(current, requested); err != nil {
		var unknown *lifecycle.UnknownStatusError
		if errors.As(err, &unknown) {
			// Stored status outside the lifecycle means corrupt data,
			// not a policy rejection.
			s.log.Error("asset holds unknown status",
				zap.Int("asset_id", cmd.AssetID),
				zap.String("status", unknown.Status.String()))
			s.logAttemptWithSerial(cmd, serial, current, requested, err.Error())
			return TransitionResult{}, fmt.Errorf("asset %d: %w", cmd.AssetID, err)
		}

		s.logAttemptWithSerial(cmd, serial, current, requested, err.Error())
		return TransitionResult{
			Allowed:   false,
			OldStatus: current,
			NewStatus: requested,
			Reason:    err.Error(),
		}, nil
	}

	if current == requested {
		s.auditLog.Log(auditlog.Event{
			ActionType:   auditlog.ActionStateChange,
			Category:     auditlog.CategoryAsset,
			Role:         cmd.Role,
			AssetID:      &cmd.AssetID,
			SerialNumber: serial,
			OldValue:     current.String(),
			NewValue:     requested.String(),
			Description:  fmt.Sprintf("No-op: asset already %s", current),
			Success:      true,
		})
		return TransitionResult{Allowed: true, OldStatus: current, NewStatus: requested, NoOp: true}, nil
	}

	if requested == lifecycle.StatusWithClient && cmd.Location == "" {
		reason := "client name is required when assigning an asset"
		s.logAttemptWithSerial(cmd, serial, current, requested, reason)
		return TransitionResult{Allowed: false, OldStatus: current, NewStatus: requested, Reason: reason}, nil
	}

	incrementReuse := current == lifecycle.StatusWithVendorRepair && requested == lifecycle.StatusInStockWorking

	err = s.tx.WithTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.assets.UpdateAssetStatus(tx, cmd.AssetID, current, requested, cmd.Location, incrementReuse); err != nil {
			return err
		}

		if current == lifecycle.StatusWithClient {
			if _, err := s.assignments.CloseActiveAssignment(tx, cmd.AssetID); err != nil {
				return err
			}
		}
		if current == lifecycle.StatusWithVendorRepair {
			if _, err := s.repairs.CloseActiveRepair(tx, cmd.AssetID); err != nil {
				return err
			}
		}

		switch requested {
		case lifecycle.StatusWithClient:
			return s.assignments.OpenAssignment(tx, cmd.AssetID, cmd.Location)
		case lifecycle.StatusWithVendorRepair:
			return s.repairs.OpenRepair(tx, cmd.AssetID, cmd.Location, "")
		}

		return nil
	})
	if err != nil {
		s.logAttemptWithSerial(cmd, serial, current, requested, err.Error())
		if errors.Is(err, ErrStatusConflict) {
			return TransitionResult{}, err
		}
		return TransitionResult{}, fmt.Errorf("failed to persist status change for asset %d: %w", cmd.AssetID, err)
	}

	s.auditLog.Log(auditlog.Event{
		ActionType:   auditlog.ActionStateChange,
		Category:     auditlog.CategoryAsset,
		Role:         cmd.Role,
		AssetID:      &cmd.AssetID,
		SerialNumber: serial,
		ClientName:   clientNameFor(requested, cmd.Location),
		OldValue:     current.String(),
		NewValue:     requested.String(),
		Description:  fmt.Sprintf("Status changed: %s -> %s", current, requested),
		Success:      true,
	})

	return TransitionResult{Allowed: true, OldStatus: current, NewStatus: requested}, nil
}

func clientNameFor(status lifecycle.Status, location string) string {
	if status == lifecycle.StatusWithClient {
		return location
	}
	return ""
}

// logAttempt records a rejected attempt before the asset was loaded.
func (s *AssetService) logAttempt(cmd ChangeStatusCommand, serial, reason string) {
	s.auditLog.Log(auditlog.Event{
		ActionType:   auditlog.ActionStateChange,
		Category:     auditlog.CategoryAsset,
		Role:         cmd.Role,
		AssetID:      &cmd.AssetID,
		SerialNumber: serial,
		NewValue:     cmd.NewStatus,
		Description:  fmt.Sprintf("BLOCKED: %s", reason),
		Success:      false,
		ErrorMessage: reason,
	})
}

func (s *AssetService) logAttemptWithSerial(cmd ChangeStatusCommand, serial string, current, requested lifecycle.Status, reason string) {
	s.auditLog.Log(auditlog.Event{
		ActionType:   auditlog.ActionStateChange,
		Category:     auditlog.CategoryAsset,
		Role:         cmd.Role,
		AssetID:      &cmd.AssetID,
		SerialNumber: serial,
		OldValue:     current.String(),
		NewValue:     requested.String(),
		Description:  fmt.Sprintf("BLOCKED: %s -> %s", current, requested),
		Success:      false,
		ErrorMessage: reason,
	})
}
