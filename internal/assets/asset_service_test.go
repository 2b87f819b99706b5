package assets

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) GetAssetStatus(id int) (lifecycle.Status, string, error) {
	args := m.Called(id)
	return args.Get(0).(lifecycle.Status), args.String(1), args.Error(2)
}

func (m *MockAssetStore) UpdateAssetStatus(tx *goqu.TxDatabase, assetID int, from, to lifecycle.Status, location string, incrementReuse bool) error {
	args := m.Called(tx, assetID, from, to, location, incrementReuse)
	return args.Error(0)
}

type MockAssignmentStore struct {
	mock.Mock
}

func (m *MockAssignmentStore) OpenAssignment(tx *goqu.TxDatabase, assetID int, clientName string) error {
	args := m.Called(tx, assetID, clientName)
	return args.Error(0)
}

func (m *MockAssignmentStore) CloseActiveAssignment(tx *goqu.TxDatabase, assetID int) (bool, error) {
	args := m.Called(tx, assetID)
	return args.Bool(0), args.Error(1)
}

type MockRepairStore struct {
	mock.Mock
}

func (m *MockRepairStore) OpenRepair(tx *goqu.TxDatabase, assetID int, vendorName, description string) error {
	args := m.Called(tx, assetID, vendorName, description)
	return args.Error(0)
}

func (m *MockRepairStore) CloseActiveRepair(tx *goqu.TxDatabase, assetID int) (bool, error) {
	args := m.Called(tx, assetID)
	return args.Bool(0), args.Error(1)
}

// fakeTxRunner runs the callback without a real database transaction.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(fn func(tx *goqu.TxDatabase) error) error {
	return fn(nil)
}

func newTestService(assets *MockAssetStore, assignments *MockAssignmentStore, repairs *MockRepairStore) (*AssetService, *auditlog.Sink) {
	sink := auditlog.NewSink(nil, zap.NewNop())
	svc := NewAssetService(assets, assignments, repairs, fakeTxRunner{}, sink, zap.NewNop())
	return svc, sink
}

func TestChangeStatusAssignsAssetToClient(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 7).Return(lifecycle.StatusInStockWorking, "LT-1001", nil)
	assets.On("UpdateAssetStatus", mock.Anything, 7, lifecycle.StatusInStockWorking, lifecycle.StatusWithClient, "Acme Corp", false).Return(nil)
	assignments.On("OpenAssignment", mock.Anything, 7, "Acme Corp").Return(nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   7,
		NewStatus: "WITH_CLIENT",
		Location:  "Acme Corp",
		Role:      roles.Operations,
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, lifecycle.StatusInStockWorking, result.OldStatus)
	assert.Equal(t, lifecycle.StatusWithClient, result.NewStatus)

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionStateChange, entries[0].ActionType)
	assert.True(t, entries[0].Success)
	assert.Equal(t, "IN_STOCK_WORKING", entries[0].OldValue)
	assert.Equal(t, "WITH_CLIENT", entries[0].NewValue)
	assert.Equal(t, "Acme Corp", entries[0].ClientName)

	assets.AssertExpectations(t)
	assignments.AssertExpectations(t)
}

func TestChangeStatusDeniesFinanceRole(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   7,
		NewStatus: "WITH_CLIENT",
		Location:  "Acme Corp",
		Role:      roles.Finance,
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.True(t, result.Denied)
	assert.Contains(t, result.Reason, "Access Denied")

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.Equal(t, auditlog.ActionAccessDenied, entries[0].ActionType)
	assert.False(t, entries[0].Success)
	assert.True(t, entries[0].Critical)

	// The asset is never even loaded on a denial.
	assets.AssertNotCalled(t, "GetAssetStatus", mock.Anything)
}

func TestChangeStatusRejectsInvalidTransition(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 3).Return(lifecycle.StatusWithClient, "LT-1002", nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   3,
		NewStatus: "WITH_VENDOR_REPAIR",
		Role:      roles.Operations,
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "invalid transition")
	assert.Contains(t, result.Reason, "Returned from Client")
	assert.Contains(t, result.Reason, "Sold")

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].Success)

	assets.AssertNotCalled(t, "UpdateAssetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusRejectsTerminalState(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 9).Return(lifecycle.StatusSold, "LT-1003", nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   9,
		NewStatus: "IN_STOCK_WORKING",
		Role:      roles.Admin,
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "terminal state")

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
}

func TestChangeStatusNoOpWhenStatusUnchanged(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 4).Return(lifecycle.StatusInStockWorking, "LT-1004", nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   4,
		NewStatus: "IN_STOCK_WORKING",
		Role:      roles.Operations,
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.True(t, result.NoOp)

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].Success)

	assets.AssertNotCalled(t, "UpdateAssetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusRepairReturnIncrementsReuse(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, _ := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 5).Return(lifecycle.StatusWithVendorRepair, "LT-1005", nil)
	assets.On("UpdateAssetStatus", mock.Anything, 5, lifecycle.StatusWithVendorRepair, lifecycle.StatusInStockWorking, "", true).Return(nil)
	repairs.On("CloseActiveRepair", mock.Anything, 5).Return(true, nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   5,
		NewStatus: "IN_STOCK_WORKING",
		Role:      roles.Operations,
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	assets.AssertExpectations(t)
	repairs.AssertExpectations(t)
}

func TestChangeStatusReturnFromClientClosesAssignment(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, _ := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 6).Return(lifecycle.StatusWithClient, "LT-1006", nil)
	assets.On("UpdateAssetStatus", mock.Anything, 6, lifecycle.StatusWithClient, lifecycle.StatusReturnedFromClient, "Office", false).Return(nil)
	assignments.On("CloseActiveAssignment", mock.Anything, 6).Return(true, nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   6,
		NewStatus: "RETURNED_FROM_CLIENT",
		Location:  "Office",
		Role:      roles.Operations,
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	assignments.AssertExpectations(t)
}

func TestChangeStatusSendForRepairOpensRepair(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, _ := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 8).Return(lifecycle.StatusReturnedFromClient, "LT-1007", nil)
	assets.On("UpdateAssetStatus", mock.Anything, 8, lifecycle.StatusReturnedFromClient, lifecycle.StatusWithVendorRepair, "TechFix", false).Return(nil)
	repairs.On("OpenRepair", mock.Anything, 8, "TechFix", "").Return(nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   8,
		NewStatus: "WITH_VENDOR_REPAIR",
		Location:  "TechFix",
		Role:      roles.Admin,
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	repairs.AssertExpectations(t)
}

func TestChangeStatusRequiresClientName(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, _ := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 7).Return(lifecycle.StatusInStockWorking, "LT-1001", nil)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   7,
		NewStatus: "WITH_CLIENT",
		Role:      roles.Operations,
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "client name is required")
}

func TestChangeStatusSurfacesConcurrentConflict(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 2).Return(lifecycle.StatusWithClient, "LT-1008", nil)
	assets.On("UpdateAssetStatus", mock.Anything, 2, lifecycle.StatusWithClient, lifecycle.StatusReturnedFromClient, "", false).Return(ErrStatusConflict)

	_, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   2,
		NewStatus: "RETURNED_FROM_CLIENT",
		Role:      roles.Operations,
	})

	assert.ErrorIs(t, err, ErrStatusConflict)

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
}

func TestChangeStatusUnknownStoredStatusIsAnError(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, _ := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 11).Return(lifecycle.Status("MISPLACED"), "LT-1009", nil)

	_, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   11,
		NewStatus: "IN_STOCK_WORKING",
		Role:      roles.Admin,
	})

	assert.Error(t, err)
	var unknown *lifecycle.UnknownStatusError
	assert.ErrorAs(t, err, &unknown)
}

func TestChangeStatusUnknownRequestedStatus(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, _ := newTestService(assets, assignments, repairs)

	result, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   1,
		NewStatus: "TELEPORTED",
		Role:      roles.Admin,
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "invalid status")
}

func TestChangeStatusAssetNotFound(t *testing.T) {
	assets := new(MockAssetStore)
	assignments := new(MockAssignmentStore)
	repairs := new(MockRepairStore)
	svc, sink := newTestService(assets, assignments, repairs)

	assets.On("GetAssetStatus", 99).Return(lifecycle.Status(""), "", ErrAssetNotFound)

	_, err := svc.ChangeStatus(ChangeStatusCommand{
		AssetID:   99,
		NewStatus: "WITH_CLIENT",
		Location:  "Acme Corp",
		Role:      roles.Admin,
	})

	assert.ErrorIs(t, err, ErrAssetNotFound)

	entries := sink.Recent()
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
}
