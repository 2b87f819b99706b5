package auditlog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

type recordingStore struct {
	entries []models.AuditEntry
	err     error
}

func (s *recordingStore) PersistEntry(entry models.AuditEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func TestLogClassifiesAndPersists(t *testing.T) {
	store := &recordingStore{}
	sink := NewSink(store, zap.NewNop())

	entry := sink.Log(Event{
		ActionType:  ActionAssetAssigned,
		Category:    CategoryAsset,
		Role:        roles.Operations,
		ClientName:  "Acme Corp",
		Description: "Asset shipped",
		Success:     true,
	})

	assert.Equal(t, SeverityHigh, entry.Severity)
	assert.True(t, entry.Critical)
	assert.True(t, entry.BillingImpact)
	assert.Equal(t, sink.SessionID(), entry.SessionID)
	assert.Contains(t, entry.AuditID, "AUD-")

	assert.Len(t, store.entries, 1)
	assert.Equal(t, entry.AuditID, store.entries[0].AuditID)
}

func TestLogSwallowsPersistFailures(t *testing.T) {
	store := &recordingStore{err: errors.New("connection refused")}
	sink := NewSink(store, zap.NewNop())

	entry := sink.Log(Event{ActionType: ActionStateChange, Success: true})

	assert.NotEmpty(t, entry.AuditID)
	assert.Len(t, sink.Recent(), 1)
}

func TestUnknownActionDefaultsToLow(t *testing.T) {
	class := Classify("SOMETHING_NEW")
	assert.Equal(t, SeverityLow, class.Severity)
	assert.False(t, class.BillingImpact)
}

func TestPruneKeepsCriticalEntries(t *testing.T) {
	sink := NewSink(nil, zap.NewNop())

	// 50 critical denials first, then enough low-severity noise to trip
	// the pruning threshold.
	for i := 0; i < 50; i++ {
		sink.Log(Event{
			ActionType:  ActionAccessDenied,
			Category:    CategorySecurity,
			Description: fmt.Sprintf("denial %d", i),
			Success:     false,
		})
	}
	for i := 0; i < 600; i++ {
		sink.Log(Event{
			ActionType:  ActionClientUpdated,
			Category:    CategoryClient,
			Description: fmt.Sprintf("noise %d", i),
			Success:     true,
		})
	}

	entries := sink.Recent()
	assert.Less(t, len(entries), 650)

	var criticalCount int
	for _, entry := range entries {
		if entry.ActionType == ActionAccessDenied {
			criticalCount++
		}
	}
	assert.Equal(t, 50, criticalCount, "critical entries must survive pruning")

	// The most recent noise is retained.
	last := entries[len(entries)-1]
	assert.Equal(t, "noise 599", last.Description)
}

func TestSummaryCounters(t *testing.T) {
	sink := NewSink(nil, zap.NewNop())

	sink.Log(Event{ActionType: ActionAssetAssigned, Success: true})
	sink.Log(Event{ActionType: ActionAccessDenied, Success: false})
	sink.Log(Event{ActionType: ActionClientCreated, Success: true})

	summary := sink.Summary()
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Critical)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.BillingImpact)
}
