package auditlog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
)

// Session view bounds. The durable store keeps all rows; only the in-memory
// view is pruned, and critical entries survive pruning.
const (
	maxSessionEntries = 500
	recentKeep        = 300
)

// Recorder persists audit entries. Implemented by the auditlog repository.
type Recorder interface {
	PersistEntry(entry models.AuditEntry) error
}

// Event is one attempted action to record.
type Event struct {
	ActionType   string
	Category     string
	Role         roles.Role
	AssetID      *int
	SerialNumber string
	ClientName   string
	OldValue     string
	NewValue     string
	Description  string
	Success      bool
	ErrorMessage string
}

// Sink is the append-only audit trail. Every transition attempt and every
// RBAC denial goes through here. Persistence failures are logged and never
// propagate to the caller: a failed audit write must not roll back the
// business operation.
type Sink struct {
	store     Recorder
	log       *zap.Logger
	sessionID string

	mu      sync.Mutex
	entries []models.AuditEntry
}

func NewSink(store Recorder, log *zap.Logger) *Sink {
	return &Sink{
		store:     store,
		log:       log,
		sessionID: newSessionID(),
	}
}

// Log classifies and appends one event, returning the immutable entry.
func (s *Sink) Log(ev Event) models.AuditEntry {
	class := Classify(ev.ActionType)

	entry := models.AuditEntry{
		AuditID:       newAuditID(),
		SessionID:     s.sessionID,
		ActionType:    ev.ActionType,
		Category:      ev.Category,
		UserRole:      string(ev.Role),
		AssetID:       ev.AssetID,
		SerialNumber:  ev.SerialNumber,
		ClientName:    ev.ClientName,
		OldValue:      ev.OldValue,
		NewValue:      ev.NewValue,
		Description:   ev.Description,
		Severity:      class.Severity,
		Critical:      IsCritical(class.Severity),
		BillingImpact: class.BillingImpact,
		Success:       ev.Success,
		ErrorMessage:  ev.ErrorMessage,
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.prune()
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.PersistEntry(entry); err != nil {
			s.log.Warn("failed to persist audit entry",
				zap.String("audit_id", entry.AuditID),
				zap.String("action_type", entry.ActionType),
				zap.Error(err))
		}
	}

	return entry
}

// prune bounds the session view. Critical entries are always retained;
// non-critical entries are trimmed to the most recent window. Caller holds
// the lock.
func (s *Sink) prune() {
	if len(s.entries) <= maxSessionEntries {
		return
	}

	recentStart := len(s.entries) - recentKeep
	seen := make(map[string]bool, len(s.entries))
	merged := make([]models.AuditEntry, 0, recentKeep)

	for i, entry := range s.entries {
		if entry.Critical || i >= recentStart {
			if !seen[entry.AuditID] {
				seen[entry.AuditID] = true
				merged = append(merged, entry)
			}
		}
	}

	s.entries = merged
}

// Recent returns a copy of the current session view.
func (s *Sink) Recent() []models.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Summary holds aggregate counters over the session view.
type Summary struct {
	Total         int `json:"total"`
	Critical      int `json:"critical"`
	Failed        int `json:"failed"`
	BillingImpact int `json:"billing_impact"`
}

func (s *Sink) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum Summary
	sum.Total = len(s.entries)
	for _, entry := range s.entries {
		if entry.Critical {
			sum.Critical++
		}
		if !entry.Success {
			sum.Failed++
		}
		if entry.BillingImpact {
			sum.BillingImpact++
		}
	}
	return sum
}

func (s *Sink) SessionID() string {
	return s.sessionID
}

func newAuditID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "AUD-" + raw[:12]
}

func newSessionID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SES-" + raw[:12]
}
