package auditlog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type AuditLogHandler struct {
	repo *AuditLogRepository
	sink *auditlog.Sink
	log  *zap.Logger
}

func NewHandler(repo *AuditLogRepository, sink *auditlog.Sink, log *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{repo: repo, sink: sink, log: log}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit", security.Authorize(roles.Admin), h.GetEntries)
	router.GET("/audit/summary", security.Authorize(roles.Admin), h.GetSummary)
}

func (h *AuditLogHandler) GetEntries(c *gin.Context) {
	filter := EntryFilter{
		ActionType: c.Query("action_type"),
		Severity:   c.Query("severity"),
		Category:   c.Query("category"),
		FailedOnly: c.Query("failed") == "true",
	}

	entries, err := h.repo.GetEntries(filter)
	if err != nil {
		middleware.InternalError(c, h.log, "Could not list audit entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AuditLogHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session":    h.sink.SessionID(),
		"summary":    h.sink.Summary(),
		"session_sz": len(h.sink.Recent()),
	})
}
