package sla

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/rbac"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

// AssetLister loads assets for SLA evaluation, narrowed to the given
// statuses.
type AssetLister interface {
	GetAssets(statuses []lifecycle.Status) ([]models.Asset, error)
}

type SLAHandler struct {
	assets   AssetLister
	auditLog *auditlog.Sink
	log      *zap.Logger
}

func NewHandler(assets AssetLister, sink *auditlog.Sink, log *zap.Logger) *SLAHandler {
	return &SLAHandler{assets: assets, auditLog: sink, log: log}
}

func (h *SLAHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/sla/summary", h.GetSummary)
}

func (h *SLAHandler) GetSummary(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionViewSLA); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized SLA summary access",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	tracked := []lifecycle.Status{
		lifecycle.StatusReturnedFromClient,
		lifecycle.StatusWithVendorRepair,
		lifecycle.StatusInOfficeTesting,
	}

	assets, err := h.assets.GetAssets(tracked)
	if err != nil {
		middleware.InternalError(c, h.log, "Could not load assets for SLA evaluation", err)
		return
	}

	c.JSON(http.StatusOK, Summarize(assets, time.Now()))
}
