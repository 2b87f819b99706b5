package billing

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/rbac"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type BillingHandler struct {
	service  *BillingService
	auditLog *auditlog.Sink
	log      *zap.Logger
}

func NewHandler(service *BillingService, sink *auditlog.Sink, log *zap.Logger) *BillingHandler {
	return &BillingHandler{service: service, auditLog: sink, log: log}
}

func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/billing/metrics", h.GetMetrics)
}

// GetMetrics returns the revenue snapshot. The optional rate query overrides
// the flat monthly rate and is restricted to roles holding the billing
// override permission; every successful override is audited.
func (h *BillingHandler) GetMetrics(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionViewBilling); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized billing metrics access",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	rate := 0.0
	if raw := c.Query("rate"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid rate: must be a positive number"})
			return
		}

		if err := rbac.Check(role, rbac.ActionBillingOverride); err != nil {
			h.auditLog.Log(auditlog.Event{
				ActionType:  auditlog.ActionAccessDenied,
				Category:    auditlog.CategorySecurity,
				Role:        role,
				Description: "Unauthorized billing rate override attempt",
				Success:     false,
			})
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		rate = parsed
	}

	metrics, err := h.service.Metrics(rate)
	if err != nil {
		middleware.InternalError(c, h.log, "Could not compute billing metrics", err)
		return
	}

	if rate > 0 && rate != h.service.DefaultRate() {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionBillingOverride,
			Category:    auditlog.CategoryBilling,
			Role:        role,
			OldValue:    fmt.Sprintf("%.2f", h.service.DefaultRate()),
			NewValue:    fmt.Sprintf("%.2f", rate),
			Description: "Billing rate override applied to metrics",
			Success:     true,
		})
	}

	c.JSON(http.StatusOK, metrics)
}
