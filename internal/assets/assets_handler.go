package assets

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditstore "github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/lifecycle"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/rbac"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type AssetsHandler struct {
	repo     *AssetsRepository
	service  *AssetService
	auditLog *auditlog.Sink
	trail    *auditstore.AuditLogRepository
	log      *zap.Logger
}

func NewHandler(
	repo *AssetsRepository,
	service *AssetService,
	sink *auditlog.Sink,
	trail *auditstore.AuditLogRepository,
	log *zap.Logger,
) *AssetsHandler {
	return &AssetsHandler{
		repo:     repo,
		service:  service,
		auditLog: sink,
		trail:    trail,
		log:      log,
	}
}

func (h *AssetsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", h.GetAssets)
	router.GET("/assets/:id", h.GetAsset)
	router.GET("/assets/:id/logs", h.GetAssetLogs)
	router.POST("/assets", h.CreateAsset)
	router.PATCH("/assets/:id", h.UpdateAsset)
	router.POST("/assets/:id/status", h.ChangeStatus)
}

func (h *AssetsHandler) GetAssets(c *gin.Context) {
	var statuses []lifecycle.Status
	if raw := c.Query("status"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			status, err := lifecycle.NewStatus(strings.TrimSpace(value))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			statuses = append(statuses, status)
		}
	}

	assets, err := h.repo.GetAssets(statuses)
	if err != nil {
		h.internalError(c, "Could not list assets", err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetsHandler) GetAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.repo.GetAsset(assetID)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		h.internalError(c, "Could not load asset", err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// GetAssetLogs exposes the per-asset audit trail, oldest first.
func (h *AssetsHandler) GetAssetLogs(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	entries, err := h.trail.GetAssetLog(assetID)
	if err != nil {
		h.internalError(c, "Could not load asset logs", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *AssetsHandler) CreateAsset(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionCreateAsset); err != nil {
		h.denied(c, role, "Unauthorized asset create attempt", err)
		return
	}

	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	status := lifecycle.StatusInStockWorking
	if req.Status != "" {
		status, err = lifecycle.NewStatus(req.Status)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if !status.IsValidInitial() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("asset cannot be created in status '%s'; allowed initial statuses: %v", status, lifecycle.InitialStatuses()),
		})
		return
	}
	if status == lifecycle.StatusWithClient && req.Location == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "client name is required when creating an asset already with a client"})
		return
	}

	asset, err := h.repo.PersistAsset(req, status)
	if err != nil {
		if custom_error.IsUniqueViolation(err) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Asset with serial number '%s' already exists", req.SerialNumber)})
			return
		}
		h.internalError(c, "Could not create asset", err)
		return
	}

	h.auditLog.Log(auditlog.Event{
		ActionType:   auditlog.ActionAssetCreated,
		Category:     auditlog.CategoryAsset,
		Role:         role,
		AssetID:      &asset.ID,
		SerialNumber: asset.SerialNumber,
		NewValue:     asset.Status.String(),
		Description:  fmt.Sprintf("Asset %s created", asset.SerialNumber),
		Success:      true,
	})

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetsHandler) UpdateAsset(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionEditAsset); err != nil {
		h.denied(c, role, "Unauthorized asset edit attempt", err)
		return
	}

	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var changes models.AssetChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := h.repo.UpdateAsset(assetID, &changes); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		h.internalError(c, "Could not update asset", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully"})
}

func (h *AssetsHandler) ChangeStatus(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req models.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	result, err := h.service.ChangeStatus(ChangeStatusCommand{
		AssetID:   assetID,
		NewStatus: req.NewStatus,
		Location:  req.Location,
		Role:      role,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		case errors.Is(err, ErrStatusConflict):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Asset status changed concurrently, please retry"})
		default:
			h.internalError(c, "Could not change asset status", err)
		}
		return
	}

	if !result.Allowed {
		status := http.StatusUnprocessableEntity
		if result.Denied {
			status = http.StatusForbidden
		}
		c.AbortWithStatusJSON(status, gin.H{"error": result.Reason})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AssetsHandler) denied(c *gin.Context, role roles.Role, description string, err error) {
	h.auditLog.Log(auditlog.Event{
		ActionType:  auditlog.ActionAccessDenied,
		Category:    auditlog.CategorySecurity,
		Role:        role,
		Description: description,
		Success:     false,
	})
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
}

// internalError logs full detail server-side and returns only a safe message
// with a correlation id.
func (h *AssetsHandler) internalError(c *gin.Context, message string, err error) {
	refID := custom_error.NewReferenceID()
	h.log.Error(message,
		zap.String("reference_id", refID),
		zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": custom_error.SafeMessage(custom_error.Classify(err), refID),
	})
}
