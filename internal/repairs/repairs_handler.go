package repairs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/rbac"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type RepairsHandler struct {
	repo     *RepairRepository
	auditLog *auditlog.Sink
	log      *zap.Logger
}

func NewHandler(repo *RepairRepository, sink *auditlog.Sink, log *zap.Logger) *RepairsHandler {
	return &RepairsHandler{repo: repo, auditLog: sink, log: log}
}

func (h *RepairsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/repairs", h.GetRepairs)
	router.POST("/repairs", h.CreateRepair)
	router.PATCH("/repairs/:id", h.UpdateRepair)
}

func (h *RepairsHandler) CreateRepair(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionCreateRepair); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized repair create attempt",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req models.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.repo.CreateRepair(req); err != nil {
		middleware.InternalError(c, h.log, "Could not create repair", err)
		return
	}

	h.auditLog.Log(auditlog.Event{
		ActionType:  auditlog.ActionRepairCreated,
		Category:    auditlog.CategoryAsset,
		Role:        role,
		AssetID:     &req.AssetID,
		Description: "Repair record created",
		Success:     true,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Repair created successfully"})
}

func (h *RepairsHandler) GetRepairs(c *gin.Context) {
	assetID := 0
	if raw := c.Query("asset_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset_id"})
			return
		}
		assetID = parsed
	}

	repairs, err := h.repo.GetRepairs(assetID, c.Query("active") == "true")
	if err != nil {
		middleware.InternalError(c, h.log, "Could not list repairs", err)
		return
	}

	c.JSON(http.StatusOK, repairs)
}

func (h *RepairsHandler) UpdateRepair(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionCreateRepair); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized repair update attempt",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	repairID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid repair ID"})
		return
	}

	var changes models.RepairChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := h.repo.UpdateRepair(repairID, &changes); err != nil {
		middleware.InternalError(c, h.log, "Could not update repair", err)
		return
	}

	if changes.Status != nil && *changes.Status == models.RepairStatusCompleted {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionRepairCompleted,
			Category:    auditlog.CategoryAsset,
			Role:        role,
			Description: "Repair marked completed",
			NewValue:    models.RepairStatusCompleted,
			Success:     true,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair updated successfully"})
}
