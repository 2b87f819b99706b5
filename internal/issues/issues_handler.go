package issues

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/rbac"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type IssuesHandler struct {
	repo     *IssueRepository
	auditLog *auditlog.Sink
	log      *zap.Logger
}

func NewHandler(repo *IssueRepository, sink *auditlog.Sink, log *zap.Logger) *IssuesHandler {
	return &IssuesHandler{repo: repo, auditLog: sink, log: log}
}

func (h *IssuesHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/issues", h.GetIssues)
	router.POST("/issues", h.CreateIssue)
	router.POST("/issues/:id/resolve", h.ResolveIssue)
}

func (h *IssuesHandler) GetIssues(c *gin.Context) {
	assetID := 0
	if raw := c.Query("asset_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset_id"})
			return
		}
		assetID = parsed
	}

	issues, err := h.repo.GetIssues(assetID, c.Query("open") == "true")
	if err != nil {
		middleware.InternalError(c, h.log, "Could not list issues", err)
		return
	}

	c.JSON(http.StatusOK, issues)
}

func (h *IssuesHandler) CreateIssue(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionLogIssue); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized issue create attempt",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req models.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.repo.PersistIssue(req); err != nil {
		if custom_error.IsForeignKeyViolation(err) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("Asset %d does not exist", req.AssetID)})
			return
		}
		middleware.InternalError(c, h.log, "Could not create issue", err)
		return
	}

	h.auditLog.Log(auditlog.Event{
		ActionType:  auditlog.ActionIssueCreated,
		Category:    auditlog.CategoryAsset,
		Role:        role,
		AssetID:     &req.AssetID,
		Description: fmt.Sprintf("Issue logged: %s", req.Title),
		Success:     true,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Issue logged successfully"})
}

func (h *IssuesHandler) ResolveIssue(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionLogIssue); err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	issueID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	resolved, err := h.repo.ResolveIssue(issueID)
	if err != nil {
		middleware.InternalError(c, h.log, "Could not resolve issue", err)
		return
	}
	if !resolved {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "No open issue with that ID"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue resolved"})
}
