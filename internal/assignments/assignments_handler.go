package assignments

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
)

type AssignmentsHandler struct {
	repo *AssignmentRepository
	log  *zap.Logger
}

func NewHandler(repo *AssignmentRepository, log *zap.Logger) *AssignmentsHandler {
	return &AssignmentsHandler{repo: repo, log: log}
}

func (h *AssignmentsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assignments", h.GetAssignments)
}

func (h *AssignmentsHandler) GetAssignments(c *gin.Context) {
	filter := Filter{
		ClientName: c.Query("client"),
		ActiveOnly: c.Query("active") == "true",
	}

	if raw := c.Query("asset_id"); raw != "" {
		assetID, err := strconv.Atoi(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset_id"})
			return
		}
		filter.AssetID = assetID
	}

	assignments, err := h.repo.GetAssignments(filter)
	if err != nil {
		middleware.InternalError(c, h.log, "Could not list assignments", err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}
