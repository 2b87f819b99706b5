package clients

import (
	"errors"
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

type ClientsHandler struct {
	repo     *ClientRepository
	auditLog *auditlog.Sink
	log      *zap.Logger
}

func NewHandler(repo *ClientRepository, sink *auditlog.Sink, log *zap.Logger) *ClientsHandler {
	return &ClientsHandler{repo: repo, auditLog: sink, log: log}
}

func (h *ClientsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/clients", h.GetClients)
	router.GET("/clients/:id", h.GetClient)
	router.POST("/clients", h.CreateClient)
	router.PATCH("/clients/:id", h.UpdateClient)
}

func (h *ClientsHandler) GetClients(c *gin.Context) {
	clients, err := h.repo.GetClients(c.Query("active") == "true")
	if err != nil {
		middleware.InternalError(c, h.log, "Could not list clients", err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientsHandler) GetClient(c *gin.Context) {
	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	client, err := h.repo.GetClient(clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		middleware.InternalError(c, h.log, "Could not load client", err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientsHandler) CreateClient(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionManageClients); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized client create attempt",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	client, err := h.repo.PersistClient(req)
	if err != nil {
		if custom_error.IsUniqueViolation(err) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Client '%s' already exists", req.Name)})
			return
		}
		middleware.InternalError(c, h.log, "Could not create client", err)
		return
	}

	h.auditLog.Log(auditlog.Event{
		ActionType:  auditlog.ActionClientCreated,
		Category:    auditlog.CategoryClient,
		Role:        role,
		ClientName:  client.Name,
		Description: fmt.Sprintf("Client %s registered", client.Name),
		Success:     true,
	})

	c.JSON(http.StatusCreated, client)
}

func (h *ClientsHandler) UpdateClient(c *gin.Context) {
	role, err := security.RoleFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return
	}

	if err := rbac.Check(role, rbac.ActionManageClients); err != nil {
		h.auditLog.Log(auditlog.Event{
			ActionType:  auditlog.ActionAccessDenied,
			Category:    auditlog.CategorySecurity,
			Role:        role,
			Description: "Unauthorized client update attempt",
			Success:     false,
		})
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	clientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	var changes models.ClientChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := h.repo.UpdateClient(clientID, &changes); err != nil {
		if errors.Is(err, ErrClientNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		middleware.InternalError(c, h.log, "Could not update client", err)
		return
	}

	h.auditLog.Log(auditlog.Event{
		ActionType:  auditlog.ActionClientUpdated,
		Category:    auditlog.CategoryClient,
		Role:        role,
		Description: fmt.Sprintf("Client %d updated", clientID),
		Success:     true,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Client updated successfully"})
}
