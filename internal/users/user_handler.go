package users

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/middleware"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/roles"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type UserHandler struct {
	repo *UserRepository
	log  *zap.Logger
}

func NewHandler(repo *UserRepository, log *zap.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: log}
}

// RegisterRoutes mounts the user admin surface. The whole group is
// restricted to admins by the route guard.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/users", security.Authorize(roles.Admin))
	group.GET("", h.GetUsers)
	group.GET("/:id", h.GetUser)
	group.POST("", h.CreateUser)
	group.PATCH("/:id", h.UpdateUser)
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.repo.GetUsers()
	if err != nil {
		middleware.InternalError(c, h.log, "Could not list users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.repo.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		middleware.InternalError(c, h.log, "Could not load user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	role := roles.Role(req.Role)
	if !role.IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid role '%s'", req.Role)})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	if err := h.repo.PersistUser(req.Username, string(hash), req.Fullname, string(role)); err != nil {
		if custom_error.IsUniqueViolation(err) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("User '%s' already exists", req.Username)})
			return
		}
		middleware.InternalError(c, h.log, "Could not create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	changes := models.UserChanges{
		Fullname: req.Fullname,
		Active:   req.Active,
	}

	if req.Role != nil {
		if !req.Role.IsValid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid role '%s'", *req.Role)})
			return
		}
		role := string(*req.Role)
		changes.Role = &role
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		hashed := string(hash)
		changes.PasswordHash = &hashed
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := h.repo.UpdateUser(userID, &changes); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		middleware.InternalError(c, h.log, "Could not update user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}
