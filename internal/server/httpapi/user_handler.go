package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekarpova/resumecraft/internal/logging"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

type UserHandler struct {
	logger      logging.Logger
	userService *users.Service
}

func NewUserHandler(logger logging.Logger, userService *users.Service) *UserHandler {
	return &UserHandler{logger: logger, userService: userService}
}

func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userService.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"phone":     user.Phone,
		"createdAt": user.CreatedAt,
	})
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	err := h.userService.UpdateProfile(c.Request.Context(), currentUserID(c),
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), strings.TrimSpace(req.Phone))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)
	if err := h.userService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(ctx, "password changed", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

type deleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)
	if err := h.userService.DeleteAccount(ctx, userID, req.Password); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info(ctx, "account deleted", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
