package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekarpova/resumecraft/internal/logging"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

type AuthHandler struct {
	logger      logging.Logger
	userService *users.Service
}

func NewAuthHandler(logger logging.Logger, userService *users.Service) *AuthHandler {
	return &AuthHandler{logger: logger, userService: userService}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.Register(ctx,
		strings.ToLower(strings.TrimSpace(req.Email)), req.Password,
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	if err != nil {
		h.logger.Error(ctx, "registration failed", "error", err.Error())
		respondError(c, err)
		return
	}

	h.logger.Info(ctx, "user registered", "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": user.ID})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.userService.Login(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	tokens, err := h.userService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}
