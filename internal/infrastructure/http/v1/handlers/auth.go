package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/auth"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// AuthHandler provides authentication endpoints.
type AuthHandler struct {
	BaseHandler
	service *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates a user and returns a token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
