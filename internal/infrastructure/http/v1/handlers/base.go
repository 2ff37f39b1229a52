// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// BindJSON binds and validates a JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers the error on the Gin context and aborts. The JSON body
// is produced by middleware.ErrorHandler, the single source of truth.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseID parses a UUID path parameter.
func (h *BaseHandler) ParseID(c *gin.Context, param string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(param))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("param", param))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseIntQuery parses an integer query parameter with a default.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseDateQuery parses a YYYY-MM-DD query parameter.
// Returns ok=false (with an error registered) on malformed input;
// a missing parameter returns the zero time with ok=true.
func (h *BaseHandler) ParseDateQuery(c *gin.Context, key string) (time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse("2006-01-02", val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date, expected YYYY-MM-DD").WithDetail("param", key))
		return time.Time{}, false
	}
	return parsed, true
}

// Created sends a 201 response with the created ID.
func (h *BaseHandler) Created(c *gin.Context, createdID string) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: createdID})
}

// OK sends a 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Success sends a 200 response with a message.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
