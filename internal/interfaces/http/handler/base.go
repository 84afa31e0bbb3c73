package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/attcrm/backend/internal/domain/shared"
	"github.com/attcrm/backend/internal/infrastructure/logger"
	"github.com/attcrm/backend/internal/interfaces/http/dto"
	"github.com/attcrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Messages for failures that never reach the domain
const (
	msgInvalidBody  = "Invalid request body."
	msgBodyTooLarge = "Request body is too large."
	msgInternal     = "An unexpected error occurred"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the status code derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// HandleError converts domain errors to their status and message; anything
// else is logged and answered with a generic 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("request failed", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, msgInternal)
}

// BindJSON decodes the request body into obj and answers the error itself
// when it returns false. An empty body decodes as {}.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		h.Error(c, dto.ErrCodeBodyTooLarge, msgBodyTooLarge)
	case middleware.ValidationMessage(err) != "":
		h.Error(c, dto.ErrCodeValidation, middleware.ValidationMessage(err))
	default:
		h.Error(c, dto.ErrCodeInvalidJSON, msgInvalidBody)
	}
	return false
}

// BindURI binds path parameters and answers validation failures itself
func (h *BaseHandler) BindURI(c *gin.Context, obj any) bool {
	if err := c.ShouldBindUri(obj); err != nil {
		msg := middleware.ValidationMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		h.Error(c, dto.ErrCodeValidation, msg)
		return false
	}
	return true
}
