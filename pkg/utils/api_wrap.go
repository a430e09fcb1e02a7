package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithCode(c, http.StatusOK, data, message)
}

func RespondWithCode(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

// HandleServiceError maps service errors onto the API envelope.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, ErrTripNotFound):
		RespondError(c, http.StatusNotFound, "Trip not found")
	case errors.Is(err, ErrSessionBusy):
		RespondError(c, http.StatusConflict, "A request is already in progress for this session")
	case errors.Is(err, ErrInvalidTripRequest):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrLocationMissing):
		RespondError(c, http.StatusBadRequest, "A destination is required")
	case errors.Is(err, ErrLocationUnresolved):
		RespondError(c, http.StatusUnprocessableEntity, "The destination could not be found")
	case errors.Is(err, ErrMalformedStructuredResponse):
		logger.Warn("generated plan could not be parsed", zap.String("trace_id", traceIDFrom(c)), zap.Error(err))
		RespondError(c, http.StatusBadGateway, "The travel plan could not be generated, please try again")
	case errors.Is(err, ErrProviderUnavailable):
		logger.Warn("provider unavailable", zap.String("trace_id", traceIDFrom(c)), zap.Error(err))
		RespondError(c, http.StatusServiceUnavailable, "A travel data provider is unavailable, please try again")
	case errors.Is(err, ErrRequestCancelled):
		// 499 mirrors nginx's client-closed-request code
		RespondError(c, 499, "Request cancelled")
	case errors.Is(err, ErrDatabaseError):
		logger.Error("database error", zap.String("trace_id", traceIDFrom(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.Error("unknown error", zap.String("trace_id", traceIDFrom(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
