package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope sent to clients.
// Mirrors the success envelope {success, data} used by handlers.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    ErrorCode   `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// GinErrorHandler maps errors onto the HTTP response for Gin.
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError resolves err into an AppError and writes the envelope.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// HandleError is the shortcut used by handlers.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError tries to unwrap err into an *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
