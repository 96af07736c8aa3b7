package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"constru_backend/internal/validator"
	"constru_backend/pkg/apperrors"
	"constru_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the auth middleware.
const (
	ContextUserIDKey   = "user_id"
	ContextUserRoleKey = "user_role"
)

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PageMeta describes one page of a list response.
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// PaginatedResponse is the list envelope.
type PaginatedResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    PageMeta    `json:"meta"`
}

// BaseHandler carries the pieces every handler needs: request validation
// and access to the request-scoped DB handle.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{validator: validator.New()}
}

// GetDB pulls the *gorm.DB that the DB middleware attached to the request.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	value, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil
	}
	db, ok := value.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// BindAndValidateJSON binds the JSON body and runs struct validation.
// On failure the error response is already written and false is returned.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidateQuery binds query parameters and runs struct validation.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if err := h.validator.Validate(obj); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			apperrors.HandleError(c, apperrors.ValidationError(validationErr.Errors))
		} else {
			apperrors.HandleError(c, err)
		}
		return false
	}
	return true
}

// HandleServiceError writes the error envelope for a service failure.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// GetUserID returns the authenticated user's ID. Handlers behind the auth
// middleware can rely on it; a missing ID writes a 401 and returns false.
func (h *BaseHandler) GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserIDKey)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

// IsAdmin reports whether the request carries the admin role.
func (h *BaseHandler) IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextUserRoleKey) == "admin"
}

// ParsePagination reads page/pageSize with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// parsePositiveInt parses a strictly positive integer query value.
func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, errors.New("value must be positive")
	}
	return value, nil
}

// RespondOK writes a 200 with the success envelope.
func (h *BaseHandler) RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// RespondCreated writes a 201 with the success envelope.
func (h *BaseHandler) RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// RespondAccepted writes a 202 for work finishing in the background.
func (h *BaseHandler) RespondAccepted(c *gin.Context, message string) {
	c.JSON(http.StatusAccepted, SuccessResponse{Success: true, Message: message})
}

// RespondMessage writes a 200 with a message instead of data.
func (h *BaseHandler) RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message})
}

// RespondPaginated writes a 200 list envelope with page metadata.
func (h *BaseHandler) RespondPaginated(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Meta:    PageMeta{Total: total, Page: page, PageSize: pageSize},
	})
}
