package apperrors

import (
	"net/http"
)

/*
Factories and predeclared variables for the domain errors of the platform.
Repository sentinel errors (gorm.ErrRecordNotFound and friends) are wrapped
into AppError by services using the factories below.
*/

// =========================================================================
// Factory functions (wrapping repository errors)
// =========================================================================

// ErrNotFound wraps a repository "not found" error (404).
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a repository uniqueness violation (409).
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Factory functions (fresh errors)
// =========================================================================

// ErrInvalidOperation builds a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 409 for status-machine violations.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// =========================================================================
// Predeclared variables (frequent, static errors)
// =========================================================================

// --- Auth & account status ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken covers refresh, verification and reset tokens. The auth
// service returns it for unknown, revoked and expired tokens alike.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// --- Catalog ---

var ErrTemplateNotFound = New(
	CodeNotFound,
	"catalog",
	"Calculation template not found",
	http.StatusNotFound,
)

var ErrMaterialNotFound = New(
	CodeNotFound,
	"catalog",
	"Material not found",
	http.StatusNotFound,
)

var ErrMaterialInactive = New(
	CodeInvalidOperation,
	"catalog",
	"Material is no longer available",
	http.StatusBadRequest,
)

var ErrInsufficientStock = New(
	CodeConflict,
	"catalog",
	"Not enough stock for the requested quantity",
	http.StatusConflict,
)

// --- Orders & invoices ---

var ErrOrderNotFound = New(
	CodeNotFound,
	"orders",
	"Order not found",
	http.StatusNotFound,
)

var ErrEmptyOrder = New(
	CodeValidationFailed,
	"orders",
	"Order must contain at least one item",
	http.StatusBadRequest,
)

var ErrInvoiceNotFound = New(
	CodeNotFound,
	"invoices",
	"Invoice not found",
	http.StatusNotFound,
)

var ErrInvoiceAlreadyIssued = New(
	CodeConflict,
	"invoices",
	"An invoice has already been issued for this order",
	http.StatusConflict,
)

// --- Budgets & projects ---

var ErrBudgetNotFound = New(
	CodeNotFound,
	"budgets",
	"Budget not found",
	http.StatusNotFound,
)

var ErrProjectNotFound = New(
	CodeNotFound,
	"projects",
	"Project not found",
	http.StatusNotFound,
)

var ErrPhaseNotFound = New(
	CodeNotFound,
	"projects",
	"Project phase not found",
	http.StatusNotFound,
)

var ErrTaskNotFound = New(
	CodeNotFound,
	"projects",
	"Project task not found",
	http.StatusNotFound,
)

// --- Recommendations ---

var ErrRecommendationNotFound = New(
	CodeNotFound,
	"recommendations",
	"Recommendation not found",
	http.StatusNotFound,
)

var ErrInvalidInteractionType = New(
	CodeValidationFailed,
	"recommendations",
	"Invalid interaction type",
	http.StatusBadRequest,
)
