package validator

import (
	"log"

	"constru_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain enum rules. Empty values pass:
// presence is the job of the 'required' tag.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule failing to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-order-status", validateOrderStatus)
	mustRegister("is-budget-status", validateBudgetStatus)
	mustRegister("is-task-status", validateTaskStatus)
	mustRegister("is-recommendation-status", validateRecommendationStatus)
	mustRegister("is-interaction-type", validateInteractionType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleCustomer, models.UserRoleSupplier, models.UserRoleAdmin:
		return true
	}
	return false
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.OrderStatus(value) {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

func validateBudgetStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BudgetStatus(value) {
	case models.BudgetStatusDraft, models.BudgetStatusApproved, models.BudgetStatusRejected:
		return true
	}
	return false
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.TaskStatus(value) {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusDone:
		return true
	}
	return false
}

func validateRecommendationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RecommendationStatus(value) {
	case models.RecommendationStatusActive, models.RecommendationStatusDismissed,
		models.RecommendationStatusConverted, models.RecommendationStatusExpired:
		return true
	}
	return false
}

func validateInteractionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.InteractionType(value) {
	case models.InteractionTypeView, models.InteractionTypeClick,
		models.InteractionTypeConvert, models.InteractionTypeDismiss:
		return true
	}
	return false
}
