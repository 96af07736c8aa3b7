package handlers

import "constru_backend/internal/services"

// AppHandlers bundles every HTTP handler of the application.
type AppHandlers struct {
	Auth           *AuthHandler
	User           *UserHandler
	Material       *MaterialHandler
	Template       *TemplateHandler
	Order          *OrderHandler
	Invoice        *InvoiceHandler
	Budget         *BudgetHandler
	Project        *ProjectHandler
	Recommendation *RecommendationHandler
}

func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler()

	return &AppHandlers{
		Auth:           NewAuthHandler(base, sc.Auth),
		User:           NewUserHandler(base, sc.User),
		Material:       NewMaterialHandler(base, sc.Material),
		Template:       NewTemplateHandler(base, sc.Template),
		Order:          NewOrderHandler(base, sc.Order),
		Invoice:        NewInvoiceHandler(base, sc.Invoice),
		Budget:         NewBudgetHandler(base, sc.Budget),
		Project:        NewProjectHandler(base, sc.Project),
		Recommendation: NewRecommendationHandler(base, sc.Recommendation),
	}
}
