package services

import (
	"constru_backend/internal/cache"
	"constru_backend/internal/email"
	"constru_backend/internal/repositories"
)

// ServiceContainer wires repositories into services. One container is built
// at startup and shared by every handler.
type ServiceContainer struct {
	Auth           AuthService
	User           UserService
	Material       MaterialService
	Template       TemplateService
	Order          OrderService
	Invoice        InvoiceService
	Budget         BudgetService
	Project        ProjectService
	Recommendation RecommendationService
}

func NewServiceContainer(c *cache.Cache, mail email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewRefreshTokenRepository()
	materialRepo := repositories.NewMaterialRepository()
	templateRepo := repositories.NewTemplateRepository()
	favoriteRepo := repositories.NewUserFavoriteRepository()
	orderRepo := repositories.NewOrderRepository()
	invoiceRepo := repositories.NewInvoiceRepository()
	budgetRepo := repositories.NewBudgetRepository()
	projectRepo := repositories.NewProjectRepository()
	recRepo := repositories.NewRecommendationRepository()

	return &ServiceContainer{
		Auth:           NewAuthService(userRepo, tokenRepo, mail),
		User:           NewUserService(userRepo, tokenRepo),
		Material:       NewMaterialService(materialRepo, recRepo),
		Template:       NewTemplateService(templateRepo, favoriteRepo),
		Order:          NewOrderService(orderRepo, materialRepo),
		Invoice:        NewInvoiceService(invoiceRepo, orderRepo, userRepo, mail),
		Budget:         NewBudgetService(budgetRepo, materialRepo),
		Project:        NewProjectService(projectRepo),
		Recommendation: NewRecommendationService(recRepo, orderRepo, projectRepo, favoriteRepo, c),
	}
}
