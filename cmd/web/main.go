package main

import (
	"constru_backend/internal/app"
	"constru_backend/internal/logger"

	_ "constru_backend/docs"
)

// @title           CONSTRU API
// @version         1.0
// @description     Construction materials marketplace: catalog, orders, invoices, budgets, projects and personalized recommendations.

// @contact.name   CONSTRU Backend Team

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	application, err := app.New()
	if err != nil {
		logger.Fatal("failed to start application", "error", err.Error())
	}

	if err := application.Run(); err != nil {
		logger.Fatal("server exited with error", "error", err.Error())
	}
}
