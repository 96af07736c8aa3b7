package routes

import (
	"net/http"

	"constru_backend/internal/handlers"
	"constru_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts the full API under /api/v1.
//
// Three tiers: public (no auth, optional identity for search logging),
// protected (valid access token), admin (admin role on top of protected).
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	public := api.Group("", middleware.OptionalAuthMiddleware())
	protected := api.Group("", middleware.AuthMiddleware())
	admin := protected.Group("", middleware.RequireRoles("admin"))

	h.Auth.RegisterRoutes(public, protected)
	h.User.RegisterRoutes(protected, admin)
	h.Material.RegisterRoutes(public, admin)
	h.Template.RegisterRoutes(public, protected)
	h.Order.RegisterRoutes(protected)
	h.Invoice.RegisterRoutes(protected, admin)
	h.Budget.RegisterRoutes(protected)
	h.Project.RegisterRoutes(protected)
	h.Recommendation.RegisterRoutes(protected)
}
