package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
)

// RegisterSiteRoutes registra as rotas do módulo de sedes
func RegisterSiteRoutes(r *gin.RouterGroup, siteController *controller.SiteController) {
	sites := r.Group("/sites")
	sites.Use(auth.JWTAuthMiddleware())
	{
		sites.POST("", auth.RoleAuthMiddleware("admin"), siteController.Create)
		sites.GET("", siteController.List)
		sites.GET("/:id", siteController.Get)
		sites.PUT("/:id", auth.RoleAuthMiddleware("admin"), siteController.Update)
		sites.DELETE("/:id", auth.RoleAuthMiddleware("admin"), siteController.Delete)
		sites.PATCH("/:id/prefixes", auth.RoleAuthMiddleware("admin"), siteController.ConfigurePrefixes)
	}
}

// RegisterPopulationRoutes registra as rotas do módulo de populações
func RegisterPopulationRoutes(r *gin.RouterGroup, populationController *controller.PopulationController) {
	populations := r.Group("/populations")
	populations.Use(auth.JWTAuthMiddleware())
	{
		populations.POST("", auth.RoleAuthMiddleware("admin"), populationController.Create)
		populations.GET("", populationController.List)
		populations.GET("/:id", populationController.Get)
		populations.GET("/:id/sites", populationController.Sites)
		populations.PUT("/:id", auth.RoleAuthMiddleware("admin"), populationController.Update)
		populations.DELETE("/:id", auth.RoleAuthMiddleware("admin"), populationController.Delete)
	}
}
