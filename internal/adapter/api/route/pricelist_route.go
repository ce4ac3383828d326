package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
)

// RegisterPriceListRoutes registra as rotas do módulo de listas de preço
func RegisterPriceListRoutes(r *gin.RouterGroup, priceListController *controller.PriceListController) {
	priceLists := r.Group("/price-lists")
	priceLists.Use(auth.JWTAuthMiddleware())
	{
		priceLists.POST("", priceListController.Create)
		priceLists.GET("", priceListController.List)
		priceLists.GET("/:id", priceListController.Get)
		priceLists.PUT("/:id", priceListController.Update)
		priceLists.DELETE("/:id", priceListController.Delete)

		// Ciclo de vida e validação de vigência
		priceLists.POST("/:id/approve", auth.RoleAuthMiddleware("admin", "manager"), priceListController.Approve)
		priceLists.POST("/:id/deactivate", auth.RoleAuthMiddleware("admin", "manager"), priceListController.Deactivate)
		priceLists.GET("/:id/validate-vigency", priceListController.ValidateVigency)

		// Preços por produto dentro da lista
		priceLists.PUT("/:id/prices", priceListController.SavePrice)
		priceLists.GET("/:id/prices/:productId", priceListController.GetPrice)
		priceLists.DELETE("/:id/prices/:productId", priceListController.DeletePrice)
	}
}
