package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
)

// RegisterProductRoutes registra as rotas do módulo de produtos
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController) {
	products := r.Group("/products")
	products.Use(auth.JWTAuthMiddleware())
	{
		products.POST("", productController.Create)
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
		products.GET("/:id/display-name", productController.DisplayName)
		products.PUT("/:id", productController.Update)
		products.DELETE("/:id", productController.Delete)
		products.PATCH("/:id/status", productController.UpdateStatus)
	}
}
