package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
)

// RegisterDiscountRoutes registra as rotas do módulo de descontos
func RegisterDiscountRoutes(r *gin.RouterGroup, discountController *controller.DiscountController) {
	discounts := r.Group("/discounts")
	discounts.Use(auth.JWTAuthMiddleware())
	{
		discounts.POST("", discountController.Create)
		discounts.GET("", discountController.List)
		discounts.GET("/:id", discountController.Get)
		discounts.PUT("/:id", discountController.Update)
		discounts.DELETE("/:id", auth.RoleAuthMiddleware("admin"), discountController.Delete)

		// Ciclo de vida
		discounts.POST("/:id/approve", auth.RoleAuthMiddleware("admin", "manager"), discountController.Approve)
		discounts.POST("/:id/deactivate", auth.RoleAuthMiddleware("admin", "manager"), discountController.Deactivate)

		// Elegibilidade, simulação e aplicação
		discounts.POST("/eligible", discountController.Eligible)
		discounts.POST("/simulate", discountController.Simulate)
		discounts.POST("/apply", discountController.Apply)
		discounts.GET("/:id/applications", discountController.Applications)
	}
}
