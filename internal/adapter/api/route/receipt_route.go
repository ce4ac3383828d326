package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
)

// RegisterReceiptRoutes registra as rotas do módulo de recibos
func RegisterReceiptRoutes(r *gin.RouterGroup, receiptController *controller.ReceiptController) {
	receipts := r.Group("/receipts")
	receipts.Use(auth.JWTAuthMiddleware())
	receipts.Use(auth.RoleAuthMiddleware("admin", "manager", "cashier"))
	{
		receipts.POST("", receiptController.Create)
		receipts.GET("", receiptController.List)
		receipts.GET("/by-number", receiptController.GetByNumber)
		receipts.GET("/:id", receiptController.Get)
		receipts.PUT("/:id/lines", receiptController.UpdateLines)
		receipts.DELETE("/:id", receiptController.Delete)

		// Ciclo de vida do recibo
		receipts.POST("/:id/issue", receiptController.Issue)
		receipts.POST("/:id/close", receiptController.Close)
		receipts.POST("/:id/void", receiptController.Void)
	}
}
