package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/pkg/auth"
)

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	userRouter := router.Group("/users")
	userRouter.Use(auth.JWTAuthMiddleware())
	{
		// Alteração da própria senha (qualquer usuário autenticado)
		userRouter.PUT("/password", userController.ChangePassword)

		// Gestão de usuários (apenas administradores)
		admin := userRouter.Group("")
		admin.Use(auth.RoleAuthMiddleware("admin"))
		{
			admin.POST("", userController.Create)
			admin.GET("", userController.List)
			admin.GET("/:id", userController.Get)
			admin.PUT("/:id", userController.Update)
			admin.DELETE("/:id", userController.Delete)
			admin.PATCH("/:id/status", userController.UpdateStatus)
		}
	}
}
