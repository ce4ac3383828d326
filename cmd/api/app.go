package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/erp-educacional/docs"
	"github.com/hugohenrick/erp-educacional/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-educacional/internal/adapter/api/route"
	"github.com/hugohenrick/erp-educacional/internal/adapter/repository"
	"github.com/hugohenrick/erp-educacional/internal/domain/discount"
	"github.com/hugohenrick/erp-educacional/internal/domain/pricelist"
	"github.com/hugohenrick/erp-educacional/internal/infrastructure/database"
	"github.com/hugohenrick/erp-educacional/internal/infrastructure/scheduler"
	"github.com/hugohenrick/erp-educacional/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router    *gin.Engine
	db        *pgxpool.Pool
	logger    logger.Logger
	scheduler *scheduler.VigencyScheduler
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados
	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Criar repositórios
	siteRepo := repository.NewSiteRepository(db)
	populationRepo := repository.NewPopulationRepository(db)
	productRepo := repository.NewProductRepository(db)
	referenceResolver := repository.NewReferenceResolver(db)
	priceListRepo := repository.NewPriceListRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	applicationRepo := repository.NewDiscountApplicationRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Serviços de domínio
	vigencyValidator := pricelist.NewVigencyValidator(priceListRepo)
	eligibilityResolver := discount.NewEligibilityResolver(discountRepo, siteRepo)

	// Criar controllers
	siteController := controller.NewSiteController(siteRepo, log)
	populationController := controller.NewPopulationController(populationRepo, siteRepo, log)
	productController := controller.NewProductController(productRepo, referenceResolver, log)
	priceListController := controller.NewPriceListController(priceListRepo, productRepo, vigencyValidator, log)
	discountController := controller.NewDiscountController(discountRepo, applicationRepo, eligibilityResolver, log)
	receiptController := controller.NewReceiptController(receiptRepo, log)
	authController := controller.NewAuthController(userRepo, log)
	userController := controller.NewUserController(userRepo, log)

	// Agendador de vigências
	vigencyScheduler := scheduler.NewVigencyScheduler(priceListRepo, discountRepo, vigencyValidator, time.Minute, log)

	// Configurar router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	app := &App{
		router:    router,
		db:        db,
		logger:    log,
		scheduler: vigencyScheduler,
	}

	api := router.Group("/api/v1")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, authController)
	route.SetupUserRoutes(api, userController)
	route.RegisterSiteRoutes(api, siteController)
	route.RegisterPopulationRoutes(api, populationController)
	route.RegisterProductRoutes(api, productController)
	route.RegisterPriceListRoutes(api, priceListController)
	route.RegisterDiscountRoutes(api, discountController)
	route.RegisterReceiptRoutes(api, receiptController)

	// Documentação Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return app, nil
}

// StartScheduler inicia o agendador de vigências em segundo plano
func (a *App) StartScheduler(ctx context.Context) {
	go a.scheduler.Start(ctx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
