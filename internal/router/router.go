package router

import (
	"time"

	"voltstock/internal/config"
	"voltstock/internal/handler"
	"voltstock/internal/infra"
	"voltstock/internal/middleware"
	"voltstock/internal/repository"
	"voltstock/internal/service"
	"voltstock/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	stockRepo := repository.NewStockRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	pendingRepo := repository.NewPendingRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, rdb, cfg)
	stockSvc := service.NewStockService(stockRepo, categoryRepo, rdb, cfg.LowStockThreshold)
	saleSvc := service.NewSaleService(saleRepo, rdb, cfg.ShopName)
	pendingSvc := service.NewPendingService(pendingRepo, stockRepo, saleRepo, dispatcher, cfg.LowStockThreshold)
	categorySvc := service.NewCategoryService(categoryRepo, stockRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	stockH := handler.NewStockHandler(stockSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	pendingH := handler.NewPendingHandler(pendingSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	transferH := handler.NewTransferHandler(stockSvc, saleSvc, pendingSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/signin", middleware.LoginRateLimiter(), authH.SignIn)
		auth.POST("/signup", middleware.LoginRateLimiter(), authH.SignUp)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, rdb)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/signout", authH.SignOut)
		v1.GET("/auth/session", authH.Session)

		// Stock — all authenticated users read and write the list
		stock := v1.Group("/stock")
		{
			stock.GET("", stockH.List)
			stock.POST("", stockH.Create)
			stock.PUT("/:id", stockH.Update)
			stock.DELETE("/:id", stockH.Delete)
			stock.GET("/summary", stockH.Summary)
			stock.GET("/export.csv", transferH.ExportStock)
			stock.POST("/import", transferH.ImportStock)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", salesH.List)
			sales.POST("", salesH.Create)
			sales.PUT("/:id", salesH.Update)
			sales.DELETE("/:id", salesH.Delete)
			sales.GET("/summary", salesH.Summary)
			sales.GET("/export.csv", transferH.ExportSales)
			sales.POST("/import", transferH.ImportSales)
			sales.GET("/report.pdf", salesH.Report)
		}

		pending := v1.Group("/pending")
		{
			pending.GET("", pendingH.List)
			pending.POST("", pendingH.Create)
			pending.PUT("/:id", pendingH.Save)
			pending.DELETE("/:id", pendingH.Delete)
			pending.GET("/summary", pendingH.Summary)
			pending.GET("/export.csv", transferH.ExportPending)
			pending.POST("/import", transferH.ImportPending)
		}

		// Categories — admin can write, all authenticated can read
		v1.GET("/categories", categoriesH.List)
		categories := v1.Group("/categories", middleware.RequireRole("admin"))
		{
			categories.POST("", categoriesH.Create)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
