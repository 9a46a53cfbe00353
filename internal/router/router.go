package router

import (
	"time"

	"stockledger/internal/config"
	"stockledger/internal/handler"
	"stockledger/internal/infra"
	"stockledger/internal/middleware"
	"stockledger/internal/repository"
	"stockledger/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	stockCache := infra.NewStockCache(rdb, time.Duration(cfg.StockCacheTTLSeconds)*time.Second)

	// ── Repositories ─────────────────────────────────────────────────────────
	partRepo := repository.NewPartRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(partRepo, locationRepo, inventoryRepo)
	ledgerSvc := service.NewLedgerService(partRepo, locationRepo, inventoryRepo, stockCache)
	reportSvc := service.NewReportService(partRepo, inventoryRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	partsH := handler.NewPartsHandler(catalogSvc)
	locationsH := handler.NewLocationsHandler(catalogSvc)
	inventoryH := handler.NewInventoryHandler(ledgerSvc)
	reportsH := handler.NewReportsHandler(reportSvc, stockCache)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		parts := v1.Group("/parts")
		{
			parts.POST("", partsH.Create)
			parts.GET("", partsH.List)
			parts.DELETE("/:id", partsH.Delete)
		}

		locations := v1.Group("/locations")
		{
			locations.POST("", locationsH.Create)
			locations.GET("", locationsH.List)
			locations.DELETE("/:id", locationsH.Delete)
		}

		inv := v1.Group("/inventory")
		{
			inv.POST("", inventoryH.MergeCreate)
			inv.POST("/adjust", inventoryH.Adjust)
			inv.POST("/move", inventoryH.Move)
			inv.GET("/full", reportsH.FullDetail)
			inv.GET("/aggregated", reportsH.AggregatedByPart)
		}

		// Availability lookup — read-only, no side effects
		v1.GET("/stock/:part_number", reportsH.StockCheck)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
