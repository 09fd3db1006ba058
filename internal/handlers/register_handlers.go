package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/pos_ledger/cmd/docs"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/SscSPs/pos_ledger/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	RegisterValidators()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group behind the rate limit and
// authentication, then delegates to the entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	if !cfg.AuthEnabled {
		slog.Warn("Authentication disabled, attributing requests to the default user", slog.String("user_id", cfg.DefaultUserID))
		authMiddleware = middleware.StaticUserMiddleware(cfg.DefaultUserID)
	}

	v1 := r.Group("/api/v1", middleware.RateLimit(rateLimiter), authMiddleware)
	RegisterV1Routes(v1, service)
	return nil
}

// RegisterV1Routes registers every entity route group on rg.
func RegisterV1Routes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerAccountRoutes(rg, service.Account, service.Reporting)
	registerJournalRoutes(rg, service.Journal)
	registerSalesRoutes(rg, service.Sales)
	registerProductRoutes(rg, service.Inventory)
	registerEmployeeRoutes(rg, service.Payroll)
	registerJobRoutes(rg, service.Jobs)
	registerExpenseRoutes(rg, service.Expense)
	registerCustomerRoutes(rg, service.Customer)
	registerSettingsRoutes(rg, service.Settings)
	registerReportingRoutes(rg, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
