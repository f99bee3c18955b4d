package handlers

import (
	"fmt"

	"github.com/ginagrosso/biblioteca/docs"
	portssvc "github.com/ginagrosso/biblioteca/internal/core/ports/services"
	"github.com/ginagrosso/biblioteca/internal/middleware"
	"github.com/ginagrosso/biblioteca/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db Pinger,
) error {
	r.GET("/health", healthCheck(db))

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid login rate limit %q: %w", cfg.LoginRateLimit, err)
	}
	registerAuthRoutes(r, loginLimiter, services.Auth)

	apiLimiter, err := middleware.NewMemoryLimiter(cfg.APIRateLimit)
	if err != nil {
		return fmt.Errorf("invalid API rate limit %q: %w", cfg.APIRateLimit, err)
	}
	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(apiLimiter))

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", rateLimit, middleware.AuthMiddleware(cfg.JWTSecret))

	registerLibrarianRoutes(v1, services.Auth)
	registerBookRoutes(v1, services.Catalog)
	registerCopyRoutes(v1, services.Catalog)
	registerMemberRoutes(v1, services.Membership)
	registerLoanRoutes(v1, services.Loan)
	registerFineRoutes(v1, services.Fine)
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
