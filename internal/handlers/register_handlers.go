package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/balance_dashboard/cmd/dashboard_backend/docs"
	portssvc "github.com/SscSPs/balance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/SscSPs/balance_dashboard/internal/platform/config"
	"github.com/SscSPs/balance_dashboard/internal/utils"
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
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// apiV1Middleware returns the middleware chain of the /api/v1 group: rate limiting,
// then the API key and JWT gates when auth is enabled.
func apiV1Middleware(cfg *config.Config) ([]gin.HandlerFunc, error) {
	var chain []gin.HandlerFunc
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to configure rate limiting: %w", err)
		}
		chain = append(chain, middleware.RateLimit(limiter))
	}
	if cfg.AuthEnabled {
		chain = append(chain,
			middleware.APIKeyAuth(cfg.APIKeyHash),
			middleware.AuthMiddleware(utils.TokenIssuer{
				Secret: cfg.JWTSecret,
				Issuer: cfg.JWTIssuer,
				Expiry: cfg.JWTExpiryDuration,
			}),
		)
	}
	return chain, nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	chain, err := apiV1Middleware(cfg)
	if err != nil {
		return err
	}
	v1 := r.Group("/api/v1", chain...)

	registerAccountRoutes(v1, service.Account)
	registerLabelRoutes(v1, service.Label)
	registerRecordRoutes(v1, service.Record)
	registerEntityRoutes(v1, service.Entities)
	registerCurrencyRoutes(v1, service.Currency)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
	registerOptionsRoutes(v1, service.Options)
	registerDashboardRoutes(v1, service.Dashboard)
	return nil
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
