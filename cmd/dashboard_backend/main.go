package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portsrepo "github.com/SscSPs/balance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/balance_dashboard/internal/core/services"
	"github.com/SscSPs/balance_dashboard/internal/handlers"
	"github.com/SscSPs/balance_dashboard/internal/middleware"
	"github.com/SscSPs/balance_dashboard/internal/platform/config"
	"github.com/SscSPs/balance_dashboard/internal/repositories/database/mongodb"
	"github.com/SscSPs/balance_dashboard/internal/repositories/database/pgsql"
	"github.com/SscSPs/balance_dashboard/internal/utils"
	"github.com/SscSPs/balance_dashboard/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Balance Dashboard API
// @version 1.0
// @description Account balances, labels and exchange rates, compiled into dashboard views.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		if err := runCommand(cfg, os.Args[1:]); err != nil {
			logger.Error("Command failed", slog.String("command", os.Args[1]), slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg, logger); err != nil {
		logger.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runCommand handles the maintenance subcommands:
//
//	issue-token <subject>   print a signed bearer token
//	hash-api-key [key]      print a bcrypt hash for API_KEY_HASH, generating a key when none is given
func runCommand(cfg *config.Config, args []string) error {
	switch args[0] {
	case "issue-token":
		if len(args) < 2 {
			return errors.New("usage: issue-token <subject>")
		}
		issuer := utils.TokenIssuer{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, Expiry: cfg.JWTExpiryDuration}
		token, err := issuer.Issue(args[1])
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	case "hash-api-key":
		key := ""
		if len(args) > 1 {
			key = args[1]
		} else {
			generated, err := utils.GenerateAPIKey()
			if err != nil {
				return err
			}
			key = generated
			fmt.Println("key: " + key)
		}
		hash, err := utils.HashAPIKey(key)
		if err != nil {
			return err
		}
		fmt.Println("hash: " + hash)
		return nil
	default:
		return fmt.Errorf("unknown command %q (want issue-token or hash-api-key)", args[0])
	}
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	repos, closeStore, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader)
		corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Remaining", "Content-Disposition"}
		r.Use(cors.New(corsConfig))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos)
	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openRepositories connects the configured storage driver and returns its repositories
// with a function releasing the connection.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := mongodb.ConnectToMongoDB(ctx, cfg.MongoURI, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Failed to disconnect from MongoDB", slog.String("error", err.Error()))
			}
		}
		if err := mongodb.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
			closeFn()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		provider := mongodb.NewMongoProvider(client, cfg.MongoDatabase)
		return mongodb.NewRepositoryProvider(provider), closeFn, nil

	default:
		if cfg.RunMigrations {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, database.WithMaxConns(cfg.DBMaxConns))
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	}
}
