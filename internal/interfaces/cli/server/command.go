package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/bookstore-vn/bookstore/internal/infrastructure/cache"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/config"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/database"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/metrics"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/migration"
	httpRouter "github.com/bookstore-vn/bookstore/internal/interfaces/http"
	"github.com/bookstore-vn/bookstore/internal/shared/biztime"
	sharedConfig "github.com/bookstore-vn/bookstore/internal/shared/config"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the bookstore checkout and VNPay payment HTTP server.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup (always on for sqlite)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(mapEnvToGinMode(env), configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"database_driver", cfg.Database.Driver,
		"vnpay_url", cfg.VNPay.URL,
		"tmn_code", cfg.VNPay.TmnCode)

	// vnp_CreateDate and vnp_PayDate are wall-clock times in this zone.
	if err := biztime.Init(cfg.VNPay.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cfg, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	metrics.Setup(cfg.Metrics, log.Named("metrics"))

	opts := []httpRouter.Option{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		opts = append(opts, httpRouter.WithRedis(redisClient))
		log.Infow("redis connected", "addr", cfg.Redis.GetAddr())
	} else {
		log.Warnw("redis not configured, vnpay callbacks rely on database idempotency only")
	}

	container := httpRouter.NewContainer(database.Get(), cfg, log, opts...)
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	if err := container.Shutdown(ctx); err != nil {
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if cfg.Database.Driver != sharedConfig.DriverSQLite && !autoMigrate {
		version, err := migration.NewGooseStrategy(migration.Scripts, log).GetVersion(database.Get())
		if err != nil {
			log.Warnw("failed to check migration status", "error", err)
			return nil
		}
		log.Infow("current migration version", "version", version)
		return nil
	}

	if env == "production" && cfg.Database.Driver != sharedConfig.DriverSQLite {
		log.Warnw("auto-migration is enabled in production")
	}

	strategy := migration.NewStrategy(cfg.Database.Driver, log)
	log.Infow("running migrations", "strategy", strategy.GetName())
	return strategy.Migrate(database.Get())
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
