package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bookstore-vn/bookstore/internal/infrastructure/config"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/payment/vnpay"
	"github.com/bookstore-vn/bookstore/internal/interfaces/http/middleware"
	"github.com/bookstore-vn/bookstore/internal/shared/goroutine"
	"github.com/bookstore-vn/bookstore/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases and
// handlers, wired together. Shutdown waits for background work it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	signerOpts []vnpay.SignerOption
	gateway    *vnpay.Gateway
	background *goroutine.Group

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
}

type Option func(*Container)

// WithRedis enables the per-order callback lock.
func WithRedis(client *redis.Client) Option {
	return func(c *Container) {
		c.redis = client
	}
}

// WithSignerOptions passes options to the VNPay request signer.
func WithSignerOptions(opts ...vnpay.SignerOption) Option {
	return func(c *Container) {
		c.signerOpts = append(c.signerOpts, opts...)
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface, opts ...Option) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.background = goroutine.NewGroup(log.Named("background"))
	c.gateway = vnpay.NewGateway(cfg.VNPay, c.signerOpts...)
	c.authMiddleware = middleware.NewAuthMiddleware(log)

	c.initRepositories()
	c.initUseCases()
	c.initHandlers()

	return c
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown waits for background work such as confirmation emails.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.background.Wait(ctx); err != nil {
		c.log.Warnw("background work did not finish before shutdown", "error", err)
		return err
	}
	return nil
}
