package http

import (
	"context"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/application/activity/dto"
	"github.com/orris-inc/tracker/internal/application/common"
	issueUsecases "github.com/orris-inc/tracker/internal/application/issue/usecases"
	permissionUsecases "github.com/orris-inc/tracker/internal/application/permission/usecases"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/infrastructure/auth"
	"github.com/orris-inc/tracker/internal/infrastructure/config"
	"github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/pubsub"
	"github.com/orris-inc/tracker/internal/infrastructure/services"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
	shareddb "github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/goroutine"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/services/markdown"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and owns the background relay.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Shared services
	txMgr       *shareddb.TransactionManager
	enforcer    *permission.Enforcer
	access      *common.Access
	subjects    *permissionUsecases.SubjectDirectory
	jwtSvc      *auth.JWTService
	hasher      *auth.BcryptPasswordHasher
	renderer    markdown.Renderer
	dispatcher  notification.Dispatcher
	publisher   notification.Publisher
	unreadCache issue.UnreadCache
	readTracker *issueUsecases.ReadTracker

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Live activity
	activityHub   *services.ActivityHub
	activityRelay *pubsub.RedisActivityRelay
	relayCancel   context.CancelFunc
	relayMu       sync.Mutex
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartRelay delivers activity published by other instances to the local hub.
// It is a no-op without Redis.
func (c *Container) StartRelay() {
	if c.activityRelay == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.relayMu.Lock()
	c.relayCancel = cancel
	c.relayMu.Unlock()

	goroutine.SafeGo(c.log, "activity-relay", func() {
		err := c.activityRelay.Subscribe(ctx, func(msg *dto.ActivityMessage) {
			c.activityHub.Broadcast(msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			c.log.Errorw("activity relay stopped", "error", err)
		}
	})
	c.log.Infow("activity relay started", "channel", c.cfg.Activity.RelayChannel)
}

// Shutdown stops background work and closes live connections and Redis.
func (c *Container) Shutdown() {
	c.relayMu.Lock()
	if c.relayCancel != nil {
		c.relayCancel()
		c.relayCancel = nil
	}
	c.relayMu.Unlock()

	// Close websocket listeners first so the HTTP server can drain quickly
	if c.activityHub != nil {
		c.activityHub.Shutdown()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
