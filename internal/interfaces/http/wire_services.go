package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/tracker/internal/application/common"
	issueUsecases "github.com/orris-inc/tracker/internal/application/issue/usecases"
	permissionUsecases "github.com/orris-inc/tracker/internal/application/permission/usecases"
	domainNotification "github.com/orris-inc/tracker/internal/domain/notification"
	"github.com/orris-inc/tracker/internal/infrastructure/auth"
	"github.com/orris-inc/tracker/internal/infrastructure/cache"
	"github.com/orris-inc/tracker/internal/infrastructure/config"
	"github.com/orris-inc/tracker/internal/infrastructure/email"
	"github.com/orris-inc/tracker/internal/infrastructure/notification"
	"github.com/orris-inc/tracker/internal/infrastructure/permission"
	"github.com/orris-inc/tracker/internal/infrastructure/pubsub"
	"github.com/orris-inc/tracker/internal/infrastructure/services"
	"github.com/orris-inc/tracker/internal/infrastructure/template"
	"github.com/orris-inc/tracker/internal/interfaces/http/middleware"
	"github.com/orris-inc/tracker/internal/shared/constants"
	shareddb "github.com/orris-inc/tracker/internal/shared/db"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/services/markdown"
)

// initInfrastructure creates Redis, repositories, the permission oracle and the
// services shared by the use cases.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db)
	c.txMgr = shareddb.NewTransactionManager(c.db)

	enforcer, err := permission.NewEnforcer(c.db, c.repos.userRepo, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer
	c.access = common.NewAccess(c.repos.projectRepo, enforcer, log)
	c.subjects = permissionUsecases.NewSubjectDirectory(c.repos.userRepo, c.repos.groupRepo, c.repos.teamRepo)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	c.renderer = markdown.NewRenderer(cfg.Server.BaseURL)

	c.initActivity()

	dispatcher, err := c.newDispatcher()
	if err != nil {
		return err
	}
	c.dispatcher = dispatcher

	c.readTracker = issueUsecases.NewReadTracker(
		c.repos.issueRepo,
		c.repos.eventRepo,
		c.repos.readStateRepo,
		c.unreadCache,
		c.txMgr,
		log,
	)

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	// A nil *redis.Client must not reach the limiter as a non-nil interface.
	var limiterClient redis.UniversalClient
	if c.redis != nil {
		limiterClient = c.redis
	}
	c.rateLimiter = middleware.NewRateLimiter(limiterClient, constants.RedisKeyLoginRateLimit, cfg.Auth.LoginRateLimit, time.Minute, log)

	return nil
}

func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// initActivity sets up the live activity hub, the unread cache and, with Redis,
// the cross-instance relay.
func (c *Container) initActivity() {
	c.activityHub = services.NewActivityHub(c.log, c.cfg.Server.AllowedOrigins)

	if c.redis == nil {
		c.unreadCache = cache.NoopUnreadCache{}
		c.publisher = services.NewActivityPublisher(c.activityHub, nil, c.log)
		return
	}

	ttl := time.Duration(c.cfg.Redis.UnreadTTLMinutes) * time.Minute
	c.unreadCache = cache.NewRedisUnreadCache(c.redis, ttl, c.log)
	c.activityRelay = pubsub.NewRedisActivityRelay(c.redis, c.cfg.Activity.RelayChannel, c.log)
	c.publisher = services.NewActivityPublisher(c.activityHub, c.activityRelay, c.log)
}

// newDispatcher returns the email dispatcher, or a logging one when
// notifications are disabled.
func (c *Container) newDispatcher() (domainNotification.Dispatcher, error) {
	if !c.cfg.Notification.Enabled {
		c.log.Infow("email notifications disabled")
		return notification.NewLogDispatcher(c.log), nil
	}

	templates := template.NewNotificationTemplates(c.cfg.Notification.TemplatesPath, c.log)
	if err := templates.Load(); err != nil {
		return nil, fmt.Errorf("failed to load notification templates: %w", err)
	}

	sender := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        c.cfg.Email.SMTPHost,
		Port:        c.cfg.Email.SMTPPort,
		Username:    c.cfg.Email.SMTPUser,
		Password:    c.cfg.Email.SMTPPassword,
		FromAddress: c.cfg.Email.FromAddress,
		FromName:    c.cfg.Email.FromName,
	})

	return notification.NewEmailDispatcher(
		c.repos.projectRepo,
		c.repos.projectSubscriberRepo,
		c.repos.issueSubscriberRepo,
		c.repos.userRepo,
		sender,
		templates,
		c.renderer,
		c.cfg.Server.BaseURL,
		c.log,
	), nil
}
