package container

import (
	"context"
	"time"

	"hackadmin/internal/backend"
	"hackadmin/internal/config"
	"hackadmin/internal/repository"
	"hackadmin/internal/service"
	"hackadmin/pkg/database"
	"hackadmin/pkg/logger"
	"hackadmin/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	Backend     *backend.Client
	RedisClient *redis.Client
	DB          *database.PostgresDB
	Services    *service.Services
}

// New creates a new dependency injection container. Redis and Postgres are
// optional: without them the console runs uncached with an in-memory audit log.
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	var (
		db        *database.PostgresDB
		auditRepo repository.AuditRepository
	)
	if cfg.DatabaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, err := database.NewPostgresDB(dbCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to audit database, keeping the audit log in memory")
		} else {
			db = conn
			auditRepo = repository.NewPostgresAuditRepository(db)
			logger.Info("Audit database connected")
		}
	} else {
		logger.Info("Database URL not configured, keeping the audit log in memory")
	}

	client := backend.NewClient(cfg, logger)
	services := NewServices(client, redisClient, auditRepo, cfg, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Backend:     client,
		RedisClient: redisClient,
		DB:          db,
		Services:    services,
	}, nil
}

// NewServices wires every console service around a backend. Tests pass a
// mock backend here.
func NewServices(b service.Backend, redisClient *redis.Client, auditRepo repository.AuditRepository, cfg *config.Config, logger *logger.Logger) *service.Services {
	cache := service.NewCacheService(redisClient, logger.Logger)
	audit := service.NewAuditService(auditRepo, logger)

	teams := service.NewTeamService(b, audit, logger)
	users := service.NewUserService(b, audit, logger)
	assignments := service.NewAssignmentService(b, cache, audit, logger)
	evaluations := service.NewEvaluationService(b, cache, audit, logger)
	pages := service.NewPageService(teams, users, assignments, evaluations, cfg.PageSessionTTL, logger)

	return &service.Services{
		Auth:        service.NewAuthService(b, cfg.JWTSecret, pages, logger),
		Teams:       teams,
		Users:       users,
		Assignments: assignments,
		Judges:      service.NewJudgeService(b, cache, audit, logger),
		Evaluations: evaluations,
		Unassigned:  service.NewUnassignedService(b, logger),
		Panels:      service.NewPanelService(b, cache, audit, logger),
		Dashboard:   service.NewDashboardService(b, cache, cfg.DashboardCacheTTL, logger),
		Settings:    service.NewSettingsService(b, cache, audit, logger),
		Audit:       audit,
		Pages:       pages,
		Cache:       cache,
	}
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// HasDatabase returns true if the audit log is persisted
func (c *Container) HasDatabase() bool {
	return c.DB != nil
}

// Health reports the state of every optional dependency
func (c *Container) Health(ctx context.Context) map[string]string {
	status := map[string]string{"redis": "disabled", "database": "disabled"}
	if c.HasRedis() {
		status["redis"] = "ok"
		if err := c.Services.Cache.HealthCheck(ctx); err != nil {
			status["redis"] = "unhealthy"
		}
	}
	if c.HasDatabase() {
		status["database"] = "ok"
		if err := c.DB.Health(ctx); err != nil {
			status["database"] = "unhealthy"
		}
	}
	return status
}

// Close releases Redis and Postgres
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Error("Failed to close Redis connection")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
