package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/prefabworks/server/cmd/server/docs" // swagger docs
	"github.com/prefabworks/server/internal/module/notification"
	"github.com/prefabworks/server/internal/module/order"
	"github.com/prefabworks/server/internal/module/product"
	sharedcache "github.com/prefabworks/server/internal/shared/cache"
	"github.com/prefabworks/server/internal/shared/config"
	"github.com/prefabworks/server/internal/shared/database"
	"github.com/prefabworks/server/internal/shared/events"
	"github.com/prefabworks/server/internal/shared/logger"
	"github.com/prefabworks/server/internal/shared/metrics"
	"github.com/prefabworks/server/internal/shared/middleware"
)

// App wires configuration, storage, the event bus and the HTTP modules
// together. Dependencies are constructed by hand in dependency order.
type App struct {
	config *config.Config
	db     *gorm.DB
	redis  redis.UniversalClient
	router *gin.Engine
	logger *zap.Logger

	eventBus   *events.Bus
	kafkaRelay *events.KafkaRelay
	metrics    *metrics.Metrics

	orderHandler        *order.Handler
	productHandler      *product.Handler
	notificationHandler *notification.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	app := &App{
		config: cfg,
		logger: log,
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	if err := db.AutoMigrate(
		&order.Order{},
		&order.OrderItem{},
		&notification.Notification{},
		&product.Product{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// Redis is optional; without it unread counts always hit the database.
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis connection failed, continuing without cache", zap.Error(err))
		} else {
			app.redis = redisClient
		}
	}

	app.metrics = metrics.New("prefabworks")
	app.eventBus = events.NewBus(log)

	app.initModules()
	app.router = app.setupRouter()

	return app, nil
}

// initModules constructs the domain modules and registers event handlers.
func (a *App) initModules() {
	notifRepo := notification.NewRepository(a.db)
	notifService := notification.NewService(notifRepo, a.redis, a.logger)
	a.notificationHandler = notification.NewHandler(notifService)

	dispatcher := notification.NewDispatcher(notifService, a.metrics, a.logger)
	a.eventBus.Register(dispatcher)

	if a.config.Kafka.Enabled() {
		a.kafkaRelay = events.NewKafkaRelay(a.config.Kafka.Brokers, a.config.Kafka.Topic, a.logger)
		a.eventBus.Register(a.kafkaRelay)
		a.logger.Info("kafka relay enabled",
			zap.Strings("brokers", a.config.Kafka.Brokers),
			zap.String("topic", a.config.Kafka.Topic),
		)
	}

	orderRepo := order.NewRepository(a.db)
	orderService := order.NewService(orderRepo, a.eventBus, a.metrics, a.logger)
	a.orderHandler = order.NewHandler(orderService)

	productRepo := product.NewRepository(a.db)
	productService := product.NewService(productRepo, a.logger)
	a.productHandler = product.NewHandler(productService)
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.Actor(a.config.Auth.JWTSecret, false))
	{
		a.orderHandler.RegisterRoutes(api)
		a.productHandler.RegisterRoutes(api)
		a.notificationHandler.RegisterRoutes(api)
	}

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop releases application resources.
func (a *App) Stop() {
	if a.kafkaRelay != nil {
		if err := a.kafkaRelay.Close(); err != nil {
			a.logger.Error("close kafka relay", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := sharedcache.Close(a.redis); err != nil {
			a.logger.Error("close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Error("close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// LoadConfig loads the application configuration.
func LoadConfig() (*config.Config, error) {
	return config.Load()
}
