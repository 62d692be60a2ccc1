// Package app wires configuration, storage, middleware, routes and the
// background scheduler into a runnable HTTP application.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Karin-Goldin/wedding-app/pkg/configs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/events"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/jobs"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/router"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/service"
	"github.com/Karin-Goldin/wedding-app/pkg/internal/storage"
	"github.com/Karin-Goldin/wedding-app/pkg/log"
	"github.com/Karin-Goldin/wedding-app/pkg/metrics"
	"github.com/Karin-Goldin/wedding-app/pkg/middleware"
	"github.com/Karin-Goldin/wedding-app/pkg/rule"
	"github.com/Karin-Goldin/wedding-app/pkg/scheduler"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	sched  *scheduler.Scheduler
	bus    *events.Bus
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	config := configs.GetConfig()
	if err := rule.ValidateStruct(config); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init()

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		// zip archives are already compressed, gzip would only burn CPU
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/export/archive"})),
		middleware.GinLoggerMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.Breaker),
		middleware.StorageMiddleware(manager),
	)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	router.RegisterAll(engine)

	bus := events.NewBus()
	if err := service.StartCacheInvalidation(ctx, bus, manager.KV); err != nil {
		l.Warn().Err(err).Msg("cache invalidation disabled")
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		l.Warn().Err(err).Msg("failed to register background jobs")
	}

	sched.Start()

	return &App{
		Engine: engine,
		config: config,
		sched:  sched,
		bus:    bus,
	}
}

func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

// Shutdown stops the scheduler and the event bus.
func (a *App) Shutdown() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.bus != nil {
		_ = a.bus.Close()
	}
}
