package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/chiemelie/bookhub/internal/auth"
	"github.com/chiemelie/bookhub/internal/config"
	"github.com/chiemelie/bookhub/internal/directory"
	"github.com/chiemelie/bookhub/internal/http/handlers"
	"github.com/chiemelie/bookhub/internal/http/middlewares"
	"github.com/chiemelie/bookhub/internal/observability"
	"github.com/chiemelie/bookhub/internal/ratelimit"
	"github.com/chiemelie/bookhub/internal/repo/postgres"
	"github.com/chiemelie/bookhub/internal/scheduling"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// NewRouter wires repositories, services and handlers onto a gin engine.
// rdb may be nil; rate limiting then stays in-process.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("bookhub"))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/health", h.Health)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories and services
	usersRepo := postgres.NewUsersRepo(pool, prom)
	clientsRepo := postgres.NewClientsRepo(pool, prom)
	appointmentsRepo := postgres.NewAppointmentsRepo(pool, prom)

	scheduler := scheduling.NewService(appointmentsRepo, clientsRepo, usersRepo, prom)
	clientDirectory := directory.NewService(clientsRepo)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authMW := middlewares.NewAuthMiddleware(jwtManager, log)

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	clientsHandler := handlers.NewClientsHandler(clientDirectory)
	appointmentsHandler := handlers.NewAppointmentsHandler(scheduler)

	// credential endpoints are throttled; everything else is not
	var limiter ratelimit.Limiter

	if rdb != nil {
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	throttle := ratelimit.Middleware(limiter, nil)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", throttle, middlewares.RequireJSON(), authHandler.Register)
	// login takes a form-encoded body, so no RequireJSON here
	authGroup.POST("/login", throttle, authHandler.Login)
	authGroup.GET("/me", authMW.RequireAuth(), authHandler.Me)

	clients := r.Group("/clients", authMW.RequireAuth(), middlewares.RequireJSON())
	clients.POST("", clientsHandler.CreateClient)
	clients.GET("", clientsHandler.ListClients)

	appointments := r.Group("/appointments", authMW.RequireAuth(), middlewares.RequireJSON())
	appointments.POST("", appointmentsHandler.CreateAppointment)
	appointments.GET("", appointmentsHandler.ListAppointments)
	appointments.GET("/:id", appointmentsHandler.GetAppointmentByID)

	return r
}
