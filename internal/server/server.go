package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	commissiondomain "github.com/smallbiznis/incentive/internal/commission/domain"
	"github.com/smallbiznis/incentive/internal/config"
	"github.com/smallbiznis/incentive/internal/observability"
	obsmiddleware "github.com/smallbiznis/incentive/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/incentive/internal/observability/metrics"
	obstracing "github.com/smallbiznis/incentive/internal/observability/tracing"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func init() {
	// Amounts render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	commissionSvc commissiondomain.Service
}

type ServerParams struct {
	fx.In

	Engine        *gin.Engine
	Config        config.Config
	Log           *zap.Logger
	CommissionSvc commissiondomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Engine,
		cfg:           p.Config,
		log:           p.Log.Named("http.server"),
		commissionSvc: p.CommissionSvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

// RegisterAPIRoutes mounts the public API.
func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/", s.ServiceInfo)

	api := s.engine.Group("/api/v1")
	{
		api.POST("/commission", s.CalculateCommission)
		api.GET("/commission/health", s.CommissionHealth)
	}
}

// ServiceInfo returns service metadata for discovery.
func (s *Server) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
		"health":  "/api/v1/commission/health",
	})
}
