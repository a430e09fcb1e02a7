package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"wayfarer/cmd/fx/assistant_fx"
	"wayfarer/cmd/fx/cache_fx"
	"wayfarer/cmd/fx/config_fx"
	"wayfarer/cmd/fx/controllers_fx"
	"wayfarer/cmd/fx/db_fx"
	"wayfarer/cmd/fx/memcache_fx"
	"wayfarer/cmd/fx/provider_fx"
	"wayfarer/internal/api/controllers"
	"wayfarer/internal/config"
	"wayfarer/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		db_fx.Module,
		cache_fx.Module,
		memcache_fx.Module,
		provider_fx.Module,
		assistant_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	assistantController *controllers.AssistantController,
	tripController *controllers.TripController,
	exploreController *controllers.ExploreController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(logger))

	RegisterRoutes(r, assistantController, tripController, exploreController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	assistantController *controllers.AssistantController,
	tripController *controllers.TripController,
	exploreController *controllers.ExploreController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	chatGroup := api.Group("/chat/sessions")
	chatGroup.POST("", assistantController.CreateSession)
	chatGroup.POST("/:id/messages", assistantController.SendMessage)
	chatGroup.GET("/:id/history", assistantController.History)
	chatGroup.DELETE("/:id/inflight", assistantController.CancelInflight)
	chatGroup.DELETE("/:id", assistantController.EndSession)

	tripsGroup := api.Group("/trips")
	tripsGroup.POST("", tripController.CreateTrip)
	tripsGroup.GET("", tripController.ListTrips)
	tripsGroup.GET("/:id", tripController.GetTrip)

	api.GET("/explore", exploreController.Explore)
}
