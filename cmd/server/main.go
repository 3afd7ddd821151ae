package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/poloedu/polobill/internal/api"
	v1 "github.com/poloedu/polobill/internal/api/v1"
	"github.com/poloedu/polobill/internal/cache"
	"github.com/poloedu/polobill/internal/config"
	"github.com/poloedu/polobill/internal/integration/asaas"
	"github.com/poloedu/polobill/internal/integration/asaas/webhook"
	"github.com/poloedu/polobill/internal/logger"
	"github.com/poloedu/polobill/internal/postgres"
	repo "github.com/poloedu/polobill/internal/repository/postgres"
	"github.com/poloedu/polobill/internal/service"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			cache.New,
			newPool,
			repo.NewPlanRepository,
			asaas.NewClient,
			webhook.NewHandler,
			service.NewServiceParams,
			service.NewPlanService,
			v1.NewPlanHandler,
			v1.NewWebhookHandler,
			newHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func newPool(lc fx.Lifecycle, cfg *config.Configuration) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newHandlers(plan *v1.PlanHandler, wh *v1.WebhookHandler) api.Handlers {
	return api.Handlers{Plan: plan, Webhook: wh}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorw("server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			return server.Shutdown(ctx)
		},
	})
}
