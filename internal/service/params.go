package service

import (
	"github.com/poloedu/polobill/internal/cache"
	"github.com/poloedu/polobill/internal/config"
	"github.com/poloedu/polobill/internal/domain/plan"
	"github.com/poloedu/polobill/internal/integration/asaas"
	"github.com/poloedu/polobill/internal/logger"
)

// ServiceParams bundles the dependencies shared by services. Wired once in
// cmd/server and handed to every service constructor.
type ServiceParams struct {
	Logger   *logger.Logger
	Config   *config.Configuration
	Cache    *cache.Cache
	PlanRepo plan.Repository
	Gateway  asaas.GatewayClient
}

// NewServiceParams builds ServiceParams (for fx registration).
func NewServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	c *cache.Cache,
	planRepo plan.Repository,
	gateway asaas.GatewayClient,
) ServiceParams {
	return ServiceParams{
		Logger:   log,
		Config:   cfg,
		Cache:    c,
		PlanRepo: planRepo,
		Gateway:  gateway,
	}
}
