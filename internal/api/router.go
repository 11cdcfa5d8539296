package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"workorder-service/config"
	"workorder-service/internal/mw"
	"workorder-service/internal/service"
	"workorder-service/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID(), mw.RequestLogger(log))
	if cfg.Server.RequestIPHeader != "" {
		r.TrustedPlatform = cfg.Server.RequestIPHeader
	}

	svc := service.NewServerService(s, log, cfg.Pagination.MaxPageSize)
	handler := NewHandler(s, svc, log, cfg.Pagination.DefaultPageSize)

	r.GET("/healthz", handler.Health)

	servers := r.Group("/servers")
	servers.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	if cfg.Server.CacheTTL > 0 {
		servers.Use(mw.Cache(cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL), cfg.Server.CacheTTL))
	}
	{
		servers.GET("", handler.ListServers)
		servers.POST("", handler.CreateServer)
		servers.GET("/:id", handler.GetServer)
		servers.PUT("/:id", handler.UpdateServer)
		servers.DELETE("/:id", handler.DeleteServer)
	}

	return r
}
