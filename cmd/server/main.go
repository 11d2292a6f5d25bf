package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/bp-report-service/pkg/app"
	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/common"
	bpHttp "liyu1981.xyz/bp-report-service/pkg/http"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config, copy .env.example to .env first if in development: %v", err)
	}

	logger := common.GetLogger()

	bpCore, err := app.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to build bp core: %v", err)
	}

	if !common.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiterStore := bp.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst)
	go func() {
		ticker := time.NewTicker(limiterIdleTimeout)
		defer ticker.Stop()
		for range ticker.C {
			if pruned := limiterStore.Prune(limiterIdleTimeout); pruned > 0 {
				logger.Debug("pruned idle client limiters", zap.Int("count", pruned))
			}
		}
	}()

	rs := &bpHttp.RestfulServer{
		Server:           gin.Default(),
		Bp:               bpCore,
		RateLimiterStore: limiterStore,
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)))

	logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
	if err := rs.Server.Run(cfg.HttpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
