package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/common"
)

type RestfulServer struct {
	Server           *gin.Engine
	Bp               *bp.BP
	RateLimiterStore *bp.RateLimiterStore
}

func (rs *RestfulServer) CheckClientLimiter(clientKey string) bool {
	if rs.RateLimiterStore == nil {
		return true
	}
	return rs.RateLimiterStore.Allow(clientKey)
}

func (rs *RestfulServer) logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rs.Server.POST("/readings", rs.PostReading)

	report := rs.Server.Group("/report")
	{
		report.POST("", rs.PostOnDemandReport)
		report.POST("/weekly", rs.PostWeeklyReport)
	}
}
