package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

func (rs *RestfulServer) respondError(c *gin.Context, err error) {
	status, body := StatusFor(err)
	if status >= http.StatusInternalServerError {
		rs.logger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", bp.KindOf(err).String()),
			zap.Error(err))
	}
	c.JSON(status, body)
}

func (rs *RestfulServer) PostReading(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		rs.respondError(c, bp.ErrMalformedInput)
		return
	}

	readingID, err := rs.Bp.Reading.StoreReading(c.Request.Context(), body)
	if err != nil {
		rs.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ReadingCreatedResponse{
		Message:   MessageReadingStored,
		ReadingID: readingID,
	})
}

func (rs *RestfulServer) respondReport(c *gin.Context, report *models.Report, err error) {
	if err != nil {
		rs.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReportCreatedResponse(report))
}

func (rs *RestfulServer) PostOnDemandReport(c *gin.Context) {
	report, err := rs.Bp.Report.GenerateOnDemandReport(c.Request.Context())
	rs.respondReport(c, report, err)
}

func (rs *RestfulServer) PostWeeklyReport(c *gin.Context) {
	report, err := rs.Bp.Report.GenerateWeeklyReport(c.Request.Context())
	rs.respondReport(c, report, err)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
