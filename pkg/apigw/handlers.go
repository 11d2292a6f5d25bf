// Package apigw adapts the blood-pressure services to AWS Lambda: API Gateway
// proxy events for ingestion and on-demand reports, and the scheduled
// EventBridge event for the weekly report.
package apigw

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/common"
	bpHttp "liyu1981.xyz/bp-report-service/pkg/http"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

type Handlers struct {
	Bp *bp.BP
}

func (h *Handlers) logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameLambda)
}

func jsonResponse(status int, body any) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"` + bpHttp.MessageInternalServerError + `"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}
}

func (h *Handlers) errorResponse(err error) events.APIGatewayProxyResponse {
	status, body := bpHttp.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger().Error("Invocation failed",
			zap.String("kind", bp.KindOf(err).String()),
			zap.Error(err))
	}
	return jsonResponse(status, body)
}

func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, bp.ErrMalformedInput
	}
	return body, nil
}

// PostReading handles POST /readings.
func (h *Handlers) PostReading(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return h.errorResponse(err), nil
	}

	readingID, err := h.Bp.Reading.StoreReading(ctx, body)
	if err != nil {
		return h.errorResponse(err), nil
	}

	return jsonResponse(http.StatusCreated, bpHttp.ReadingCreatedResponse{
		Message:   bpHttp.MessageReadingStored,
		ReadingID: readingID,
	}), nil
}

func (h *Handlers) reportResponse(report *models.Report, err error) events.APIGatewayProxyResponse {
	if err != nil {
		return h.errorResponse(err)
	}
	return jsonResponse(http.StatusOK, bpHttp.NewReportCreatedResponse(report))
}

// OnDemandReport handles POST /report. The request carries no input.
func (h *Handlers) OnDemandReport(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	report, err := h.Bp.Report.GenerateOnDemandReport(ctx)
	return h.reportResponse(report, err), nil
}

// WeeklyReport runs on the weekly EventBridge schedule. The scheduler only
// records the returned status code; nothing reads the body.
func (h *Handlers) WeeklyReport(ctx context.Context, event events.CloudWatchEvent) (events.APIGatewayProxyResponse, error) {
	h.logger().Info("Weekly report triggered",
		zap.String("source", event.Source),
		zap.String("detail_type", event.DetailType),
		zap.Time("time", event.Time))

	report, err := h.Bp.Report.GenerateWeeklyReport(ctx)
	return h.reportResponse(report, err), nil
}
