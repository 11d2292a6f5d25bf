package http

import (
	"errors"
	"net/http"

	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

const (
	MessageReadingStored         = "Reading stored successfully"
	MessageOnDemandReportCreated = "On-demand report generated successfully"
	MessageWeeklyReportCreated   = "Weekly report generated successfully"
	MessageInternalServerError   = "Internal server error"
)

type ReadingCreatedResponse struct {
	Message   string `json:"message"`
	ReadingID string `json:"reading_id"`
}

type ReportCreatedResponse struct {
	Message string `json:"message"`
	models.StorageLocation
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error from pkg/bp to the status code and body returned to
// callers. Only validation errors expose their message.
func StatusFor(err error) (int, ErrorResponse) {
	var e *bp.Error
	if errors.As(err, &e) && e.Kind == bp.KindValidation {
		return http.StatusBadRequest, ErrorResponse{Error: e.Message}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: MessageInternalServerError}
}

func NewReportCreatedResponse(report *models.Report) ReportCreatedResponse {
	message := MessageOnDemandReportCreated
	if report.Kind == models.ReportKindWeekly {
		message = MessageWeeklyReportCreated
	}
	return ReportCreatedResponse{Message: message, StorageLocation: report.Location}
}
