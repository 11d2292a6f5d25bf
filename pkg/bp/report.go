package bp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/common"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

const (
	WeeklyWindow = 7 * 24 * time.Hour

	reportSeparator = "-----------------------------------------"

	onDemandKeyLayout = "20060102150405"
	weeklyKeyLayout   = "2006-01-02"
)

func OnDemandReportName(generatedAt time.Time) string {
	return fmt.Sprintf("on_demand_report_%s.txt", generatedAt.UTC().Format(onDemandKeyLayout))
}

// WeeklyReportName is unique per calendar day; a second run on the same day
// replaces the first report.
func WeeklyReportName(reportDate time.Time) string {
	return fmt.Sprintf("weekly_summary_%s.txt", reportDate.UTC().Format(weeklyKeyLayout))
}

func RenderOnDemandReport(generatedAt time.Time, total int) string {
	var sb strings.Builder
	sb.WriteString("On-Demand Blood Pressure Summary Report\n")
	fmt.Fprintf(&sb, "Generated on: %s\n", generatedAt.UTC().Format(TimestampLayout))
	sb.WriteString(reportSeparator + "\n")
	fmt.Fprintf(&sb, "Total number of readings collected: %d\n", total)
	return sb.String()
}

func RenderWeeklyReport(reportDate time.Time, total int) string {
	var sb strings.Builder
	sb.WriteString("Weekly Blood Pressure Summary Report\n")
	fmt.Fprintf(&sb, "Report for week ending: %s\n", reportDate.UTC().Format(weeklyKeyLayout))
	sb.WriteString(reportSeparator + "\n")
	fmt.Fprintf(&sb, "Total readings in the past 7 days: %d\n", total)
	return sb.String()
}

// CountReadingsInWindow counts readings whose reading_datetime, read as UTC,
// lies in [from, to]. The first unparseable datetime aborts the count.
func CountReadingsInWindow(readings []models.Reading, from, to time.Time) (int, error) {
	count := 0
	for _, r := range readings {
		t, err := ParseReadingDatetime(r.ReadingDatetime)
		if err != nil {
			return 0, parseError(r.ReadingID, err)
		}
		if !t.Before(from) && !t.After(to) {
			count++
		}
	}
	return count, nil
}

func reportLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameBPCore,
		zap.String(common.LoggerFieldBPCategory, common.LoggerCategoryReport),
	)
}

func (b *BP) writeReport(ctx context.Context, report *models.Report) error {
	loc, err := b.Blob.PutObject(ctx, report.Name, []byte(report.Content))
	if err != nil {
		return dependencyError("put report", err)
	}
	report.Location = loc
	return nil
}

func (b *BP) generateOnDemandReport(ctx context.Context) (*models.Report, error) {
	logger := reportLogger()
	now := b.now()

	readings, err := b.Store.ScanReadings(ctx)
	if err != nil {
		reportFailures.WithLabelValues(string(models.ReportKindOnDemand)).Inc()
		return nil, dependencyError("scan readings", err)
	}

	report := &models.Report{
		Kind:        models.ReportKindOnDemand,
		Name:        OnDemandReportName(now),
		GeneratedAt: now,
		Count:       len(readings),
		Content:     RenderOnDemandReport(now, len(readings)),
	}

	if err := b.writeReport(ctx, report); err != nil {
		reportFailures.WithLabelValues(string(report.Kind)).Inc()
		return nil, err
	}

	reportsGenerated.WithLabelValues(string(report.Kind)).Inc()
	logger.Info("Generated report",
		zap.String("kind", string(report.Kind)),
		zap.Int("count", report.Count),
		zap.Reflect("location", report.Location))

	return report, nil
}

func (b *BP) generateWeeklyReport(ctx context.Context) (*models.Report, error) {
	logger := reportLogger()
	now := b.now()
	from := now.Add(-WeeklyWindow)

	readings, err := b.Store.ScanReadings(ctx)
	if err != nil {
		reportFailures.WithLabelValues(string(models.ReportKindWeekly)).Inc()
		return nil, dependencyError("scan readings", err)
	}

	count, err := CountReadingsInWindow(readings, from, now)
	if err != nil {
		reportFailures.WithLabelValues(string(models.ReportKindWeekly)).Inc()
		return nil, err
	}

	report := &models.Report{
		Kind:        models.ReportKindWeekly,
		Name:        WeeklyReportName(now),
		GeneratedAt: now,
		PeriodStart: from,
		PeriodEnd:   now,
		Count:       count,
		Content:     RenderWeeklyReport(now, count),
	}

	if err := b.writeReport(ctx, report); err != nil {
		reportFailures.WithLabelValues(string(report.Kind)).Inc()
		return nil, err
	}

	reportsGenerated.WithLabelValues(string(report.Kind)).Inc()
	logger.Info("Generated report",
		zap.String("kind", string(report.Kind)),
		zap.Int("scanned", len(readings)),
		zap.Int("count", report.Count),
		zap.Reflect("location", report.Location))

	return report, nil
}

type IReportImpl struct {
	bp *BP
}

func (ir *IReportImpl) GenerateOnDemandReport(ctx context.Context) (*models.Report, error) {
	return ir.bp.generateOnDemandReport(ctx)
}

func (ir *IReportImpl) GenerateWeeklyReport(ctx context.Context) (*models.Report, error) {
	return ir.bp.generateWeeklyReport(ctx)
}

func (b *BP) GetIReport() IReport {
	return &IReportImpl{bp: b}
}
