package bp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zconst"
	"go.uber.org/zap"
	"liyu1981.xyz/bp-report-service/pkg/common"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

const (
	// DD-MM-YYYY HH:MM, zero-padded, 24-hour, no zone
	ReadingDatetimeLayout = "02-01-2006 15:04"
	// creation instant, UTC with microseconds
	TimestampLayout = "2006-01-02T15:04:05.000000"

	FieldReadingDatetime = "reading_datetime"
	FieldSystole         = "systole"
	FieldDystole         = "dystole"
	FieldDiastole        = "diastole"
)

// ParseReadingDatetime parses s with ReadingDatetimeLayout. time.Parse accepts
// a single-digit hour for "15", so the length is checked too.
func ParseReadingDatetime(s string) (time.Time, error) {
	if len(s) != len(ReadingDatetimeLayout) {
		return time.Time{}, fmt.Errorf("reading datetime %q does not match DD-MM-YYYY HH:MM", s)
	}
	return time.Parse(ReadingDatetimeLayout, s)
}

type readingRequest struct {
	ReadingDatetime string `zog:"reading_datetime"`
	Systole         int    `zog:"systole"`
	Dystole         int    `zog:"dystole"`
}

// jsonNull marks a key that is present with a null value, so it is not
// mistaken for a missing key.
type jsonNull struct{}

// coerceString accepts JSON strings only.
func coerceString(data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string, got %T", data)
	}
	return s, nil
}

// coerceInteger accepts only a JSON number literal without fraction or exponent.
func coerceInteger(data any) (any, error) {
	number, ok := data.(json.Number)
	if !ok {
		return nil, fmt.Errorf("expected an integer, got %T", data)
	}
	return strconv.Atoi(number.String())
}

var readingRequestSchema = z.Struct(z.Shape{
	"ReadingDatetime": z.String(z.WithCoercer(coerceString)).Required().
		TestFunc(func(val *string, ctx z.Ctx) bool {
			_, err := ParseReadingDatetime(*val)
			return err == nil
		}),
	"Systole": z.Int(z.WithCoercer(coerceInteger)).Required(),
	"Dystole": z.Int(z.WithCoercer(coerceInteger)).Required(),
})

// ParseReadingInput validates a submission body. Checks run in a fixed order
// and the first failure is returned: JSON syntax, required fields, datetime
// format, then integer pressures.
func ParseReadingInput(body []byte) (*models.ReadingInput, error) {
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return nil, ErrMalformedInput
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, ErrMissingFields
	}

	if _, ok := fields[FieldDystole]; !ok {
		if diastole, ok := fields[FieldDiastole]; ok {
			fields[FieldDystole] = diastole
		}
	}
	for key, value := range fields {
		if value == nil {
			fields[key] = jsonNull{}
		}
	}

	var req readingRequest
	if issues := readingRequestSchema.Parse(fields, &req); len(issues) > 0 {
		return nil, readingIssuesError(issues)
	}

	return &models.ReadingInput{
		ReadingDatetime: req.ReadingDatetime,
		Systole:         req.Systole,
		Diastole:        req.Dystole,
	}, nil
}

// readingIssuesError picks the sentinel for the earliest failing check.
func readingIssuesError(issues z.ZogIssueMap) error {
	var missing, datetime bool
	for _, list := range issues {
		for _, issue := range list {
			switch {
			case issue.Code == zconst.IssueCodeRequired:
				missing = true
			case strings.HasSuffix(issue.Path, FieldReadingDatetime):
				datetime = true
			}
		}
	}

	switch {
	case missing:
		return ErrMissingFields
	case datetime:
		return ErrInvalidDatetime
	default:
		return ErrWrongType
	}
}

func (b *BP) storeReading(ctx context.Context, body []byte) (string, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameBPCore,
		zap.String(common.LoggerFieldBPCategory, common.LoggerCategoryReading),
	)

	input, err := ParseReadingInput(body)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			readingsRejected.WithLabelValues(e.Code).Inc()
		}
		logger.Info("Rejected reading", zap.Error(err))
		return "", err
	}

	reading := models.Reading{
		ReadingID:       b.newID(),
		ReadingDatetime: input.ReadingDatetime,
		Systole:         input.Systole,
		Diastole:        input.Diastole,
		Timestamp:       b.now().Format(TimestampLayout),
	}

	logger.Info("Received reading", zap.Reflect("reading", reading))

	if err := b.Store.PutReading(ctx, &reading); err != nil {
		return "", dependencyError("store reading", err)
	}

	readingsStored.Inc()
	logger.Info("Stored reading", zap.String("reading_id", reading.ReadingID))

	return reading.ReadingID, nil
}

type IReadingImpl struct {
	bp *BP
}

func (ir *IReadingImpl) StoreReading(ctx context.Context, body []byte) (string, error) {
	return ir.bp.storeReading(ctx, body)
}

func (b *BP) GetIReading() IReading {
	return &IReadingImpl{bp: b}
}
