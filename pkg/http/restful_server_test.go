package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/bp-report-service/pkg/blob"
	"liyu1981.xyz/bp-report-service/pkg/bp"
	"liyu1981.xyz/bp-report-service/pkg/bp/mocks"
	"liyu1981.xyz/bp-report-service/pkg/common"
	"liyu1981.xyz/bp-report-service/pkg/db"
	"liyu1981.xyz/bp-report-service/pkg/models"
	_ "liyu1981.xyz/bp-report-service/pkg/testing"
)

var testNow = time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)

func setupTestServerWithLimiter(t *testing.T, limiter *bp.RateLimiterStore) (*RestfulServer, *db.DB, *blob.DirStore) {
	gin.SetMode(gin.TestMode)

	store, err := db.Open(db.UseMemorySqliteDialector(), 2)
	require.NoError(t, err)
	objects, err := blob.NewDirStore(t.TempDir())
	require.NoError(t, err)

	core := bp.New(store, objects)
	core.Now = func() time.Time { return testNow }

	rs := &RestfulServer{
		Server:           gin.New(),
		Bp:               core,
		RateLimiterStore: limiter,
	}
	rs.Setup()

	return rs, store, objects
}

// default we use no limiter
func setupTestServer(t *testing.T) (*RestfulServer, *db.DB, *blob.DirStore) {
	return setupTestServerWithLimiter(t, nil)
}

func postJSON(rs *RestfulServer, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	rs, _, _ := setupTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPostReadingAndOnDemandReport(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _, objects := setupTestServer(t)

	// five readings over pages of two
	for i := range 5 {
		w := postJSON(rs, "/readings", fmt.Sprintf(`{"reading_datetime": "%02d-06-2024 08:30", "systole": 120, "dystole": 80}`, i+1))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postJSON(rs, "/readings", `{"reading_datetime": "15-06-2024 08:30", "systole": 120, "dystole": 80}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created ReadingCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, MessageReadingStored, created.Message)
	_, err := uuid.Parse(created.ReadingID)
	assert.NoError(t, err)

	w = postJSON(rs, "/report", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(
		`{"message":"On-demand report generated successfully","s3_bucket":%q,"s3_key":"on_demand_report_20240615083000.txt"}`,
		objects.Dir), w.Body.String())

	content, err := os.ReadFile(filepath.Join(objects.Dir, "on_demand_report_20240615083000.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total number of readings collected: 6\n")
}

func TestPostWeeklyReport(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _, objects := setupTestServer(t)

	for _, datetime := range []string{"08-06-2024 08:30", "08-06-2024 08:29", "14-06-2024 10:00"} {
		w := postJSON(rs, "/readings", fmt.Sprintf(`{"reading_datetime": %q, "systole": 118, "diastole": 76}`, datetime))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postJSON(rs, "/report/weekly", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ReportCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, MessageWeeklyReportCreated, resp.Message)
	assert.Equal(t, "weekly_summary_2024-06-15.txt", resp.Key)

	content, err := os.ReadFile(filepath.Join(objects.Dir, resp.Key))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total readings in the past 7 days: 2\n")
}

func TestPostReading_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	cases := []struct {
		body string
		want string
	}{
		{`{"reading_datetime": "15-06-2024 08:30", "systole": 120`, "Invalid JSON in request body"},
		{`{"systole": 120, "dystole": 80}`, "Missing required fields"},
		{`{"reading_datetime": "2024-06-15 08:30", "systole": 120, "dystole": 80}`, "Invalid datetime format. Use 'DD-MM-YYYY HH:MM'"},
		{`{"reading_datetime": "15-06-2024 08:30", "systole": 120.5, "dystole": 80}`, "Systole and dystole must be integers"},
	}

	rs, store, _ := setupTestServer(t)

	for _, tc := range cases {
		w := postJSON(rs, "/readings", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.body)
		assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.want), w.Body.String())
	}

	var count int64
	require.NoError(t, store.Conn.Model(&models.Reading{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "rejected readings must not be written")
}

func TestInternalErrors(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _, _ := setupTestServer(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIReading := mocks.NewMockIReading(ctrl)
	mockIReport := mocks.NewMockIReport(ctrl)
	rs.Bp.WithServices(bp.ServiceOpts{Reading: mockIReading, Report: mockIReport})

	mockIReading.EXPECT().
		StoreReading(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("just causing error")).
		Times(1)
	mockIReport.EXPECT().
		GenerateOnDemandReport(gomock.Any()).
		Return(nil, &bp.Error{Kind: bp.KindDependency, Message: "scan readings", Err: fmt.Errorf("table gone")}).
		Times(1)
	mockIReport.EXPECT().
		GenerateWeeklyReport(gomock.Any()).
		Return(nil, &bp.Error{Kind: bp.KindParse, Message: "reading x has an unparseable reading_datetime"}).
		Times(1)

	for _, path := range []string{"/readings", "/report", "/report/weekly"} {
		w := postJSON(rs, path, `{"reading_datetime": "15-06-2024 08:30", "systole": 120, "dystole": 80}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		// no internal detail leaks to the caller
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String(), path)
	}
}

func TestPostReadingWithLimiter(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _, _ := setupTestServerWithLimiter(t, bp.NewRateLimiterStore(2, 2))

	body := []byte(`{"reading_datetime": "15-06-2024 08:30", "systole": 120, "dystole": 80}`)

	// 3 requests in quick succession, only 2 should be allowed
	for i := range 3 {
		req := httptest.NewRequest(http.MethodPost, "/readings", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		rs.Server.ServeHTTP(w, req)

		if i < 2 {
			require.Equal(t, http.StatusCreated, w.Code, "request %d should be allowed", i+1)
		} else {
			require.Equal(t, http.StatusTooManyRequests, w.Code, "request %d should be rate limited", i+1)
		}
	}

	// reports are not limited
	w := postJSON(rs, "/report", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	common.SetTestLoggerNop()

	rs, _, _ := setupTestServer(t)

	w := postJSON(rs, "/readings", `{"reading_datetime": "15-06-2024 08:30", "systole": 120, "dystole": 80}`)
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	rs.Server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bp_readings_stored_total")
}

func TestStatusFor(t *testing.T) {
	status, body := StatusFor(bp.ErrWrongType)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Systole and dystole must be integers", body.Error)

	status, body = StatusFor(fmt.Errorf("wrapped: %w", bp.ErrMissingFields))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body.Error)

	status, body = StatusFor(fmt.Errorf("anything else"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, MessageInternalServerError, body.Error)
}
