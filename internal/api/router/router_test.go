package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

var columns = []string{"id", "title", "notes", "category", "start_date", "done", "customer_id"}

type testServer struct {
	handler http.Handler
	mock    sqlmock.Sqlmock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	reg := prometheus.NewRegistry()
	collector := metrics.NewWithRegistry("appointment_service_test", reg)

	db := dbmetrics.Wrap(sqlDB, collector)
	log := logger.Discard()
	svc := appointments.NewService(appointmentRepo.NewRepository(db), txmanager.NewTransactionManager(db), log)

	handler := New(Options{
		Service:        svc,
		Logger:         log,
		Metrics:        collector,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		MetricsPath:    "/metrics",
		ReadyChecks: []health.ReadyCheck{
			{Name: "postgres", Check: func(context.Context) error { return nil }},
		},
		MaxBodyBytes: 1 << 20,
	})

	return &testServer{handler: handler, mock: mock}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestServer(t)
	start := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)

	// create
	s.mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	rec := s.do(http.MethodPost, "/api/appointments",
		`{"title":"Checkup","category":"Medical","startDate":"2025-11-15T10:00:00","customerId":"123456789A"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := rec.Body.String()
	assert.JSONEq(t, `{"id":1,"title":"Checkup","notes":null,"category":"Medical",
		"startDate":"2025-11-15T10:00:00","done":false,"customerId":"123456789A"}`, created)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	// get
	s.mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE id = \$1$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "Checkup", nil, "Medical", start, false, "123456789A"))

	rec = s.do(http.MethodGet, "/api/appointments/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, created, rec.Body.String())

	// delete
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT id FROM appointments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	s.mock.ExpectExec(`DELETE FROM appointments WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	rec = s.do(http.MethodDelete, "/api/appointments/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// get after delete
	s.mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE id = \$1$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns))

	rec = s.do(http.MethodGet, "/api/appointments/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestDeleteMissing_RollsBack(t *testing.T) {
	s := newTestServer(t)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT id FROM appointments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	s.mock.ExpectRollback()

	rec := s.do(http.MethodDelete, "/api/appointments/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCreate_ValidationNeverTouchesStore(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/appointments/", `{"title":"","startDate":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code   int `json:"code"`
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Len(t, body.Errors, 4)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCreate_OversizedBody(t *testing.T) {
	s := newTestServer(t)

	notes := strings.Repeat("n", 1<<20)
	rec := s.do(http.MethodPost, "/api/appointments",
		`{"title":"Checkup","notes":"`+notes+`","category":"Medical","startDate":"2025-11-15T10:00:00","customerId":"123456789A"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusRequestEntityTooLarge, body.Code)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCreate_ZeroStartDate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/appointments",
		`{"title":"Checkup","category":"Medical","startDate":"0001-01-01T00:00:00","customerId":"123456789A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"startDate"`)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCustomerRoutes(t *testing.T) {
	s := newTestServer(t)

	s.mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE customer_id = \$1 ORDER BY id ASC`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(columns))

	rec := s.do(http.MethodGet, "/api/appointments/customer/nobody", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	s.mock.ExpectExec(`DELETE FROM appointments WHERE customer_id = \$1`).
		WithArgs("nobody").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec = s.do(http.MethodDelete, "/api/appointments/customer/nobody", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE customer_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs("C2", int64(1)).
		WillReturnRows(sqlmock.NewRows(columns))
	s.mock.ExpectRollback()

	rec = s.do(http.MethodDelete, "/api/appointments/customer/C2/appointment/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestServiceRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/appointments/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/appointments/{id}"`)
}
