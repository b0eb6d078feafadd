package router

import (
	"net/http"

	"github.com/gorilla/mux"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	deleteCustomerAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_customer_appointment"
	deleteCustomerAppointments "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_customer_appointments"
	getAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getCustomerAppointments "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_customer_appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	listAppointments "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	updateCustomerAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_customer_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

// BasePath префикс API записей
const BasePath = "/api/appointments"

// Options зависимости роутера
type Options struct {
	Service AppointmentService
	Logger  Logger

	// Metrics nil отключает HTTP метрики
	Metrics        MetricsRecorder
	MetricsHandler http.Handler
	MetricsPath    string

	ReadyChecks  []health.ReadyCheck
	MaxBodyBytes int64
}

// New собирает HTTP обработчик сервиса
func New(opts Options) http.Handler {
	createAppointmentHandler := createAppointment.NewHandler(opts.Service, opts.Logger)
	listAppointmentsHandler := listAppointments.NewHandler(opts.Service, opts.Logger)
	getAppointmentHandler := getAppointment.NewHandler(opts.Service, opts.Logger)
	getCustomerAppointmentsHandler := getCustomerAppointments.NewHandler(opts.Service, opts.Logger)
	updateAppointmentHandler := updateAppointment.NewHandler(opts.Service, opts.Logger)
	updateCustomerAppointmentHandler := updateCustomerAppointment.NewHandler(opts.Service, opts.Logger)
	deleteAppointmentHandler := deleteAppointment.NewHandler(opts.Service, opts.Logger)
	deleteCustomerAppointmentsHandler := deleteCustomerAppointments.NewHandler(opts.Service, opts.Logger)
	deleteCustomerAppointmentHandler := deleteCustomerAppointment.NewHandler(opts.Service, opts.Logger)
	healthHandler := health.NewHandler(opts.Logger, opts.ReadyChecks...)

	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	// Служебные маршруты
	r.HandleFunc("/healthz", healthHandler.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", healthHandler.Ready).Methods(http.MethodGet)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix(BasePath).Subrouter()

	// --- Записи клиента ---
	// Маршруты /customer/... регистрируются раньше /{id}
	api.HandleFunc("/customer/{customerId}", getCustomerAppointmentsHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/customer/{customerId}", deleteCustomerAppointmentsHandler.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/customer/{customerId}/appointment/{appointmentId}",
		updateCustomerAppointmentHandler.Handle).Methods(http.MethodPut)
	api.HandleFunc("/customer/{customerId}/appointment/{appointmentId}",
		deleteCustomerAppointmentHandler.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	for _, root := range []string{"", "/"} {
		api.HandleFunc(root, createAppointmentHandler.Handle).Methods(http.MethodPost)
		api.HandleFunc(root, listAppointmentsHandler.Handle).Methods(http.MethodGet)
	}
	api.HandleFunc("/{id}", getAppointmentHandler.Handle).Methods(http.MethodGet)
	api.HandleFunc("/{id}", updateAppointmentHandler.Handle).Methods(http.MethodPut)
	api.HandleFunc("/{id}", deleteAppointmentHandler.Handle).Methods(http.MethodDelete)

	var handler http.Handler = r
	handler = middleware.BodyLimit(opts.MaxBodyBytes)(handler)
	handler = middleware.AccessLog(opts.Logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
