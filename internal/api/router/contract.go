package router

import (
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	deleteCustomerAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_customer_appointment"
	deleteCustomerAppointments "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_customer_appointments"
	getAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getCustomerAppointments "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_customer_appointments"
	listAppointments "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	updateCustomerAppointment "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_customer_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

// AppointmentService все операции, которые обслуживает API
type AppointmentService interface {
	createAppointment.AppointmentService
	listAppointments.AppointmentService
	getAppointment.AppointmentService
	getCustomerAppointments.AppointmentService
	updateAppointment.AppointmentService
	updateCustomerAppointment.AppointmentService
	deleteAppointment.AppointmentService
	deleteCustomerAppointments.AppointmentService
	deleteCustomerAppointment.AppointmentService
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder принимает наблюдения по HTTP запросам
type MetricsRecorder = middleware.MetricsRecorder
