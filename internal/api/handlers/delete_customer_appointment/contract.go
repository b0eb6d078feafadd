package delete_customer_appointment

import "context"

type AppointmentService interface {
	DeleteForCustomer(ctx context.Context, customerID string, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
