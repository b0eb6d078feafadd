package appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс хранилища записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetAll(ctx context.Context) ([]*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Appointment, error)
	GetByIDAndCustomerID(ctx context.Context, id int64, customerID string) (*domain.Appointment, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByCustomerID(ctx context.Context, customerID string) (int64, error)
	DeleteByIDAndCustomerID(ctx context.Context, id int64, customerID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
