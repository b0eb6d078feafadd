package appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Repository хранилище, поверх которого работает кэш
type Repository interface {
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

// Recorder учитывает попадания и промахи кэша
type Recorder interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
