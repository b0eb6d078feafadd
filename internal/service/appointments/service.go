package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём.
// Входные данные приходят уже проверенными (models.AppointmentRequest.Validate).
type Service struct {
	repo      AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// Create создает запись. done по умолчанию false, ID назначает хранилище.
func (s *Service) Create(ctx context.Context, input *models.AppointmentInput) (*models.AppointmentResponse, error) {
	s.logger.Info("Create: creating appointment for customer=%s", input.CustomerID)

	appointment := input.NewAppointment()

	created, err := s.repo.Create(ctx, &appointment)
	if err != nil {
		return nil, s.storeError("Create", err)
	}

	s.logger.Info("Create: created appointment id=%d for customer=%s", created.ID, created.CustomerID)
	return models.FromDomainAppointment(created), nil
}

// GetAll возвращает все записи
func (s *Service) GetAll(ctx context.Context) ([]models.AppointmentResponse, error) {
	appointments, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, s.storeError("GetAll", err)
	}

	s.logger.Info("GetAll: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// GetByID возвращает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		return nil, s.storeError("GetByID", err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetByCustomerID возвращает записи клиента. Неизвестный клиент даёт пустой список.
func (s *Service) GetByCustomerID(ctx context.Context, customerID string) ([]models.AppointmentResponse, error) {
	s.logger.Info("GetByCustomerID: fetching appointments for customer=%s", customerID)

	appointments, err := s.repo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, s.storeError("GetByCustomerID", err)
	}

	s.logger.Info("GetByCustomerID: fetched %d appointments for customer=%s", len(appointments), customerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Update перезаписывает все поля записи, включая клиента
func (s *Service) Update(ctx context.Context, id int64, input *models.AppointmentInput) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d", id)

	var updated *domain.Appointment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		next := input.ApplyTo(*existing)
		updated, err = s.repo.Update(ctx, &next)
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		return nil, s.storeError("Update", err)
	}

	s.logger.Info("Update: updated appointment id=%d", updated.ID)
	return models.FromDomainAppointment(updated), nil
}

// UpdateForCustomer перезаписывает поля записи клиента; клиент записи не меняется,
// даже если в запросе указан другой customerId
func (s *Service) UpdateForCustomer(ctx context.Context, customerID string, id int64, input *models.AppointmentInput) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateForCustomer: updating appointment id=%d for customer=%s", id, customerID)

	var updated *domain.Appointment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByIDAndCustomerID(ctx, id, customerID)
		if err != nil {
			return err
		}

		next := input.ApplyKeepingCustomer(*existing)
		updated, err = s.repo.Update(ctx, &next)
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateForCustomer: appointment id=%d not found for customer=%s", id, customerID)
			return nil, ErrAppointmentNotFound
		}
		return nil, s.storeError("UpdateForCustomer", err)
	}

	s.logger.Info("UpdateForCustomer: updated appointment id=%d for customer=%s", updated.ID, customerID)
	return models.FromDomainAppointment(updated), nil
}

// Delete удаляет запись по ID.
// Проверка существования и удаление выполняются в одной транзакции с блокировкой строки,
// поэтому из двух конкурентных удалений одно получит ErrAppointmentNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return appointmentRepo.ErrAppointmentNotFound
		}
		return s.repo.DeleteByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		return s.storeError("Delete", err)
	}

	s.logger.Info("Delete: deleted appointment id=%d", id)
	return nil
}

// DeleteAllForCustomer удаляет все записи клиента. Отсутствие записей не ошибка.
func (s *Service) DeleteAllForCustomer(ctx context.Context, customerID string) error {
	s.logger.Info("DeleteAllForCustomer: deleting appointments for customer=%s", customerID)

	deleted, err := s.repo.DeleteByCustomerID(ctx, customerID)
	if err != nil {
		return s.storeError("DeleteAllForCustomer", err)
	}

	s.logger.Info("DeleteAllForCustomer: deleted %d appointments for customer=%s", deleted, customerID)
	return nil
}

// DeleteForCustomer удаляет запись клиента по ID
func (s *Service) DeleteForCustomer(ctx context.Context, customerID string, id int64) error {
	s.logger.Info("DeleteForCustomer: deleting appointment id=%d for customer=%s", id, customerID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByIDAndCustomerID(ctx, id, customerID); err != nil {
			return err
		}
		return s.repo.DeleteByIDAndCustomerID(ctx, id, customerID)
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("DeleteForCustomer: appointment id=%d not found for customer=%s", id, customerID)
			return ErrAppointmentNotFound
		}
		return s.storeError("DeleteForCustomer", err)
	}

	s.logger.Info("DeleteForCustomer: deleted appointment id=%d for customer=%s", id, customerID)
	return nil
}

// storeError классифицирует ошибку хранилища
func (s *Service) storeError(op string, err error) error {
	if errors.Is(err, appointmentRepo.ErrNotesTooLong) {
		s.logger.Warn("%s: rejected by store: %v", op, err)
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
