package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	tableAppointments = "appointments"

	// pgStringDataRightTruncation SQLSTATE 22001: значение не помещается в колонку
	pgStringDataRightTruncation = "22001"
)

var appointmentColumns = []string{
	"id",
	"title",
	"notes",
	"category",
	"start_date",
	"done",
	"customer_id",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет новую запись и возвращает её с назначенным ID
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAppointments).
		Columns(
			"title",
			"notes",
			"category",
			"start_date",
			"done",
			"customer_id",
		).
		Values(
			appointment.Title,
			appointment.Notes,
			appointment.Category,
			appointment.StartDate,
			appointment.Done,
			appointment.CustomerID,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := appointment.Clone()
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, mapWriteError("Create - execute insert", err)
	}

	return &created, nil
}

// GetAll возвращает все записи в порядке возрастания ID
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryAppointments(ctx, "GetAll", query, args)
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id})

	return r.getOne(ctx, "GetByID", selectBuilder)
}

// GetByIDAndCustomerID получает запись по ID только если она принадлежит клиенту
func (r *Repository) GetByIDAndCustomerID(ctx context.Context, id int64, customerID string) (*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id, "customer_id": customerID})

	return r.getOne(ctx, "GetByIDAndCustomerID", selectBuilder)
}

// GetByCustomerID возвращает все записи клиента (пустой список, если их нет)
func (r *Repository) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryAppointments(ctx, "GetByCustomerID", query, args)
}

// ExistsByID проверяет наличие записи. Внутри транзакции строка блокируется.
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From(tableAppointments).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByID - build select query: %v", ErrBuildQuery, err)
	}

	var found int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByID - scan id: %v", ErrScanRow, err)
	}

	return true, nil
}

// Update перезаписывает все поля записи, кроме ID
func (r *Repository) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("title", appointment.Title).
		Set("notes", appointment.Notes).
		Set("category", appointment.Category).
		Set("start_date", appointment.StartDate).
		Set("done", appointment.Done).
		Set("customer_id", appointment.CustomerID).
		Where(squirrel.Eq{"id": appointment.ID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError("Update - execute update", err)
	}

	if err := requireAffected(result, "Update"); err != nil {
		return nil, err
	}

	updated := appointment.Clone()
	return &updated, nil
}

// DeleteByID удаляет запись по ID
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	return r.deleteOne(ctx, "DeleteByID", squirrel.Eq{"id": id})
}

// DeleteByIDAndCustomerID удаляет запись клиента по ID
func (r *Repository) DeleteByIDAndCustomerID(ctx context.Context, id int64, customerID string) error {
	return r.deleteOne(ctx, "DeleteByIDAndCustomerID", squirrel.Eq{"id": id, "customer_id": customerID})
}

// DeleteByCustomerID удаляет все записи клиента и возвращает их количество.
// Отсутствие записей ошибкой не считается.
func (r *Repository) DeleteByCustomerID(ctx context.Context, customerID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableAppointments).
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByCustomerID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByCustomerID - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByCustomerID - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

func (r *Repository) getOne(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return appointment, nil
}

func (r *Repository) deleteOne(ctx context.Context, op string, where squirrel.Eq) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableAppointments).
		Where(where).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	return requireAffected(result, op)
}

func (r *Repository) queryAppointments(ctx context.Context, op, query string, args []interface{}) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment

	err := row.Scan(
		&appointment.ID,
		&appointment.Title,
		&appointment.Notes,
		&appointment.Category,
		&appointment.StartDate,
		&appointment.Done,
		&appointment.CustomerID,
	)
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// mapWriteError выделяет переполнение колонки notes из ошибок драйвера
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgStringDataRightTruncation {
		return fmt.Errorf("%w: %s: %v", ErrNotesTooLong, op, pqErr.Message)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
