package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	byIDCache       = "appointment"
	byCustomerCache = "customer_appointments"
)

// Cache read-through кэш записей в Redis.
// Кэшируются GetByID и GetByCustomerID, любая запись вытесняет затронутые ключи.
// Внутри транзакции чтения идут мимо кэша, чтобы сохранить блокировки строк.
// Ошибки Redis не прерывают запрос: данные читаются из хранилища.
type Cache struct {
	base     Repository
	redis    *redis.Client
	ttl      time.Duration
	recorder Recorder
	logger   Logger
}

// NewCache создает кэширующую обертку над репозиторием. recorder может быть nil.
func NewCache(base Repository, client *redis.Client, ttl time.Duration, recorder Recorder, logger Logger) *Cache {
	if base == nil {
		panic("appointment.NewCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	return &Cache{
		base:     base,
		redis:    client,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger,
	}
}

// cachedAppointment формат записи в Redis
type cachedAppointment struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Notes      *string        `json:"notes"`
	Category   string         `json:"category"`
	StartDate  types.DateTime `json:"startDate"`
	Done       bool           `json:"done"`
	CustomerID string         `json:"customerId"`
}

func toCached(a *domain.Appointment) cachedAppointment {
	c := a.Clone()
	return cachedAppointment(c)
}

func (c cachedAppointment) toDomain() *domain.Appointment {
	a := domain.Appointment(c).Clone()
	return &a
}

func (c *Cache) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	created, err := c.base.Create(ctx, appointment)
	if err != nil {
		return nil, err
	}

	c.evict(ctx, byCustomerKey(created.CustomerID))
	return created, nil
}

func (c *Cache) GetAll(ctx context.Context) ([]*domain.Appointment, error) {
	return c.base.GetAll(ctx)
}

func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.base.GetByID(ctx, id)
	}

	var cached cachedAppointment
	if c.load(ctx, byIDCache, byIDKey(id), &cached) {
		return cached.toDomain(), nil
	}

	appointment, err := c.base.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, byIDKey(id), toCached(appointment))
	return appointment, nil
}

func (c *Cache) GetByCustomerID(ctx context.Context, customerID string) ([]*domain.Appointment, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.base.GetByCustomerID(ctx, customerID)
	}

	var cached []cachedAppointment
	if c.load(ctx, byCustomerCache, byCustomerKey(customerID), &cached) {
		appointments := make([]*domain.Appointment, 0, len(cached))
		for _, a := range cached {
			appointments = append(appointments, a.toDomain())
		}
		return appointments, nil
	}

	appointments, err := c.base.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	records := make([]cachedAppointment, 0, len(appointments))
	for _, a := range appointments {
		records = append(records, toCached(a))
	}
	c.store(ctx, byCustomerKey(customerID), records)
	return appointments, nil
}

func (c *Cache) GetByIDAndCustomerID(ctx context.Context, id int64, customerID string) (*domain.Appointment, error) {
	return c.base.GetByIDAndCustomerID(ctx, id, customerID)
}

func (c *Cache) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return c.base.ExistsByID(ctx, id)
}

// Update вытесняет запись и списки прежнего и нового клиента
func (c *Cache) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	keys := []string{byIDKey(appointment.ID), byCustomerKey(appointment.CustomerID)}
	if previous, err := c.base.GetByID(ctx, appointment.ID); err == nil {
		keys = append(keys, byCustomerKey(previous.CustomerID))
	}

	updated, err := c.base.Update(ctx, appointment)
	if err != nil {
		return nil, err
	}

	c.evict(ctx, keys...)
	return updated, nil
}

func (c *Cache) DeleteByID(ctx context.Context, id int64) error {
	keys := []string{byIDKey(id)}
	if previous, err := c.base.GetByID(ctx, id); err == nil {
		keys = append(keys, byCustomerKey(previous.CustomerID))
	}

	if err := c.base.DeleteByID(ctx, id); err != nil {
		return err
	}

	c.evict(ctx, keys...)
	return nil
}

func (c *Cache) DeleteByCustomerID(ctx context.Context, customerID string) (int64, error) {
	keys := []string{byCustomerKey(customerID)}
	if previous, err := c.base.GetByCustomerID(ctx, customerID); err == nil {
		for _, a := range previous {
			keys = append(keys, byIDKey(a.ID))
		}
	}

	deleted, err := c.base.DeleteByCustomerID(ctx, customerID)
	if err != nil {
		return 0, err
	}

	c.evict(ctx, keys...)
	return deleted, nil
}

func (c *Cache) DeleteByIDAndCustomerID(ctx context.Context, id int64, customerID string) error {
	if err := c.base.DeleteByIDAndCustomerID(ctx, id, customerID); err != nil {
		return err
	}

	c.evict(ctx, byIDKey(id), byCustomerKey(customerID))
	return nil
}

func (c *Cache) load(ctx context.Context, cache, key string, dst interface{}) bool {
	if c.redis == nil {
		return false
	}

	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn("cache get %s: %v", key, err)
		}
		c.miss(cache)
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.warn("cache decode %s: %v", key, err)
		_ = c.redis.Del(ctx, key).Err()
		c.miss(cache)
		return false
	}

	c.hit(cache)
	return true
}

func (c *Cache) store(ctx context.Context, key string, value interface{}) {
	if c.redis == nil || c.ttl == 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.warn("cache encode %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.warn("cache set %s: %v", key, err)
	}
}

func (c *Cache) evict(ctx context.Context, keys ...string) {
	if c.redis == nil || len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.warn("cache evict %v: %v", keys, err)
	}
}

func (c *Cache) hit(cache string) {
	if c.recorder != nil {
		c.recorder.CacheHit(cache)
	}
}

func (c *Cache) miss(cache string) {
	if c.recorder != nil {
		c.recorder.CacheMiss(cache)
	}
}

func (c *Cache) warn(format string, v ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(format, v...)
	}
}

func byIDKey(id int64) string {
	return fmt.Sprintf("appointments:id:%d", id)
}

func byCustomerKey(customerID string) string {
	return "appointments:customer:" + customerID
}
