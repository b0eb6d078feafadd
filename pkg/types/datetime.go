package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout формат даты и времени без часового пояса ("2025-11-15T10:00:00")
const DateTimeLayout = "2006-01-02T15:04:05"

// outputLayout добавляет дробную часть секунд только если она ненулевая
const outputLayout = "2006-01-02T15:04:05.999999"

var (
	// ErrInvalidDateTime возвращается при некорректном формате даты и времени
	ErrInvalidDateTime = errors.New("invalid date-time format")

	parseLayouts = []string{
		DateTimeLayout,
		"2006-01-02T15:04",
		time.RFC3339Nano,
	}
)

// DateTime дата и время без часового пояса.
// Значения с явным смещением приводятся к UTC, точность ограничена микросекундами (как у TIMESTAMP в postgres).
type DateTime struct {
	t time.Time
}

// NewDateTime создает DateTime из time.Time
func NewDateTime(t time.Time) DateTime {
	return DateTime{t: normalize(t)}
}

// ParseDateTime разбирает строку в формате ISO-8601
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateTime{}, fmt.Errorf("%w: empty value", ErrInvalidDateTime)
	}

	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		parsed := NewDateTime(t)
		if parsed.IsZero() {
			// нулевой момент неотличим от незаданного значения
			return DateTime{}, fmt.Errorf("%w: zero instant %q", ErrInvalidDateTime, s)
		}
		return parsed, nil
	}

	return DateTime{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// Time возвращает значение как time.Time в UTC
func (d DateTime) Time() time.Time {
	return d.t
}

// IsZero проверяет, что значение не задано
func (d DateTime) IsZero() bool {
	return d.t.IsZero()
}

// Equal сравнивает два значения
func (d DateTime) Equal(other DateTime) bool {
	return d.t.Equal(other.t)
}

// String возвращает строковое представление ("2025-11-15T10:00:00")
func (d DateTime) String() string {
	return d.t.Format(outputLayout)
}

// MarshalJSON реализует json.Marshaler
func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON реализует json.Unmarshaler
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DateTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateTime, err)
	}

	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner
func (d *DateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDateTime(v)
		return nil
	case string:
		parsed, err := parseDB(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := parseDB(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = DateTime{}
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateTime, src)
	}
}

// Value реализует driver.Valuer
func (d DateTime) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// parseDB разбирает текстовое представление TIMESTAMP ("2025-11-15 10:00:00")
func parseDB(s string) (DateTime, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return NewDateTime(t), nil
	}
	return ParseDateTime(s)
}

// normalize отбрасывает часовой пояс: значение со смещением переводится в UTC
func normalize(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	u := t.UTC().Truncate(time.Microsecond)
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), u.Nanosecond(), time.UTC)
}
