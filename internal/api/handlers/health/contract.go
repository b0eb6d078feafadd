package health

import "context"

// ReadyCheck именованная проверка зависимости для /readyz
type ReadyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
