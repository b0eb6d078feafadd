package middleware

import "time"

// MetricsRecorder принимает наблюдения по HTTP запросам
type MetricsRecorder interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}
