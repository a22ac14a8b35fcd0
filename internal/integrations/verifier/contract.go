package verifier

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder учёт исходов проверки (pkg/metrics)
type Recorder interface {
	RecordVerification(summary string)
}
