package mailer

import (
	"context"

	"github.com/mailersend/mailersend-go"
)

// Sender отправка письма (mailersend Email service)
type Sender interface {
	Send(ctx context.Context, message *mailersend.Message) (*mailersend.Response, error)
}

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder учёт отправленных уведомлений (pkg/metrics)
type Recorder interface {
	RecordNotification(kind string, err error)
}
