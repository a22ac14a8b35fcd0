package contact

import (
	"context"

	"github.com/m04kA/EquestrianHub/internal/integrations/mailer"
)

type ContactMailer interface {
	ContactMessage(ctx context.Context, form mailer.ContactForm) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
