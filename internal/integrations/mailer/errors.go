package mailer

import (
	"fmt"

	"github.com/m04kA/EquestrianHub/internal/domain"
)

// ErrSendFailed письмо не отправлено
var ErrSendFailed = fmt.Errorf("mailer: send failed: %w", domain.ErrUpstreamFailure)
