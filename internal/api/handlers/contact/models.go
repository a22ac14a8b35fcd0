package contact

import (
	"errors"
	"regexp"
	"strings"

	"github.com/m04kA/EquestrianHub/internal/integrations/mailer"
)

const maxMessageLength = 5000

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	errNameRequired    = errors.New("name is required")
	errInvalidEmail    = errors.New("a valid email is required")
	errMessageRequired = errors.New("message is required")
	errMessageTooLong  = errors.New("message is too long")
)

// ContactRequest HTTP request model
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Validate name, email, message обязательны; phone опционален
func (r *ContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errNameRequired
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		return errInvalidEmail
	}
	message := strings.TrimSpace(r.Message)
	if message == "" {
		return errMessageRequired
	}
	if len(message) > maxMessageLength {
		return errMessageTooLong
	}
	return nil
}

func (r *ContactRequest) ToContactForm() mailer.ContactForm {
	return mailer.ContactForm{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}
