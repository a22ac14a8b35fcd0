package contact

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/EquestrianHub/internal/integrations/mailer"
	"github.com/m04kA/EquestrianHub/pkg/logger"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) ContactMessage(ctx context.Context, form mailer.ContactForm) error {
	return m.Called(ctx, form).Error(0)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		sendErr error
		status  int
	}{
		{"sent", `{"name":"Ann","email":"ann@example.com","message":"Do you have pony rides?"}`, nil, http.StatusAccepted},
		{"mailer down", `{"name":"Ann","email":"ann@example.com","message":"Hi"}`, mailer.ErrSendFailed, http.StatusBadGateway},
		{"bad email", `{"name":"Ann","email":"ann@","message":"Hi"}`, nil, http.StatusBadRequest},
		{"no name", `{"name":" ","email":"ann@example.com","message":"Hi"}`, nil, http.StatusBadRequest},
		{"no message", `{"name":"Ann","email":"ann@example.com","message":""}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockMailer{}
			m.On("ContactMessage", mock.Anything, mock.MatchedBy(func(f mailer.ContactForm) bool {
				return f.Name == "Ann" && f.Email == "ann@example.com"
			})).Return(tt.sendErr).Maybe()

			w := httptest.NewRecorder()
			NewHandler(m, logger.NewWriter(io.Discard, logger.LevelDebug)).
				Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestValidate_PhoneOptional(t *testing.T) {
	req := ContactRequest{Name: "Ann", Email: "ann@example.com", Message: "Hi"}
	assert.NoError(t, req.Validate())

	req.Email = "not an email"
	assert.True(t, errors.Is(req.Validate(), errInvalidEmail))
}
