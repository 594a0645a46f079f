package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/earlyaccess"
	"github.com/sirchsolutions/sirchweb/internal/service"
)

func TestEarlyAccessSignup(t *testing.T) {
	tests := []struct {
		name        string
		configured  bool
		sendErr     error
		body        string
		wantStatus  int
		wantMessage string
		wantCalls   int
	}{
		{
			name:        "success",
			configured:  true,
			body:        `{"email":"lead@example.com"}`,
			wantStatus:  http.StatusOK,
			wantMessage: earlyaccess.MessageSignedUp,
			wantCalls:   1,
		},
		{
			name:        "missing email",
			configured:  true,
			body:        `{"email":"  "}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: earlyaccess.MessageEmailRequired,
		},
		{
			name:        "invalid email",
			configured:  true,
			body:        `{"email":"lead@example"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: earlyaccess.MessageEmailInvalid,
		},
		{
			name:        "not configured",
			configured:  false,
			body:        `{"email":"lead@example.com"}`,
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: contact.MessageUnavailable,
		},
		{
			name:        "provider failure",
			configured:  true,
			sendErr:     &service.DeliveryError{Provider: "resend", Status: 500, Err: errors.New("boom")},
			body:        `{"email":"lead@example.com"}`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: earlyaccess.MessageServerError,
			wantCalls:   1,
		},
		{
			name:        "malformed body",
			configured:  true,
			body:        `email=lead@example.com`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: earlyaccess.MessageServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &mockDispatcher{
				configured: tt.configured,
				sendFunc:   func(*service.EmailMessage) error { return tt.sendErr },
			}
			w := postJSON(newTestRouter(dispatcher, true), "/api/early-access", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMessage, decodeBody(t, w).Message)
			require.Equal(t, tt.wantCalls, dispatcher.calls())
			if tt.wantCalls > 0 {
				assert.Equal(t, "lead@example.com", dispatcher.sent[0].ReplyTo)
				assert.Equal(t, operatorAddress, dispatcher.sent[0].To)
			}
		})
	}
}
