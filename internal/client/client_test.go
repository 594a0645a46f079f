package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
)

func janeSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "I need a website for my bakery.",
		Consent: true,
	}
}

func TestSubmitSendsOneJSONPost(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Jane Doe", got["name"])
		assert.Equal(t, true, got["consent"])
		assert.NotContains(t, got, "honeypot")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Message sent successfully! We will be in touch soon."}`))
	}))
	defer srv.Close()

	info, err := New(srv.URL+"/", time.Second).Submit(context.Background(), janeSubmission())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, info.Status)
	assert.Equal(t, "Message sent successfully! We will be in touch soon.", info.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubmitFailureKinds(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		wantKind Kind
	}{
		{status: http.StatusBadRequest, body: `{"message":"Please correct the highlighted fields.","errors":{"name":"Name must be at least 2 characters."}}`, wantKind: KindInvalid},
		{status: http.StatusTooManyRequests, body: `{"message":"Too many requests. Please try again later."}`, wantKind: KindRateLimited},
		{status: http.StatusServiceUnavailable, body: `{"message":"Email service is temporarily unavailable. Please try again later."}`, wantKind: KindUnavailable},
		{status: http.StatusInternalServerError, body: `{"message":"Failed to send admin notification"}`, wantKind: KindServer},
		{status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantKind: KindServer},
		{status: http.StatusNotFound, body: `404 page not found`, wantKind: KindUnknown},
		{status: http.StatusRequestEntityTooLarge, body: `{"message":"Request body too large"}`, wantKind: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Submit(context.Background(), janeSubmission())

			var submitErr *SubmitError
			require.ErrorAs(t, err, &submitErr)
			assert.Equal(t, tt.wantKind, submitErr.Kind)
			assert.Equal(t, tt.status, submitErr.Status)
			assert.Equal(t, tt.wantKind.Message(), submitErr.Message)
		})
	}
}

func TestSubmitKeepsFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Please correct the highlighted fields.","errors":{"name":"Name must be at least 2 characters.","message":"Message must be at least 10 characters."}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Submit(context.Background(), contact.Submission{Name: "J"})

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, "Please correct the highlighted fields.", submitErr.ServerMessage)
	assert.Len(t, submitErr.FieldErrors, 2)
}

func TestSubmitNetworkErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(url, time.Second).Submit(context.Background(), janeSubmission())

		var submitErr *SubmitError
		require.ErrorAs(t, err, &submitErr)
		assert.Equal(t, KindNetwork, submitErr.Kind)
		assert.Zero(t, submitErr.Status)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		_, err := New(srv.URL, 50*time.Millisecond).Submit(context.Background(), janeSubmission())

		var submitErr *SubmitError
		require.ErrorAs(t, err, &submitErr)
		assert.Equal(t, KindNetwork, submitErr.Kind)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(srv.URL, time.Second).Submit(ctx, janeSubmission())

		var submitErr *SubmitError
		require.ErrorAs(t, err, &submitErr)
		assert.Equal(t, KindNetwork, submitErr.Kind)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestSignupEarlyAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/early-access", r.URL.Path)
		var got map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "lead@example.com", got["email"])
		w.Write([]byte(`{"message":"Successfully signed up!"}`))
	}))
	defer srv.Close()

	info, err := New(srv.URL, time.Second).SignupEarlyAccess(context.Background(), "lead@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Successfully signed up!", info.Message)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"message":"Health check OK","email_configured":true,"version":"v1.4.0","build_time":"2026-03-01T10:00:00Z"}`))
	}))
	defer srv.Close()

	info, err := New(srv.URL, time.Second).Health(context.Background())
	require.NoError(t, err)
	assert.True(t, info.EmailConfigured)
	assert.Equal(t, "v1.4.0", info.Version)
}

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, KindInvalid, KindForStatus(400))
	assert.Equal(t, KindUnknown, KindForStatus(401))
	assert.Equal(t, KindRateLimited, KindForStatus(429))
	assert.Equal(t, KindServer, KindForStatus(500))
	assert.Equal(t, KindUnavailable, KindForStatus(503))
	assert.Equal(t, KindServer, KindForStatus(504))
	assert.Equal(t, "Something went wrong. Please try again.", Kind("bogus").Message())
}
