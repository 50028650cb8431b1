package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mercury-mail.backend/internal/domain/entities"
)

func testMessage() *entities.OutboundMessage {
	return &entities.OutboundMessage{
		To:      "dest@example.com",
		Subject: "hello",
		From:    "hello@mistystep.io",
		Text:    "body",
	}
}

func TestResendClientSendSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/emails", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"re_abc123"}`))
	}))
	defer server.Close()

	client := NewResendClientWithBaseURL("test-api-key", server.URL)
	result, err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "re_abc123", result.MessageID)
	assert.Equal(t, "Bearer test-api-key", gotAuth)
	assert.Equal(t, "dest@example.com", gotBody["to"])
}

func TestResendClientProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"from domain is not verified"}`))
	}))
	defer server.Close()

	client := NewResendClientWithBaseURL("test-api-key", server.URL)
	result, err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "validation_error: from domain is not verified", result.Error)
	assert.Equal(t, http.StatusUnprocessableEntity, result.Status)
}

func TestResendClientOpaqueError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))
	defer server.Close()

	client := NewResendClientWithBaseURL("test-api-key", server.URL)
	result, err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "resend request failed with status 502", result.Error)
}

func TestResendClientSuccessWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewResendClientWithBaseURL("test-api-key", server.URL)
	result, err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "resend response missing message id", result.Error)
}

func TestResendClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewResendClientWithBaseURL("test-api-key", server.URL)
	_, err := client.Send(context.Background(), testMessage())
	assert.Error(t, err)
}
