package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mercury-mail.backend/internal/domain/entities"
)

// DefaultBaseURL is the production Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// ResendClient delivers outbound mail through the Resend HTTP API.
type ResendClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewResendClient creates a client against the production endpoint.
func NewResendClient(apiKey string) *ResendClient {
	return NewResendClientWithBaseURL(apiKey, DefaultBaseURL)
}

// NewResendClientWithBaseURL creates a client against a custom endpoint.
func NewResendClientWithBaseURL(apiKey, baseURL string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type resendSuccessResponse struct {
	ID string `json:"id"`
}

type resendErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send submits a message for delivery. Provider-level rejections are
// reported inside the result, not as an error; only transport failures
// return an error.
func (c *ResendClient) Send(ctx context.Context, msg *entities.OutboundMessage) (*entities.SendResult, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read resend response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var success resendSuccessResponse
		if err := json.Unmarshal(rawBody, &success); err == nil && success.ID != "" {
			return &entities.SendResult{
				Success:   true,
				MessageID: success.ID,
				Status:    resp.StatusCode,
			}, nil
		}
		return &entities.SendResult{
			Success: false,
			Error:   "resend response missing message id",
			Status:  resp.StatusCode,
		}, nil
	}

	var provider resendErrorResponse
	if err := json.Unmarshal(rawBody, &provider); err == nil && (provider.Name != "" || provider.Message != "") {
		msg := provider.Message
		if provider.Name != "" && provider.Message != "" {
			msg = provider.Name + ": " + provider.Message
		} else if provider.Name != "" {
			msg = provider.Name
		}
		return &entities.SendResult{
			Success: false,
			Error:   msg,
			Status:  resp.StatusCode,
		}, nil
	}

	return &entities.SendResult{
		Success: false,
		Error:   fmt.Sprintf("resend request failed with status %d", resp.StatusCode),
		Status:  resp.StatusCode,
	}, nil
}
