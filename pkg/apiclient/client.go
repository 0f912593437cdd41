// Package apiclient is the typed HTTP client the chat front-end uses to talk
// to the registration API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
}

type UpsertRegistrationParams struct {
	EventID        string `json:"event_id"`
	TelegramUserID int64  `json:"telegram_user_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

type UpsertRegistrationResult struct {
	RegistrationID string `json:"registration_id"`
	Status         string `json:"status"` // created | updated
}

type RegistrationQRResult struct {
	RegistrationID string `json:"registration_id"`
	QRToken        string `json:"qr_token"`
}

// APIError carries the server's status code and message so the bot can show
// conflict reasons (duplicate email/phone) to the attendee verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) ListEvents(ctx context.Context, status string) ([]Event, error) {
	endpoint := c.baseURL + "/events"
	if status != "" {
		endpoint += "?status=" + url.QueryEscape(status)
	}

	var events []Event
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) UpsertRegistration(ctx context.Context, params UpsertRegistrationParams) (*UpsertRegistrationResult, error) {
	var result UpsertRegistrationResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/registrations", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GenerateRegistrationQR(ctx context.Context, registrationID string) (*RegistrationQRResult, error) {
	endpoint := fmt.Sprintf("%s/registrations/%s/qr", c.baseURL, url.PathEscape(registrationID))

	var result RegistrationQRResult
	if err := c.do(ctx, http.MethodPost, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
