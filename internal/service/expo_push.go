package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pushrelay/internal/model"
)

// ExpoPushClient sends push notifications via Expo's Push API.
//
// How it works:
// 1. The React Native app gets an Expo Push Token ("ExponentPushToken[xxx]")
// 2. The app sends it along with the notification request
// 3. We POST one message to Expo's API for that token
// 4. Expo handles delivery to both iOS and Android
//
// Expo needs no credentials, so the client only carries the endpoint.
type ExpoPushClient struct {
	httpClient *http.Client
	endpoint   string
}

// ExpoPushMessage is the payload for Expo's Push API.
type ExpoPushMessage struct {
	To    string                    `json:"to"`    // Expo push token
	Sound string                    `json:"sound"` // "default" or custom sound
	Title string                    `json:"title"`
	Body  string                    `json:"body"`
	Data  model.NotificationPayload `json:"data"`
}

// GatewayStatusError is returned when Expo answers with a non-2xx status.
// Its message is the raw response body so callers can surface it unchanged.
type GatewayStatusError struct {
	StatusCode int
	Body       string
}

func (e *GatewayStatusError) Error() string {
	return e.Body
}

// NewExpoPushClient creates a client for the given endpoint.
// A zero timeout leaves outbound calls bounded only by the request context.
func NewExpoPushClient(endpoint string, timeout time.Duration) *ExpoPushClient {
	return &ExpoPushClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		endpoint: endpoint,
	}
}

// Route implements Sender.
func (c *ExpoPushClient) Route() string { return model.RouteGateway }

// Send posts a single message for token and returns Expo's JSON response.
func (c *ExpoPushClient) Send(ctx context.Context, token model.DeviceToken, message string, payload model.NotificationPayload) (*model.DeliveryResult, error) {
	body, err := json.Marshal(ExpoPushMessage{
		To:    token.Value,
		Sound: model.NotificationSound,
		Title: model.NotificationTitle,
		Body:  message,
		Data:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayStatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("invalid json response body from %s", c.endpoint)
	}

	return &model.DeliveryResult{
		Route:       model.RouteGateway,
		GatewayBody: json.RawMessage(respBody),
	}, nil
}
