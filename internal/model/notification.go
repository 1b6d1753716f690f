package model

import (
	"encoding/json"
	"errors"
	"time"
)

// Fixed notification copy shared by both delivery routes.
const (
	NotificationTitle      = "Notificação"
	NotificationSound      = "default"
	PayloadTypeSuccess     = "success"
	PayloadReceivedMessage = "New notification received!"
)

// createdAtLayout matches JavaScript's Date.toISOString output.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Validation errors. The messages are returned to clients verbatim.
var (
	ErrMissingToken  = errors.New("Token não fornecido")
	ErrMissingFields = errors.New("Campos obrigatórios: token, message, notificationType")
	ErrInvalidBody   = errors.New("invalid request body")
)

// NotificationRequest is the request body for POST /send-notification.
type NotificationRequest struct {
	Token            string `json:"token"`
	Message          string `json:"message"`
	NotificationType string `json:"notificationType"`
}

// Validate checks that every field is present.
func (r NotificationRequest) Validate() error {
	if r.Token == "" || r.Message == "" || r.NotificationType == "" {
		return ErrMissingFields
	}
	return nil
}

// NotificationPayload is the app-facing data attached to every push.
type NotificationPayload struct {
	Type    string           `json:"type"`
	Message string           `json:"message"`
	Data    NotificationData `json:"data"`
}

type NotificationData struct {
	ID               int64  `json:"id"` // Unix milliseconds
	Message          string `json:"message"`
	NotificationType string `json:"notificationType"`
	CreatedAt        string `json:"createdAt"` // ISO-8601, UTC
}

// NewNotificationPayload stamps a payload for req at now.
func NewNotificationPayload(req NotificationRequest, now time.Time) NotificationPayload {
	now = now.UTC()
	return NotificationPayload{
		Type:    PayloadTypeSuccess,
		Message: PayloadReceivedMessage,
		Data: NotificationData{
			ID:               now.UnixMilli(),
			Message:          req.Message,
			NotificationType: req.NotificationType,
			CreatedAt:        now.Format(createdAtLayout),
		},
	}
}

// StringMap flattens the payload for providers whose data field only
// accepts string values. The inner data object is JSON-encoded.
func (p NotificationPayload) StringMap() (map[string]string, error) {
	inner, err := json.Marshal(p.Data)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"type":    p.Type,
		"message": p.Message,
		"data":    string(inner),
	}, nil
}

// DeliveryResult is what a sender reports after a successful hand-off.
type DeliveryResult struct {
	Route string

	// GatewayBody is the JSON body returned by the push gateway.
	GatewayBody json.RawMessage

	// MessageID is the identifier assigned by the cloud messaging provider.
	MessageID string
}

// SendNotificationResponse is the success body for POST /send-notification.
// Gateway deliveries carry Result; messaging deliveries carry Response and
// the payload that was sent.
type SendNotificationResponse struct {
	Success             bool                 `json:"success"`
	Result              json.RawMessage      `json:"result,omitempty"`
	Response            string               `json:"response,omitempty"`
	NotificationPayload *NotificationPayload `json:"notificationPayload,omitempty"`
}

// FailureResponse is the body for delivery failures.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
