package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pushrelay/internal/httputil"
	"pushrelay/internal/model"
	"pushrelay/internal/service"
)

type NotificationHandler struct {
	notifService *service.NotificationService
}

func NewNotificationHandler(notifService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
	}
}

// RegisterDevice handles POST /register-device
// Validates the token; nothing is persisted.
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterDeviceRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteBadRequest(w, model.ErrInvalidBody.Error())
		return
	}

	tokens, err := h.notifService.RegisterDevice(r.Context(), req.Token)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.RegisterDeviceResponse{
		Success: true,
		Tokens:  tokens,
	})
}

// SendNotification handles POST /send-notification
// Routes the notification to the push gateway or cloud messaging by token shape.
func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req model.NotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteBadRequest(w, model.ErrInvalidBody.Error())
		return
	}

	resp, err := h.notifService.SendNotification(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrMissingFields) {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		// Gateway status errors carry the raw gateway body as their message.
		httputil.WriteDeliveryFailure(w, service.ProviderMessage(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// decodeJSON decodes exactly one JSON value from the request body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return model.ErrInvalidBody
	}
	return nil
}
