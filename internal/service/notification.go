package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"pushrelay/internal/metrics"
	"pushrelay/internal/model"
	"pushrelay/internal/queue"
)

// Sender delivers a single notification through one provider.
type Sender interface {
	// Route names the provider ("gateway" or "messaging").
	Route() string
	Send(ctx context.Context, token model.DeviceToken, message string, payload model.NotificationPayload) (*model.DeliveryResult, error)
}

// NotificationService validates requests and routes each one to the sender
// matching the device token's kind.
type NotificationService struct {
	gateway   Sender
	messaging Sender
	publisher queue.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewNotificationService(
	gateway Sender,
	messaging Sender,
	publisher queue.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotificationService {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	return &NotificationService{
		gateway:   gateway,
		messaging: messaging,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterDevice validates a device token.
// The returned list only lives for this call; nothing is stored.
func (s *NotificationService) RegisterDevice(ctx context.Context, token string) ([]string, error) {
	if _, err := model.ParseDeviceToken(token); err != nil {
		return nil, model.ErrMissingToken
	}

	deviceTokens := make([]string, 0, 1)
	deviceTokens = append(deviceTokens, token)

	s.metrics.IncRegistrations()
	return deviceTokens, nil
}

// SendNotification builds the payload for req and hands it to one provider.
// Validation failures return model.ErrMissingFields; provider failures are
// returned as-is (a *GatewayStatusError for gateway non-2xx answers).
func (s *NotificationService) SendNotification(ctx context.Context, req model.NotificationRequest) (*model.SendNotificationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	token, err := model.ParseDeviceToken(req.Token)
	if err != nil {
		return nil, model.ErrMissingFields
	}

	payload := model.NewNotificationPayload(req, s.now())
	sender := s.senderFor(token.Kind)

	start := time.Now()
	result, err := sender.Send(ctx, token, req.Message, payload)
	outcome := outcomeOf(err)

	s.metrics.ObserveDispatch(sender.Route(), outcome, time.Since(start))
	s.recordDispatch(ctx, sender.Route(), outcome, req.NotificationType, err)

	if err != nil {
		s.logger.Error("notification dispatch failed",
			zap.String("route", sender.Route()),
			zap.String("notification_type", req.NotificationType),
			zap.Error(err),
		)
		return nil, err
	}

	if result.Route == model.RouteGateway {
		return &model.SendNotificationResponse{Success: true, Result: result.GatewayBody}, nil
	}
	return &model.SendNotificationResponse{
		Success:             true,
		Response:            result.MessageID,
		NotificationPayload: &payload,
	}, nil
}

func (s *NotificationService) senderFor(kind model.TokenKind) Sender {
	if kind == model.TokenKindGateway {
		return s.gateway
	}
	return s.messaging
}

// recordDispatch publishes the dispatch event. Failures are logged only.
func (s *NotificationService) recordDispatch(ctx context.Context, route, outcome, notifType string, dispatchErr error) {
	event := queue.NewDispatchEvent(route, outcome, notifType, dispatchErr, s.now())
	if _, err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish dispatch event",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}

// ProviderMessage returns the innermost cause of err: the provider's own
// message without the context added while the error was wrapped.
func ProviderMessage(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}

func outcomeOf(err error) string {
	var statusErr *GatewayStatusError
	switch {
	case err == nil:
		return queue.OutcomeDelivered
	case errors.As(err, &statusErr):
		return queue.OutcomeRejected
	default:
		return queue.OutcomeFailed
	}
}
