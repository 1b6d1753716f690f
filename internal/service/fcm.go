package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"pushrelay/internal/model"
)

// MessagingClient is the part of *messaging.Client the relay uses.
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMClient wraps the Firebase Cloud Messaging client.
//
// Any token that is not an Expo token is treated as an FCM registration
// token and sent as a single-device message.
//
// The credentials come from Firebase Console:
// Project Settings -> Service Accounts -> Generate New Private Key
type FCMClient struct {
	client MessagingClient
}

// NewFCMClient initializes Firebase from a service-account JSON blob.
func NewFCMClient(ctx context.Context, projectID string, credentialsJSON []byte, logger *zap.Logger) (*FCMClient, error) {
	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	logger.Info("firebase messaging initialized", zap.String("project_id", projectID))
	return NewFCMClientWith(client), nil
}

// NewFCMClientWith wraps an existing messaging client.
func NewFCMClientWith(client MessagingClient) *FCMClient {
	return &FCMClient{client: client}
}

// Route implements Sender.
func (c *FCMClient) Route() string { return model.RouteMessaging }

// Send delivers one notification to token and returns the FCM message ID.
func (c *FCMClient) Send(ctx context.Context, token model.DeviceToken, message string, payload model.NotificationPayload) (*model.DeliveryResult, error) {
	data, err := payload.StringMap()
	if err != nil {
		return nil, fmt.Errorf("encode data payload: %w", err)
	}

	// "Notification" is what the user sees; "Data" is for the app to process.
	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: model.NotificationTitle,
			Body:  message,
		},
		Data:  data,
		Token: token.Value,
	}

	messageID, err := c.client.Send(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return &model.DeliveryResult{
		Route:     model.RouteMessaging,
		MessageID: messageID,
	}, nil
}
