package model

import (
	"errors"
	"strings"
)

// GatewayTokenPrefix marks tokens issued by the Expo push gateway,
// e.g. "ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]".
const GatewayTokenPrefix = "ExponentPushToken"

// TokenKind says which delivery service a device token belongs to.
type TokenKind int

const (
	// TokenKindMessaging tokens are delivered through Firebase Cloud Messaging.
	TokenKindMessaging TokenKind = iota
	// TokenKindGateway tokens are delivered through the Expo push gateway.
	TokenKindGateway
)

// Route names, also used as metric and event labels.
const (
	RouteGateway   = "gateway"
	RouteMessaging = "messaging"
)

func (k TokenKind) String() string {
	if k == TokenKindGateway {
		return RouteGateway
	}
	return RouteMessaging
}

// DeviceToken is an opaque client device identifier, classified once
// at request entry.
type DeviceToken struct {
	Value string
	Kind  TokenKind
}

// ErrEmptyToken is returned when a device token is the empty string.
var ErrEmptyToken = errors.New("device token is empty")

// ParseDeviceToken classifies raw by prefix.
func ParseDeviceToken(raw string) (DeviceToken, error) {
	if raw == "" {
		return DeviceToken{}, ErrEmptyToken
	}
	if strings.HasPrefix(raw, GatewayTokenPrefix) {
		return DeviceToken{Value: raw, Kind: TokenKindGateway}, nil
	}
	return DeviceToken{Value: raw, Kind: TokenKindMessaging}, nil
}

// RegisterDeviceRequest is the request body for POST /register-device.
type RegisterDeviceRequest struct {
	Token string `json:"token"`
}

// RegisterDeviceResponse echoes the tokens accepted by this request only.
type RegisterDeviceResponse struct {
	Success bool     `json:"success"`
	Tokens  []string `json:"tokens"`
}
