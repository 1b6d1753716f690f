package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pushrelay/internal/model"
)

// fakeGateway records every request and answers with a canned response.
type fakeGateway struct {
	status int
	body   string

	calls []gatewayCall
}

type gatewayCall struct {
	Method      string
	ContentType string
	Body        map[string]interface{}
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)
	g.calls = append(g.calls, gatewayCall{
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})

	w.WriteHeader(g.status)
	_, _ = io.WriteString(w, g.body)
}

func newTestPayload() model.NotificationPayload {
	return model.NewNotificationPayload(
		model.NotificationRequest{Token: "ExponentPushToken[abc]", Message: "Olá", NotificationType: "chat"},
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	)
}

func TestExpoPushClient_Send_Success(t *testing.T) {
	// ARRANGE
	gw := &fakeGateway{status: http.StatusOK, body: `{"data":{"status":"ok","id":"XXXX-XXXX"}}`}
	server := httptest.NewServer(gw)
	defer server.Close()

	client := NewExpoPushClient(server.URL, 0)
	token, _ := model.ParseDeviceToken("ExponentPushToken[abc]")

	// ACT
	result, err := client.Send(context.Background(), token, "Olá", newTestPayload())

	// ASSERT
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Route != model.RouteGateway {
		t.Errorf("route = %q, want %q", result.Route, model.RouteGateway)
	}
	if string(result.GatewayBody) != gw.body {
		t.Errorf("gateway body = %s, want %s", result.GatewayBody, gw.body)
	}

	if len(gw.calls) != 1 {
		t.Fatalf("gateway called %d times, want 1", len(gw.calls))
	}
	call := gw.calls[0]
	if call.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", call.Method)
	}
	if call.ContentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", call.ContentType)
	}

	wantFields := map[string]string{
		"to":    "ExponentPushToken[abc]",
		"sound": "default",
		"title": "Notificação",
		"body":  "Olá",
	}
	for field, want := range wantFields {
		if got := call.Body[field]; got != want {
			t.Errorf("%s = %v, want %q", field, got, want)
		}
	}

	data, ok := call.Body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T, want object", call.Body["data"])
	}
	if data["type"] != "success" || data["message"] != "New notification received!" {
		t.Errorf("data = %v, want notification payload", data)
	}
	inner, ok := data["data"].(map[string]interface{})
	if !ok || inner["notificationType"] != "chat" || inner["createdAt"] != "2024-01-01T12:00:00.000Z" {
		t.Errorf("data.data = %v", data["data"])
	}
}

func TestExpoPushClient_Send_NonSuccessStatus(t *testing.T) {
	gw := &fakeGateway{status: http.StatusBadRequest, body: `{"errors":[{"code":"VALIDATION_ERROR","message":"\"to\" must be a valid token"}]}`}
	server := httptest.NewServer(gw)
	defer server.Close()

	client := NewExpoPushClient(server.URL, 0)
	token, _ := model.ParseDeviceToken("ExponentPushToken[bad]")

	result, err := client.Send(context.Background(), token, "Olá", newTestPayload())

	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
	var statusErr *GatewayStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *GatewayStatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", statusErr.StatusCode)
	}
	if err.Error() != gw.body {
		t.Errorf("error message = %q, want raw body %q", err.Error(), gw.body)
	}
}

func TestExpoPushClient_Send_InvalidJSON(t *testing.T) {
	gw := &fakeGateway{status: http.StatusOK, body: "<html>maintenance</html>"}
	server := httptest.NewServer(gw)
	defer server.Close()

	client := NewExpoPushClient(server.URL, 0)
	token, _ := model.ParseDeviceToken("ExponentPushToken[abc]")

	_, err := client.Send(context.Background(), token, "Olá", newTestPayload())
	if err == nil {
		t.Fatal("expected error for non-JSON gateway response")
	}
	var statusErr *GatewayStatusError
	if errors.As(err, &statusErr) {
		t.Error("non-JSON 200 must not be reported as a status error")
	}
}

func TestExpoPushClient_Send_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // nothing listens on url anymore

	client := NewExpoPushClient(url, time.Second)
	token, _ := model.ParseDeviceToken("ExponentPushToken[abc]")

	if _, err := client.Send(context.Background(), token, "Olá", newTestPayload()); err == nil {
		t.Fatal("expected network error")
	}
}
