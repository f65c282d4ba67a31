package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/dalemusser/ripple/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithUser adds an identity to the request context for testing
// authenticated handlers. This bypasses the token middleware and
// injects the user directly.
func WithUser(r *http.Request, id primitive.ObjectID, username, role string) *http.Request {
	return auth.WithTestUser(r, &auth.Identity{
		ID:       id.Hex(),
		Username: username,
		Name:     "Test " + username,
		Role:     role,
	})
}

// WithAccount adds a fixture account's identity to the request context.
func WithAccount(r *http.Request, a models.Account) *http.Request {
	return WithUser(r, a.ID, a.Username, a.Role)
}

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeEnvelope unmarshals the standard response envelope from a
// recorder body into data (which may be nil) and returns success and
// message for assertions.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) (bool, string) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope: %v (body: %s)", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("failed to decode envelope data: %v", err)
		}
	}
	return env.Success, env.Message
}
