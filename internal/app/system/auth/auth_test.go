package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(testKey, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManager_EmptyKey(t *testing.T) {
	if _, err := NewManager("", time.Hour, zap.NewNop()); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := testManager(t)

	want := Identity{ID: "abc123", Username: "jdoe", Name: "Jane Doe", Role: "user"}
	token, err := m.Issue(want)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if *got != want {
		t.Errorf("identity: got %+v, want %+v", got, want)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m := testManager(t)
	if _, err := m.Verify("not-a-token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestVerify_RejectsWrongKey(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(strings.Repeat("x", 32), time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := other.Issue(Identity{ID: "abc123", Role: "user"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("expected token signed with another key to be rejected")
	}
}

func TestLoadUser_ValidToken(t *testing.T) {
	m := testManager(t)
	token, err := m.Issue(Identity{ID: "abc123", Username: "jdoe", Role: "user"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var got *Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	})

	req := httptest.NewRequest("GET", "/posts/feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	m.LoadUser(inner).ServeHTTP(rec, req)

	if got == nil {
		t.Fatal("expected identity in context")
	}
	if got.ID != "abc123" || got.Username != "jdoe" {
		t.Errorf("identity: got %+v", got)
	}
}

func TestLoadUser_NoToken_PassesThroughAnonymous(t *testing.T) {
	m := testManager(t)

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := CurrentUser(r); ok {
			t.Error("expected no identity in context")
		}
	})

	req := httptest.NewRequest("GET", "/posts/feed", nil)
	rec := httptest.NewRecorder()
	m.LoadUser(inner).ServeHTTP(rec, req)

	if !called {
		t.Error("expected inner handler to be called")
	}
}

func TestRequireSignedIn_Unauthenticated(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inner handler should not be called")
	})

	req := httptest.NewRequest("GET", "/posts/feed", nil)
	rec := httptest.NewRecorder()
	RequireSignedIn(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("expected failure envelope, got %q", rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mw := RequireRole("admin")(inner)

	// Wrong role → 403
	req := WithTestUser(httptest.NewRequest("GET", "/admin", nil), &Identity{ID: "u1", Role: "user"})
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Right role → passes
	req = WithTestUser(httptest.NewRequest("GET", "/admin", nil), &Identity{ID: "u2", Role: "admin"})
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("admin role: got %d, want %d", rec.Code, http.StatusNoContent)
	}

	// Not signed in → 401
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
