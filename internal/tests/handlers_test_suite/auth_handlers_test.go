package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
	rl "github.com/salespilot/backoffice/internal/http/rate_limiter"
)

func TestRegisterHandler(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	r := api.NewRouter()

	payload, _ := json.Marshal(handler.CredentialsRequest{Username: "alice", Password: "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Errorf("expected a token for the new user")
	}

	// Re-registering the same username conflicts.
	req = httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", w.Code)
	}
}

func TestRegisterHandler_ShortCredentials(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	r := api.NewRouter()

	payload, _ := json.Marshal(handler.CredentialsRequest{Username: "al", Password: "x"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	r := api.NewRouter()

	payload, _ := json.Marshal(handler.CredentialsRequest{Username: "admin", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginHandler_RateLimited(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	r := api.NewRouter()

	payload, _ := json.Marshal(handler.CredentialsRequest{Username: "admin", Password: "wrong"})
	limited := false
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Errorf("expected the limiter to reject a burst of 30 login attempts")
	}
}

func TestRegisterAsAdminHandler_RequiresAdminRole(t *testing.T) {
	t.Cleanup(rl.CleanupAllVisitors)
	r := api.NewRouter()

	// A plain user token must be rejected.
	payload, _ := json.Marshal(handler.CredentialsRequest{Username: "bob", Password: "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var reg handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&reg); err != nil {
		t.Fatalf("error decoding register response: %v", err)
	}

	body, _ := json.Marshal(handler.RegisterAsAdminRequest{Username: "carol", Password: "hunter22", Role: "staff"})
	req = httptest.NewRequest(http.MethodPost, "/admin/users", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	// The admin token from the suite setup succeeds.
	req = httptest.NewRequest(http.MethodPost, "/admin/users", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}
