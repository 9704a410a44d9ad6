package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.Handler) (*PayPalClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewPayPalClient("client-id", "client-secret", "sandbox")
	client.baseURL = server.URL
	return client, server
}

func TestCreateOrder(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			t.Errorf("token request missing basic auth, got %q/%q", user, pass)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	})
	wantAmounts := []string{"49.90", "10.00"}
	orderCalls := 0
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("order request auth = %q, want Bearer tok-1", got)
		}
		var body struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode order body: %v", err)
		}
		if body.Intent != "CAPTURE" {
			t.Errorf("intent = %q, want CAPTURE", body.Intent)
		}
		if orderCalls < len(wantAmounts) {
			if v := body.PurchaseUnits[0].Amount.Value; v != wantAmounts[orderCalls] {
				t.Errorf("amount on call %d = %q, want %q", orderCalls+1, v, wantAmounts[orderCalls])
			}
		}
		orderCalls++
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Order{ID: "ORDER-1", Status: "CREATED"})
	})

	client, _ := newTestClient(t, mux)

	order, err := client.CreateOrder(context.Background(), decimal.RequireFromString("49.9"), "USD")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "ORDER-1" || order.Status != "CREATED" {
		t.Errorf("order = %+v", order)
	}

	// A second call must reuse the cached token.
	if _, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10"), "USD"); err != nil {
		t.Fatalf("second create order: %v", err)
	}
	if tokenCalls != 1 {
		t.Errorf("token endpoint called %d times, want 1", tokenCalls)
	}
}

func TestCaptureOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("capture method = %s, want POST", r.Method)
		}
		_ = json.NewEncoder(w).Encode(Order{ID: "ORDER-1", Status: "COMPLETED"})
	})

	client, _ := newTestClient(t, mux)

	order, err := client.CaptureOrder(context.Background(), "ORDER-1")
	if err != nil {
		t.Fatalf("capture order: %v", err)
	}
	if order.Status != "COMPLETED" {
		t.Errorf("status = %q, want COMPLETED", order.Status)
	}
}

func TestOrderRequestSurfacesAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	})

	client, _ := newTestClient(t, mux)

	if _, err := client.CreateOrder(context.Background(), decimal.RequireFromString("1"), "USD"); err == nil {
		t.Fatal("expected error from 422 response")
	}
}
