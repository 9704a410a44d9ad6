package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/salespilot/backoffice/internal/http"
	handler "github.com/salespilot/backoffice/internal/http/handlers"
	"github.com/salespilot/backoffice/internal/models"
)

func TestSavePersonHandler_CreatesCustomer(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/customers", handler.PersonRequest{
		Name:     "Acme Corp",
		Email:    "orders@acme.test",
		Phone:    "555-0100",
		Location: "Springfield",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var p models.Person
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("error decoding person: %v", err)
	}
	if p.ID == 0 || p.Kind != models.PersonKindCustomer {
		t.Errorf("unexpected person: %+v", p)
	}
}

func TestSavePersonHandler_UpdatesExistingName(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/suppliers", handler.PersonRequest{
		Name: "Globex", Email: "old@globex.test", Phone: "555-0200", Location: "Shelbyville",
	})
	var first models.Person
	if err := json.NewDecoder(w.Body).Decode(&first); err != nil {
		t.Fatalf("error decoding supplier: %v", err)
	}

	// Posting the same name again updates the contact details in place.
	w = doJSON(r, http.MethodPost, "/suppliers", handler.PersonRequest{
		Name: "Globex", Email: "new@globex.test", Phone: "555-0201", Location: "Shelbyville",
	})
	var second models.Person
	if err := json.NewDecoder(w.Body).Decode(&second); err != nil {
		t.Fatalf("error decoding supplier: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected update in place, got new ID %d (was %d)", second.ID, first.ID)
	}
	if second.Email != "new@globex.test" {
		t.Errorf("expected updated email, got %q", second.Email)
	}

	w = doJSON(r, http.MethodGet, "/suppliers", nil)
	var listing []models.Person
	if err := json.NewDecoder(w.Body).Decode(&listing); err != nil {
		t.Fatalf("error decoding listing: %v", err)
	}
	if len(listing) != 1 {
		t.Errorf("expected one supplier, got %d", len(listing))
	}
}

func TestSavePersonHandler_Validation(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	// Customers require a location, staff do not.
	w := doJSON(r, http.MethodPost, "/customers", handler.PersonRequest{
		Name: "No Location", Email: "x@test", Phone: "555-0300",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for customer without location, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/staffs", handler.PersonRequest{
		Name: "Lenny", Email: "lenny@test", Phone: "555-0301",
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for staff without location, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/staffs", handler.PersonRequest{Name: "", Email: "", Phone: ""})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty contact, got %d", w.Code)
	}
}

func TestPeopleKindsAreSeparate(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/customers", handler.PersonRequest{
		Name: "Shared Name", Email: "c@test", Phone: "555-0400", Location: "Springfield",
	})
	var customer models.Person
	if err := json.NewDecoder(w.Body).Decode(&customer); err != nil {
		t.Fatalf("error decoding customer: %v", err)
	}

	// The same name may exist under another kind without colliding.
	w = doJSON(r, http.MethodPost, "/suppliers", handler.PersonRequest{
		Name: "Shared Name", Email: "s@test", Phone: "555-0401", Location: "Shelbyville",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A customer ID is not reachable through the supplier routes.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/suppliers/%d", customer.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 fetching customer via supplier route, got %d", w.Code)
	}
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/suppliers/%d", customer.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting customer via supplier route, got %d", w.Code)
	}
}

func TestDeletePersonHandler(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/staffs", handler.PersonRequest{
		Name: "Carl", Email: "carl@test", Phone: "555-0500",
	})
	var staff models.Person
	if err := json.NewDecoder(w.Body).Decode(&staff); err != nil {
		t.Fatalf("error decoding staff: %v", err)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/staffs/%d", staff.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/staffs/%d", staff.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/staffs/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown ID, got %d", w.Code)
	}
}

func TestSavePersonHandler_RequiresAuth(t *testing.T) {
	t.Cleanup(clearAllData)
	r := api.NewRouter()

	body, _ := json.Marshal(handler.PersonRequest{
		Name: "Anon", Email: "anon@test", Phone: "555-0600", Location: "Nowhere",
	})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
}
