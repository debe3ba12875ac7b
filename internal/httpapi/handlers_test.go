package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ryusushi/pos/internal/domain"
	"ryusushi/pos/internal/service"
	"ryusushi/pos/internal/store/memory"
)

// newTestAPI builds a full API with an in-memory store, real AuthManager and
// real Service so handler tests exercise the complete request path.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	repo := memory.NewSeeded()
	svc := service.New(repo, nil, nil, "RYU SUSHI", "6181268154", time.Minute)
	auth := NewAuthManager("test-secret-key", time.Hour, repo)

	return New(svc, auth, "*")
}

func doJSON(t *testing.T, api *API, method, path, token, csrf string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
	}
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/healthz", "", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok:true, got %v", body["ok"])
	}
}

func TestHandleLoginSuccess(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var payload domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if payload.AccessToken == "" || payload.Role != "admin" {
		t.Fatalf("unexpected login response: %+v", payload)
	}
}

func TestHandleLoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "", "", map[string]string{
		"username": "admin",
		"password": "not-the-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOrderEndpointsRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/api/v1/order", "", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestOrderCheckoutTicketFlow(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsAdmin(t, api)
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/order/items", token, csrf, domain.OrderItemRequest{
		Type:   domain.TypeSushi,
		Name:   "Torrelo",
		Option: "Empanizado",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("append item expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/order", token, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("order state expected 200, got %d", rec.Code)
	}
	var state domain.OrderStateResponse
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Count != 1 || state.Total != 100 {
		t.Fatalf("unexpected order state: %+v", state)
	}

	rec = doJSON(t, api, http.MethodPost, "/api/v1/checkout", token, csrf, domain.CheckoutRequest{
		Mode: domain.CheckoutModeNew,
		Name: "Ana",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var checkout domain.CheckoutResponse
	if err := json.NewDecoder(rec.Body).Decode(&checkout); err != nil {
		t.Fatalf("decode checkout: %v", err)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/history", token, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/tickets/"+checkout.Client.ID, token, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ticket html expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("expected html content type, got %q", ct)
	}

	rec = doJSON(t, api, http.MethodPost, "/api/v1/tickets/"+checkout.Client.ID+"/escpos", token, csrf, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("escpos expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestCheckoutEmptyOrderConflicts(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsAdmin(t, api)
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/checkout", token, csrf, domain.CheckoutRequest{
		Mode: domain.CheckoutModeNew,
		Name: "Ana",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty order, got %d", rec.Code)
	}
}

func TestCloseDayForbiddenForCashier(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsCashier(t, api)
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/history/close-day", token, csrf, domain.ConfirmRequest{Confirm: true})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cashier close, got %d", rec.Code)
	}
}

func TestDessertCreateForbiddenForCashier(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsCashier(t, api)
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/desserts", token, csrf, domain.DessertCreateRequest{
		Name:  "Flan",
		Price: 35,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUnknownCatalogCategoryReturns404(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsAdmin(t, api)

	rec := doJSON(t, api, http.MethodGet, "/api/v1/catalog/items?category=Tacos", token, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", rec.Code)
	}
}

func TestExpenseAndRegisterEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsAdmin(t, api)
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/expenses", token, csrf, domain.ExpenseCreateRequest{
		Description: "Gas",
		Amount:      120,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add expense expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, api, http.MethodPut, "/api/v1/register", token, csrf, domain.RegisterSaveRequest{
		CashInBox:  500,
		Date:       "07/03/2025",
		WorkerName: "Luz",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save register expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/expenses", token, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list expenses expected 200, got %d", rec.Code)
	}
	var view struct {
		Total float64 `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode expenses: %v", err)
	}
	if view.Total != 120 {
		t.Fatalf("expected expense total 120, got %v", view.Total)
	}
}

func TestCalculatorEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsAdmin(t, api)
	csrf := fetchCSRFToken(t, api)

	for _, key := range []string{"1", "2", "+", "8", "="} {
		rec := doJSON(t, api, http.MethodPost, "/api/v1/calculator/press", token, csrf, domain.CalculatorPressRequest{Key: key})
		if rec.Code != http.StatusOK {
			t.Fatalf("press %q expected 200, got %d", key, rec.Code)
		}
	}

	rec := doJSON(t, api, http.MethodGet, "/api/v1/calculator", token, "", nil)
	var state domain.CalculatorState
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("decode calculator state: %v", err)
	}
	if state.Buffer != "20" {
		t.Fatalf("expected buffer 20, got %q", state.Buffer)
	}
}

func TestInventoryPatchDerivesStatus(t *testing.T) {
	api := newTestAPI(t)
	token := loginAsAdmin(t, api)
	csrf := fetchCSRFToken(t, api)

	rec := doJSON(t, api, http.MethodGet, "/api/v1/inventory", token, "", nil)
	var payload struct {
		Items []domain.InventoryItem `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode inventory: %v", err)
	}
	if len(payload.Items) == 0 {
		t.Fatalf("expected seeded inventory")
	}

	zero := 0
	rec = doJSON(t, api, http.MethodPatch, fmt.Sprintf("/api/v1/inventory/%s", payload.Items[0].ID), token, csrf, domain.InventoryUpdateRequest{
		ExactQuantity: &zero,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var updated struct {
		Item domain.InventoryItem `json:"item"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if updated.Item.Status != domain.InventoryStatusAgotado {
		t.Fatalf("expected agotado at zero, got %s", updated.Item.Status)
	}
}

func loginAsCashier(t *testing.T, api *API) string {
	t.Helper()

	rec := doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "", "", map[string]string{
		"username": "cashier",
		"password": "cashier123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("cashier login failed, status %d", rec.Code)
	}
	var payload domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return payload.AccessToken
}
