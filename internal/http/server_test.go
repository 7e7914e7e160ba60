package http

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/services"
	"fintrack/internal/storage/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	importSvc := services.NewImportService(store, nil, nil)
	analyticsSvc := services.NewAnalyticsService(store, nil)
	srv := NewServer(":0", store, importSvc, analyticsSvc, nil)
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv, store
}

func doRequest(t *testing.T, srv *Server, method, path, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(t, srv, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestMissingUserHeader(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/transactions", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUploadCSVRawBody(t *testing.T) {
	srv, store := newTestServer(t)

	csv := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-15,Starbucks Coffee,-4.85",
		"2024-01-16,ACME Corp Salary,3200.00",
		"2024-13-40,Broken Row,-1.00",
	}, "\n")

	rec := doRequest(t, srv, http.MethodPost, "/api/transactions/upload-csv", "user-1", csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res importResultJSON
	decodeBody(t, rec, &res)
	if res.TotalRows != 3 || res.ValidRows != 2 {
		t.Errorf("TotalRows=%d ValidRows=%d, want 3/2", res.TotalRows, res.ValidRows)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Row 4:") {
		t.Errorf("Errors = %v, want one entry for row 4", res.Errors)
	}

	stored, err := store.Transactions().ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("persisted %d transactions, want 2", len(stored))
	}
}

func TestTransactionCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"description":"Coffee","amount":4.85,"date":"2024-01-15","type":"expense"}`
	rec := doRequest(t, srv, http.MethodPost, "/api/transactions", "user-1", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created transactionJSON
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Amount != 4.85 || created.Type != "expense" {
		t.Fatalf("created = %+v", created)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/transactions/"+created.ID, "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPut, "/api/transactions/"+created.ID, "user-1", `{"description":"Espresso"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated transactionJSON
	decodeBody(t, rec, &updated)
	if updated.Description != "Espresso" || updated.Amount != 4.85 {
		t.Errorf("updated = %+v", updated)
	}

	// A different user cannot see or delete it.
	rec = doRequest(t, srv, http.MethodGet, "/api/transactions/"+created.ID, "user-2", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/transactions/"+created.ID, "user-1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/transactions/"+created.ID, "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"bad date", `{"description":"x","amount":1,"date":"15/01/2024","type":"expense"}`, http.StatusUnprocessableEntity},
		{"bad type", `{"description":"x","amount":1,"date":"2024-01-15","type":"transfer"}`, http.StatusUnprocessableEntity},
		{"negative amount", `{"description":"x","amount":-1,"date":"2024-01-15","type":"expense"}`, http.StatusUnprocessableEntity},
		{"empty description", `{"description":" ","amount":1,"date":"2024-01-15","type":"expense"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/transactions", "user-1", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestListCategoriesSeedsDefaults(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/categories", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cats []categoryJSON
	decodeBody(t, rec, &cats)
	if len(cats) != 5 {
		t.Errorf("got %d categories, want 5 seeds", len(cats))
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	csv := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-15,Starbucks Coffee,-4.85",
		"2024-01-16,ACME Corp Salary,3200.00",
		"2024-01-17,Amazon Purchase,-47.99",
	}, "\n")
	rec := doRequest(t, srv, http.MethodPost, "/api/transactions/upload-csv", "user-1", csv)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/analytics/summary", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rec.Code)
	}
	var summary summaryJSON
	decodeBody(t, rec, &summary)
	if summary.TotalIncome != 3200.00 {
		t.Errorf("TotalIncome = %v, want 3200.00", summary.TotalIncome)
	}
	if summary.TotalExpenses != 52.84 {
		t.Errorf("TotalExpenses = %v, want 52.84", summary.TotalExpenses)
	}
	if summary.TotalBalance != 3147.16 {
		t.Errorf("TotalBalance = %v, want 3147.16", summary.TotalBalance)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/analytics/spending-by-category", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("spending status = %d", rec.Code)
	}
	var spending []categorySpendingJSON
	decodeBody(t, rec, &spending)
	var total float64
	for _, c := range spending {
		total += c.Amount
	}
	if math.Abs(total-52.84) > 0.001 {
		t.Errorf("categorized spending total = %v, want 52.84", total)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/analytics/monthly-trend", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("trend status = %d", rec.Code)
	}
	var trend []monthlyPointJSON
	decodeBody(t, rec, &trend)
	if len(trend) != 1 || trend[0].Month != "2024-01" {
		t.Errorf("trend = %+v, want a single 2024-01 bucket", trend)
	}
}

func TestBreakdownMonthsValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, q := range []string{"months=0", "months=25", "months=abc"} {
		rec := doRequest(t, srv, http.MethodGet, "/api/analytics/breakdown?"+q, "user-1", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET ?%s status = %d, want 400", q, rec.Code)
		}
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/analytics/breakdown?months=6", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Errorf("months=6 status = %d, want 200", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/analytics/breakdown", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Errorf("default months status = %d, want 200", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/transactions", "user-1", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("203.0.113.9") {
			t.Fatalf("request %d unexpectedly blocked", i+1)
		}
	}
	if rl.allow("203.0.113.9") {
		t.Error("request 61 should be blocked")
	}
	if !rl.allow("203.0.113.10") {
		t.Error("other clients must not be affected")
	}
}
