package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/model/storage"
	"max.ks1230/expense-tracker/internal/model/tracker"
)

type usd struct{}

func (usd) DefaultCurrency() string { return "USD" }

type staticRates currency.Table

func (r staticRates) Current() currency.Table { return currency.Table(r) }

type failingKV struct {
	*storage.InMemStorage
}

func (failingKV) Save(context.Context, string, string) error {
	return assert.AnError
}

type stateBody struct {
	Title    string `json:"title"`
	Currency string `json:"currency"`
	Budget   string `json:"budget"`
	DarkMode bool   `json:"darkMode"`
	Expenses []struct {
		ID          string      `json:"id"`
		Description string      `json:"description"`
		Amount      json.Number `json:"amount"`
		Category    string      `json:"category"`
	} `json:"expenses"`
	Summary struct {
		Total           json.Number `json:"total"`
		ConvertedTotal  json.Number `json:"convertedTotal"`
		BudgetRemaining json.Number `json:"budgetRemaining"`
		OverBudget      bool        `json:"overBudget"`
		Categories      []struct {
			Category string      `json:"category"`
			Amount   json.Number `json:"amount"`
		} `json:"categories"`
	} `json:"summary"`
}

func setup(t *testing.T) (http.Handler, *tracker.Store) {
	t.Helper()
	store, err := tracker.New(context.Background(), storage.NewInMemStorage(), usd{})
	require.NoError(t, err)

	h := NewHandler(store, staticRates{"USD": 1, "EUR": 0.5})
	h.clock = func() time.Time { return time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC) }
	return NewRouter(h, []string{"*"}), store
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateBody {
	t.Helper()
	var body stateBody
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&body))
	return body
}

func Test_OnGetState_ShouldRenderEmptyTracker(t *testing.T) {
	router, _ := setup(t)

	rec := do(t, router, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeState(t, rec)
	assert.Equal(t, "Expense Tracker for March 2026", body.Title)
	assert.Equal(t, "USD", body.Currency)
	assert.Empty(t, body.Expenses)
	assert.Equal(t, "0", body.Summary.Total.String())
}

func Test_OnAddExpense_ShouldPersistAndSummarize(t *testing.T) {
	router, store := setup(t)

	rec := do(t, router, http.MethodPost, "/api/expenses", `{"description":"Coffee","amount":"3.50","category":"food"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/expenses", `{"description":"Bus","amount":2,"category":"Transport"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeState(t, rec)
	require.Len(t, body.Expenses, 2)
	assert.Equal(t, "Food", body.Expenses[0].Category)
	assert.Equal(t, "3.5", body.Expenses[0].Amount.String())
	assert.Equal(t, "5.5", body.Summary.Total.String())
	require.Len(t, body.Summary.Categories, 5)
	assert.Equal(t, "Transport", body.Summary.Categories[1].Category)
	assert.Equal(t, "2", body.Summary.Categories[1].Amount.String())
	assert.Equal(t, "0", body.Summary.Categories[3].Amount.String())
	assert.Len(t, store.Snapshot().Expenses, 2)
}

func Test_OnInvalidExpense_ShouldLeaveStateUnchanged(t *testing.T) {
	router, store := setup(t)

	rec := do(t, router, http.MethodPost, "/api/expenses", `{"description":"","amount":"3","category":"Food"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/expenses", `{"description":"Tea","amount":"-1","category":"Food"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, store.Snapshot().Expenses)
}

func Test_OnMalformedBody_ShouldAnswerBadRequest(t *testing.T) {
	router, _ := setup(t)

	rec := do(t, router, http.MethodPut, "/api/budget", `{"value":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnDeleteExpense_ShouldRemoveIt(t *testing.T) {
	router, store := setup(t)
	rec, ok, err := store.AddExpense(context.Background(), "Movie", "12", "Entertainment")
	require.NoError(t, err)
	require.True(t, ok)

	resp := do(t, router, http.MethodDelete, "/api/expenses/"+rec.ID, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeState(t, resp).Expenses)
}

func Test_OnSettings_ShouldUpdateSummary(t *testing.T) {
	router, store := setup(t)
	_, _, err := store.AddExpense(context.Background(), "Rent", "80", "Bills")
	require.NoError(t, err)

	rec := do(t, router, http.MethodPut, "/api/budget", `{"value":"50"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeState(t, rec)
	assert.Equal(t, "50", body.Budget)
	assert.True(t, body.Summary.OverBudget)
	assert.Equal(t, "-30", body.Summary.BudgetRemaining.String())

	rec = do(t, router, http.MethodPut, "/api/currency", `{"code":"eur"}`)
	body = decodeState(t, rec)
	assert.Equal(t, "EUR", body.Currency)
	assert.Equal(t, "40", body.Summary.ConvertedTotal.String())

	rec = do(t, router, http.MethodPost, "/api/dark-mode/toggle", "")
	assert.True(t, decodeState(t, rec).DarkMode)

	rec = do(t, router, http.MethodPost, "/api/clear", "")
	body = decodeState(t, rec)
	assert.Empty(t, body.Expenses)
	assert.Equal(t, "", body.Budget)
	assert.True(t, body.DarkMode)
}

func Test_OnExport_ShouldAnswerCSVAttachment(t *testing.T) {
	router, store := setup(t)
	_, _, err := store.AddExpense(context.Background(), "Coffee", "3.50", "Food")
	require.NoError(t, err)

	rec := do(t, router, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenses.csv")
	assert.Equal(t, "Description,Amount,Category\nCoffee,3.5,Food", rec.Body.String())
}

func Test_OnGetRates_ShouldListCodes(t *testing.T) {
	router, _ := setup(t)

	rec := do(t, router, http.MethodGet, "/api/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ratesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"EUR", "USD"}, body.Codes)
	assert.Equal(t, 0.5, body.Rates["EUR"])
}

func Test_OnStorageFailure_ShouldAnswerInternalError(t *testing.T) {
	store, err := tracker.New(context.Background(), failingKV{storage.NewInMemStorage()}, usd{})
	require.NoError(t, err)
	router := NewRouter(NewHandler(store, staticRates{}), []string{"*"})

	rec := do(t, router, http.MethodPut, "/api/income", `{"value":"100"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func Test_OnMetrics_ShouldExposePrometheus(t *testing.T) {
	router, _ := setup(t)
	do(t, router, http.MethodGet, "/api/state", "")

	rec := do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "expense_tracker_http_request_duration_seconds")
}
