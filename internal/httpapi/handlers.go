package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/export"
	"max.ks1230/expense-tracker/internal/model/messages"
	"max.ks1230/expense-tracker/internal/model/reports"
)

// Handler serves the tracker over JSON. Every intent answers with the full
// state, rejected input leaves it unchanged.
type Handler struct {
	store store
	rates ratesSource
	clock func() time.Time
}

func NewHandler(store store, rates ratesSource) *Handler {
	return &Handler{
		store: store,
		rates: rates,
		clock: time.Now,
	}
}

func (h *Handler) GetState(w http.ResponseWriter, _ *http.Request) {
	h.writeState(w, http.StatusOK)
}

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if !decode(w, r, &req) {
		return
	}

	_, ok, err := h.store.AddExpense(r.Context(), string(req.Description), string(req.Amount), string(req.Category))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	status := http.StatusOK
	if ok {
		status = http.StatusCreated
	}
	h.writeState(w, status)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeInternalError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.SetBudget(r.Context(), string(req.Value)); err != nil {
		writeInternalError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

func (h *Handler) SetIncome(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.store.SetIncome(r.Context(), string(req.Value)); err != nil {
		writeInternalError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

func (h *Handler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencyRequest
	if !decode(w, r, &req) {
		return
	}
	if code := currency.Normalize(req.Code); code != "" {
		h.store.SetCurrency(r.Context(), code)
	}
	h.writeState(w, http.StatusOK)
}

func (h *Handler) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.ToggleDarkMode(r.Context()); err != nil {
		writeInternalError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		writeInternalError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

func (h *Handler) GetRates(w http.ResponseWriter, _ *http.Request) {
	table := h.rates.Current()
	writeJSON(w, http.StatusOK, ratesResponse{
		Codes: table.Codes(),
		Rates: table,
	})
}

func (h *Handler) Export(w http.ResponseWriter, _ *http.Request) {
	f := export.CSV(h.store.Snapshot().Expenses)

	w.Header().Set("Content-Type", f.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(f.Data); err != nil {
		logger.Error("failed to write export", zap.Error(err))
	}
}

func (h *Handler) writeState(w http.ResponseWriter, status int) {
	state := h.store.Snapshot()
	report := reports.Generate(state.Expenses, state.Settings, h.rates.Current())
	writeJSON(w, status, newStateResponse(messages.Title(h.clock()), state, report))
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request payload"})
		return false
	}
	return true
}

func writeInternalError(w http.ResponseWriter, err error) {
	logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "cannot save changes"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
