package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/tracker"
)

const shutdownTimeout = 5 * time.Second

type config interface {
	Addr() string
	Origins() []string
}

type store interface {
	Snapshot() tracker.State
	AddExpense(ctx context.Context, description, amount, category string) (expense.Record, bool, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
	SetBudget(ctx context.Context, text string) error
	SetIncome(ctx context.Context, text string) error
	SetCurrency(ctx context.Context, code string)
	ToggleDarkMode(ctx context.Context) (bool, error)
	ClearAll(ctx context.Context) error
}

type ratesSource interface {
	Current() currency.Table
}

type Server struct {
	addr    string
	handler *Handler
	router  chi.Router
}

func New(config config, store store, rates ratesSource) *Server {
	h := NewHandler(store, rates)
	return &Server{
		addr:    config.Addr(),
		handler: h,
		router:  NewRouter(h, config.Origins()),
	}
}

func NewRouter(h *Handler, origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/state", h.GetState)
		api.Post("/expenses", h.AddExpense)
		api.Delete("/expenses/{id}", h.DeleteExpense)
		api.Put("/budget", h.SetBudget)
		api.Put("/income", h.SetIncome)
		api.Put("/currency", h.SetCurrency)
		api.Post("/dark-mode/toggle", h.ToggleDarkMode)
		api.Post("/clear", h.Clear)
		api.Get("/rates", h.GetRates)
		api.Get("/export", h.Export)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// ListenAndServe blocks until ctx is done, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http api listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown")
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		observeRequest(r.Method, route, ww.Status(), elapsed)
		logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", elapsed),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
