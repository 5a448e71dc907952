package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"max.ks1230/expense-tracker/internal/app"
	"max.ks1230/expense-tracker/internal/httpapi"
	"max.ks1230/expense-tracker/internal/logger"
)

func main() {
	defer logger.Sync()
	logger.Info("API init - start")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer a.Close()

	server := httpapi.New(a.Config.HTTP(), a.Store, a.Rates)

	logger.Info("API init - end")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Puller.Pull(gctx)
		return nil
	})
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})

	if err = g.Wait(); err != nil {
		logger.Error("api stopped", zap.Error(err))
	}
}
