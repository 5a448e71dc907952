package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"max.ks1230/expense-tracker/internal/app"
	"max.ks1230/expense-tracker/internal/clients/console"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/export"
	"max.ks1230/expense-tracker/internal/model/messages"
)

func main() {
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer a.Close()

	client := console.New(os.Stdin, os.Stdout, export.NewDirDeliverer(a.Config.App().ExportDir()))
	msgService := messages.NewService(client, a.Store, a.Rates, console.Renderer{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Puller.Pull(gctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return client.ListenUpdates(gctx, msgService)
	})

	if err = g.Wait(); err != nil {
		logger.Error("tracker stopped", zap.Error(err))
	}
}
