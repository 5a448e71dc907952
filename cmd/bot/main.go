package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"max.ks1230/expense-tracker/internal/app"
	"max.ks1230/expense-tracker/internal/clients/tg"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/messages"
)

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		logger.Fatal("failed to init app", zap.Error(err))
	}
	defer a.Close()

	client, err := tg.New(a.Config.Telegram())
	if err != nil {
		logger.Fatal("failed to init client", zap.Error(err))
	}

	msgService := messages.NewService(client, a.Store, a.Rates, nil)

	logger.Info("Bot init - end")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Puller.Pull(gctx)
		return nil
	})
	g.Go(func() error {
		client.ListenUpdates(gctx, msgService)
		return nil
	})

	if err = g.Wait(); err != nil {
		logger.Error("bot stopped", zap.Error(err))
	}
}
