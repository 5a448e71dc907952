package app

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/clients/amqp"
	"max.ks1230/expense-tracker/internal/clients/exchangerate"
	"max.ks1230/expense-tracker/internal/clients/kafka"
	"max.ks1230/expense-tracker/internal/config"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/events"
	"max.ks1230/expense-tracker/internal/model/rates"
	"max.ks1230/expense-tracker/internal/model/storage"
	"max.ks1230/expense-tracker/internal/model/tracker"
	"max.ks1230/expense-tracker/internal/tracing"
)

// App is the part shared by every front-end: config, the persisted store
// and the exchange rates.
type App struct {
	Config *config.Service
	Store  *tracker.Store
	Rates  *rates.Table
	Puller *rates.Puller

	closers []func()
}

func New(ctx context.Context) (*App, error) {
	conf, err := config.New()
	if err != nil {
		return nil, errors.Wrap(err, "init config")
	}
	return FromConfig(ctx, conf)
}

func FromConfig(ctx context.Context, conf *config.Service) (*App, error) {
	a := &App{Config: conf}

	tracer, err := tracing.Init(conf.Tracing())
	if err != nil {
		return nil, errors.Wrap(err, "init tracing")
	}
	a.addCloser("tracer", tracer)

	kv, closeStorage, err := storage.New(conf)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "init storage")
	}
	a.closers = append(a.closers, func() {
		if err := closeStorage(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	})

	a.Store, err = tracker.New(ctx, kv, conf.App())
	if err != nil {
		a.Close()
		return nil, err
	}

	if err = a.initEvents(); err != nil {
		a.Close()
		return nil, errors.Wrap(err, "init events")
	}

	a.Rates = rates.NewTable()
	a.Puller = rates.NewPuller(a.Rates, exchangerate.New(conf.App()), conf.App())

	return a, nil
}

func (a *App) initEvents() error {
	switch a.Config.Events().Backend() {
	case config.EventsKafka:
		producer, err := kafka.NewProducer(a.Config.Kafka())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, producer.Close)
		a.Store.Subscribe(events.NewPublisher(producer).Listen)
	case config.EventsAMQP:
		client, err := amqp.NewClient(a.Config.AMQP())
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.Store.Subscribe(events.NewPublisher(client).Listen)
	}
	return nil
}

func (a *App) addCloser(name string, c io.Closer) {
	a.closers = append(a.closers, func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close "+name, zap.Error(err))
		}
	})
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
