package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/tracker"
)

type sink interface {
	Publish(ctx context.Context, key string, body []byte) error
}

// Publisher forwards tracker events to a broker. Delivery is best effort.
type Publisher struct {
	sink sink
}

func NewPublisher(sink sink) *Publisher {
	return &Publisher{sink: sink}
}

// Listen matches tracker.Listener.
func (p *Publisher) Listen(ctx context.Context, ev tracker.Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		logger.Error("cannot marshal event", zap.Error(err))
		return
	}
	if err = p.sink.Publish(ctx, string(ev.Kind), body); err != nil {
		logger.Error("failed to publish event", zap.Error(err), zap.String("kind", string(ev.Kind)))
	}
}
