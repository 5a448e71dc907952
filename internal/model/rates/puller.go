package rates

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/currency"
	"max.ks1230/expense-tracker/internal/logger"
)

type ratesProvider interface {
	GetRates(ctx context.Context) (map[string]float64, error)
}

type config interface {
	PullingDelayMinutes() int64
}

// Table holds the latest exchange rates. It is empty until the first
// successful pull and is only ever replaced as a whole.
type Table struct {
	mu    sync.RWMutex
	rates currency.Table
}

func NewTable() *Table {
	return &Table{rates: currency.Table{}}
}

// Current returns the table in effect. Callers must not modify it.
func (t *Table) Current() currency.Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rates
}

func (t *Table) replace(rates map[string]float64) {
	next := make(currency.Table, len(rates))
	for code, rate := range rates {
		next[code] = rate
	}

	t.mu.Lock()
	t.rates = next
	t.mu.Unlock()
	tableSize.Set(float64(len(next)))
}

type Puller struct {
	table        *Table
	provider     ratesProvider
	pullingDelay int64
}

func NewPuller(table *Table, provider ratesProvider, config config) *Puller {
	return &Puller{
		table:        table,
		provider:     provider,
		pullingDelay: config.PullingDelayMinutes(),
	}
}

// Pull fetches the rates once and, when a pulling delay is configured, keeps
// refreshing them until ctx is done. Failures are logged and leave the table
// as it was.
func (p *Puller) Pull(ctx context.Context) {
	p.pullOnce(ctx)
	if p.pullingDelay <= 0 {
		return
	}

	ticker := time.NewTicker(time.Duration(p.pullingDelay) * time.Minute)
	defer ticker.Stop()

	logger.Info("Start pulling rates", zap.Int64("delayMinutes", p.pullingDelay))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop pulling rates")
			return
		case <-ticker.C:
			p.pullOnce(ctx)
		}
	}
}

func (p *Puller) pullOnce(ctx context.Context) {
	logger.Info("Pulling current rates...")

	span, ctx := opentracing.StartSpanFromContext(ctx, "pullRates")
	defer span.Finish()

	pulled, err := p.provider.GetRates(ctx)
	if err != nil {
		ext.Error.Set(span, true)
		pullsTotal.WithLabelValues("error").Inc()
		logger.Error("cannot get rates", zap.Error(err))
		return
	}

	p.table.replace(pulled)
	pullsTotal.WithLabelValues("ok").Inc()
	logger.Info("Successfully pulled current rates", zap.Int("count", len(pulled)))
}
