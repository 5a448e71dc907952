package tracing

import (
	"fmt"
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/logger"
)

type config interface {
	Enabled() bool
	ServiceName() string
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

// Init installs a jaeger tracer as the global one. Agent location and
// sampler can be overridden with the standard JAEGER_* variables. When
// tracing is disabled the noop tracer stays in place.
func Init(config config) (io.Closer, error) {
	if !config.Enabled() {
		return closerFunc(func() error { return nil }), nil
	}

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, errors.Wrap(err, "read jaeger env")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = config.ServiceName()
	}
	if cfg.Sampler.Type == "" {
		cfg.Sampler.Type = jaeger.SamplerTypeConst
		cfg.Sampler.Param = 1
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(zapAdapter{}))
	if err != nil {
		return nil, errors.Wrap(err, "create jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)

	logger.Info("tracing enabled", zap.String("service", cfg.ServiceName))
	return closer, nil
}

type zapAdapter struct{}

func (zapAdapter) Error(msg string) {
	logger.Error(msg)
}

func (zapAdapter) Infof(msg string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(msg, args...))
}
