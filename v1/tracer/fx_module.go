package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/srclient/v1/logger"
)

// FXModule provides *Tracer and flushes it on shutdown.
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return tracer.Config{ServiceName: "schema-sync"} }),
//	)
//
// *Tracer satisfies schema_registry.Tracer, so the schema registry module picks
// it up when both modules are installed.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies needed to create a Tracer.
type TracerParams struct {
	fx.In

	Config Config
	Logger *logger.Logger `optional:"true"`
}

// NewClientWithDI creates a Tracer from fx-provided dependencies. Without an
// injected logger a default info-level logger is used.
func NewClientWithDI(params TracerParams) *Tracer {
	var log Logger = params.Logger
	if params.Logger == nil {
		log = logger.NewLoggerClient(logger.Config{ServiceName: params.Config.ServiceName})
	}
	return NewClient(params.Config, log)
}

// RegisterTracerLifecycle shuts the tracer provider down on stop, flushing
// pending spans to the exporter.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer == nil || tracer.tracer == nil {
				return nil
			}
			tracer.logger.Info("shutting down tracer", nil, nil)
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
