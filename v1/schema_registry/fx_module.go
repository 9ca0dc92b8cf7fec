package schema_registry

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/srclient/v1/logger"
	"github.com/Aleph-Alpha/srclient/v1/observability"
	"github.com/Aleph-Alpha/srclient/v1/tracer"
)

// FXModule is an fx.Module that provides and configures the schema registry
// client. It provides *HTTPClient, *Client and Registry, and picks up an
// optional *logger.Logger, observability.Observer, *tracer.Tracer, HTTPDoer
// and Classifier when the application provides them.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    schema_registry.FXModule,
//	    fx.Provide(schema_registry.NewConfigFromEnv),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewHTTPClientWithDI,
		NewClientWithDI,
		func(c *Client) Registry { return c },
	),
	fx.Invoke(RegisterSchemaRegistryLifecycle),
)

// SchemaRegistryParams groups the dependencies needed to create the transport
// adapter.
type SchemaRegistryParams struct {
	fx.In

	Config     Config
	Doer       HTTPDoer               `optional:"true"`
	Classifier Classifier             `optional:"true"`
	Logger     *logger.Logger         `optional:"true"`
	Observer   observability.Observer `optional:"true"`
	Tracer     *tracer.Tracer         `optional:"true"`
}

// NewHTTPClientWithDI creates the transport adapter from fx-provided
// dependencies. Without an injected HTTPDoer an *http.Client with
// Config.Timeout is used.
func NewHTTPClientWithDI(params SchemaRegistryParams) (*HTTPClient, error) {
	cfg := params.Config
	if params.Logger != nil {
		cfg.Logger = params.Logger
	}

	doer := params.Doer
	if doer == nil {
		if cfg.Timeout == 0 {
			cfg.Timeout = DefaultTimeout
		}
		doer = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := NewHTTPClient(cfg, doer, params.Classifier)
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	if params.Tracer != nil {
		client.WithTracer(params.Tracer)
	}
	return client, nil
}

// NewClientWithDI creates the domain client on top of the provided transport.
func NewClientWithDI(transport *HTTPClient) *Client {
	return NewAPIClient(transport).WithLogger(transport.logger)
}

// SchemaRegistryLifecycleParams groups the dependencies needed for lifecycle
// management.
type SchemaRegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *HTTPClient
}

// RegisterSchemaRegistryLifecycle logs when the client becomes available and
// releases idle transport connections on shutdown.
func RegisterSchemaRegistryLifecycle(params SchemaRegistryLifecycleParams) {
	client := params.Client

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if client.logger != nil {
				client.logger.InfoWithContext(ctx, "schema registry client initialized", nil, map[string]interface{}{
					"url": client.cfg.URL,
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.CloseIdleConnections()
			if client.logger != nil {
				client.logger.InfoWithContext(ctx, "schema registry client shut down", nil, nil)
			}
			return nil
		},
	})
}
