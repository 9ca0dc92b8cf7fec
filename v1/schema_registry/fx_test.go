package schema_registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/srclient/v1/logger"
	"github.com/Aleph-Alpha/srclient/v1/observability"
)

func TestFXModuleProvidesRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/subjects/test/versions" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error_code":404,"message":"HTTP 404 Not Found"}`))
			return
		}
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	obs := &TestObserver{}

	var registry Registry
	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config { return Config{URL: server.URL} },
			func() *logger.Logger { return logger.NewFromZap(zap.New(core), false) },
			func() observability.Observer { return obs },
		),
		fx.Populate(&registry),
		fx.NopLogger,
	)
	require.NoError(t, app.Err())
	require.NoError(t, app.Start(context.Background()))

	latest, found, err := registry.GetLatestVersion(context.Background(), "test")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, latest)

	_, err = registry.ListSubjects(context.Background(), "")
	assert.ErrorIs(t, err, ErrPathNotFound)

	require.NoError(t, app.Stop(context.Background()))

	assert.Len(t, obs.GetOperations(), 2)
	assert.Equal(t, 1, logs.FilterMessage("schema registry client initialized").Len())
	assert.Equal(t, 1, logs.FilterMessage("schema registry client shut down").Len())
}

func TestFXModuleUsesInjectedDoer(t *testing.T) {
	doer := &capturingDoer{body: `{"mode":"READONLY"}`}

	var registry Registry
	app := fx.New(
		FXModule,
		fx.Provide(
			func() Config { return Config{URL: "http://registry:8081", Username: "u", Password: "p"} },
			func() HTTPDoer { return doer },
		),
		fx.Populate(&registry),
		fx.NopLogger,
	)
	require.NoError(t, app.Err())

	mode, err := registry.GetMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeReadOnly, mode)
	assert.Equal(t, "http://registry:8081/mode", doer.req.URL.String())
}

func TestFXModuleFailsWithoutURL(t *testing.T) {
	app := fx.New(
		FXModule,
		fx.Provide(func() Config { return Config{} }),
		fx.Invoke(func(Registry) {}),
		fx.NopLogger,
	)
	assert.ErrorContains(t, app.Err(), "schema registry URL is required")
}
