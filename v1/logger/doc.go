// Package logger provides structured logging on top of Uber's Zap.
//
// Every srclient component accepts a narrow logging interface; *Logger satisfies
// all of them, so one instance can be shared across the application.
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/srclient/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//		ServiceName:   "schema-sync",
//	})
//
//	log.Info("Subject registered", nil, map[string]interface{}{
//		"subject": "orders-value",
//	})
//
//	// trace_id and span_id are added when ctx carries an active span
//	log.InfoWithContext(ctx, "Compatibility checked", nil, nil)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Debug, ServiceName: "schema-sync"}
//		}),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # attach trace_id/span_id in *WithContext methods
//	LOGGER_SERVICE_NAME=schema-sync # value of the "service" field
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
