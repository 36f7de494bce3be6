// Package telemetry forwards enhanced errors to Sentry when enabled.
// Telemetry is opt-in and a no-op otherwise.
package telemetry

import (
	"time"

	sentry "github.com/getsentry/sentry-go"

	"lfpsync/internal/conf"
	"lfpsync/internal/errors"
	"lfpsync/internal/logging"
)

type sentryReporter struct{}

// ReportError implements errors.Reporter.
func (sentryReporter) ReportError(ee *errors.EnhancedError) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", ee.Component)
		scope.SetTag("category", string(ee.Category))
		if ctx := ee.GetContext(); ctx != nil {
			scope.SetContext("error_context", ctx)
		}
		sentry.CaptureException(ee.Err)
	})
}

// Init configures Sentry reporting and registers it with the errors
// package. Does nothing when telemetry is disabled.
func Init(settings *conf.SentrySettings) error {
	if settings == nil || !settings.Enabled {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              settings.DSN,
		AttachStacktrace: true,
	})
	if err != nil {
		return errors.New(err).
			Component("telemetry").
			Category(errors.CategoryConfiguration).
			Build()
	}

	errors.SetReporter(sentryReporter{})
	logging.ForService("telemetry").Info("error telemetry enabled")
	return nil
}

// Flush drains pending events before process exit.
func Flush() {
	sentry.Flush(2 * time.Second)
}
