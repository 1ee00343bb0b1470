package errorreporting

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

// Options configures the Sentry client.
type Options struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
}

// Init initializes the global Sentry client. An empty DSN leaves reporting
// disabled and is not an error.
func Init(opts Options) error {
	if opts.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		SampleRate:       opts.SampleRate,
		AttachStacktrace: true,
		BeforeSend:       beforeSend,
	})
	if err != nil {
		return fmt.Errorf("initialize sentry: %w", err)
	}
	return nil
}

// Enabled reports whether a Sentry client is bound to the current hub.
func Enabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CapturePanic reports a recovered panic value with the request attached.
func CapturePanic(r *http.Request, recovered any) {
	if !Enabled() {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(r)
	hub.Scope().SetLevel(sentry.LevelFatal)
	hub.Scope().SetTag("method", r.Method)
	hub.Scope().SetTag("path", r.URL.Path)

	if err, ok := recovered.(error); ok {
		hub.CaptureException(err)
		return
	}
	hub.CaptureMessage(fmt.Sprint(recovered))
}

// Flush waits up to timeout for buffered events to be delivered.
func Flush(timeout time.Duration) bool {
	if !Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}

// beforeSend strips credentials from outgoing request data.
func beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request != nil {
		for _, h := range []string{"Authorization", "Cookie", "X-Api-Key"} {
			delete(event.Request.Headers, h)
		}
		event.Request.QueryString = ""
		event.Request.Cookies = ""
	}
	return event
}
