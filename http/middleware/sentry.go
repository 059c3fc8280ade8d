package middleware

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/waypoint"
)

// ReportPanic recovers panics raised by handlers,
// calling onPanic to respond to the client.
// If onPanic is nil, http.Error responds with http.StatusInternalServerError.
//
// Outside of Development and Testing, the panic is reported to Sentry first.
//
// http.ErrAbortHandler is not recovered.
func ReportPanic(env waypoint.Environment, onPanic func(http.ResponseWriter, *http.Request, error)) Adapter {
	if onPanic == nil {
		onPanic = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	var sh *sentryhttp.Handler
	if !env.IsDevelopment() && !env.IsTesting() {
		sh = sentryhttp.New(sentryhttp.Options{Repanic: true, WaitForDelivery: true})
	}

	return func(h http.Handler) http.Handler {
		if sh != nil {
			h = sh.Handle(h)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}

				onPanic(w, r, fmt.Errorf("recovered from panic: %w", err))
			}()

			h.ServeHTTP(w, r)
		})
	}
}
