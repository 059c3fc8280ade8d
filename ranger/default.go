package ranger

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/http/template"
	"github.com/xy-planning-network/waypoint/logger"
)

// defaultAppLogger constructs a [logger.Logger] configured for use in the application.
func defaultAppLogger(cfg Config) logger.Logger {
	slogger := newSlogger(waypoint.AppLogKind, cfg)
	var l logger.Logger = logger.New(slogger)
	l.Debug("setting up app logger", nil)
	if cfg.SentryDSN != "" {
		l = logger.NewSentryLogger(cfg.Env, l, cfg.SentryDSN)
		l.Debug("using SentryLogger for app logger", nil)
	}

	slog.SetDefault(slogger)

	return l
}

// defaultHTTPLogger constructs a [*log/slog.Logger] for use in HTTP request logging.
func defaultHTTPLogger(cfg Config) *slog.Logger {
	sl := newSlogger(waypoint.HTTPLogKind, cfg)
	sl.Debug("setting up HTTP request logger")

	return sl
}

// newSlogger toggles constructing the specific [*log/slog.Logger]
// from the given parameters.
func newSlogger(kind slog.Value, cfg Config) *slog.Logger {
	out := cfg.LogOutput
	if out == nil {
		out = io.Discard
	}

	lvl := new(slog.LevelVar)
	lvl.Set(cfg.level())

	useJSON := !cfg.Env.IsDevelopment() || cfg.LogJSON
	isHTTP := kind.String() == waypoint.HTTPLogKind.String()

	var handler slog.Handler
	switch {
	case useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}
		handler = slog.NewJSONHandler(out, opts)

	case !useJSON && !isHTTP:
		opts := &slog.HandlerOptions{
			AddSource:   true,
			Level:       lvl,
			ReplaceAttr: logger.TruncSourceAttr,
		}
		handler = slog.NewTextHandler(logger.NewColorWriter(out), opts)

	case isHTTP && useJSON:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		handler = slog.NewJSONHandler(out, opts)

	case isHTTP && !useJSON:
		opts := &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = logger.DeleteLevelAttr(groups, a)
				return logger.DeleteMessageAttr(groups, a)
			},
		}
		handler = slog.NewTextHandler(out, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		{Key: waypoint.LogKindKey, Value: kind},
	})

	return slog.New(handler)
}

// defaultParser constructs a *template.Parser to be used
// when responding to HTTP requests with [*resp.Responder.Html].
//
// Templates in files take precedence over the embedded defaults.
//
// defaultParser makes available these functions in an HTML template:
//
//   - "env"
//   - "isDevelopment"
//   - "nonce"
//   - "rootUrl"
func defaultParser(cfg Config, files fs.FS) *template.Parser {
	p := template.NewParser([]fs.FS{files}, template.WithReload(cfg.Debug))
	p = p.AddFn(template.Env(cfg.Env))
	p = p.AddFn("isDevelopment", cfg.Env.IsDevelopment)

	return p
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, u *url.URL, p *template.Parser) *resp.Responder {
	return resp.NewResponder(
		resp.WithErrTemplate(template.ErrorTmpl),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(u.String()),
	)
}

// defaultMiddlewares lists the adapters called on every request, outermost first.
// Rate limited requests get the responder's error page.
func defaultMiddlewares(cfg Config, httpLog *slog.Logger, m *middleware.Metrics, responder *resp.Responder) []middleware.Adapter {
	var visitors *middleware.Visitors
	if cfg.RateLimit {
		visitors = middleware.NewVisitors()
	}

	onLimit := func(w http.ResponseWriter, r *http.Request) {
		responder.Err(w, r, resp.ErrTooManyRequests, resp.Code(http.StatusTooManyRequests))
	}

	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLog),
		m.Adapter(),
		middleware.CORS(cfg.CORSOrigin),
		middleware.RateLimit(
			visitors,
			middleware.TrustProxyHeaders(cfg.TrustProxy),
			middleware.WithLimitHandler(onLimit),
		),
	}
}

// defaultRouter constructs a [*router.Router] answering unknown paths and methods
// with the responder's error page.
func defaultRouter(env waypoint.Environment, responder *resp.Responder, mws []middleware.Adapter) *router.Router {
	route := router.New(env, router.WithPanicHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		responder.Err(w, r, err, resp.Code(http.StatusInternalServerError))
	}))
	route.OnEveryRequest(mws...)
	route.HandleNotFound(func(w http.ResponseWriter, r *http.Request) {
		responder.Err(w, r, resp.ErrNotFound, resp.Code(http.StatusNotFound))
	})
	route.HandleMethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responder.Err(w, r, resp.ErrMethodNotAllowed, resp.Code(http.StatusMethodNotAllowed))
	})

	return route
}

// defaultRegistry constructs a *prometheus.Registry collecting Go runtime and process metrics.
func defaultRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config, h http.Handler) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

// defaultMetricsServer constructs an [*http.Server] exposing reg,
// or nil if no METRICS_PORT is set.
func defaultMetricsServer(cfg Config, reg *prometheus.Registry) *http.Server {
	if cfg.MetricsPort == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(defaultMetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &http.Server{
		Addr:         cfg.Host + cfg.MetricsPort,
		Handler:      mux,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// staticFiles returns the static directory under the working directory, if there is one.
func staticFiles() (fs.FS, bool) {
	info, err := os.Stat(staticDir)
	if err != nil || !info.IsDir() {
		return nil, false
	}

	return os.DirFS(staticDir), true
}
