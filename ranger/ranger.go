package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/http/template"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/web"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a waypoint app to one another.
type Ranger struct {
	*resp.Responder

	cfg        Config
	ctx        context.Context
	l          logger.Logger
	metricsSrv *http.Server
	p          *template.Parser
	reg        *prometheus.Registry
	router     *router.Router
	srv        *http.Server
	url        *url.URL
}

// New constructs a Ranger from the environment and the provided options.
// Options supplied to New overwrite values read from the environment.
func New(opts ...RangerOption) (*Ranger, error) {
	cfg, err := NewConfig()
	if err != nil {
		return nil, err
	}

	r := &Ranger{cfg: cfg}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
		}
	}

	if err := r.cfg.Valid(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	r.url, err = url.ParseRequestURI(r.cfg.BaseURL())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	if r.l == nil {
		r.l = defaultAppLogger(r.cfg)
	}

	if r.reg == nil {
		r.reg = defaultRegistry()
	}

	m, err := middleware.NewMetrics(r.reg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	r.p = defaultParser(r.cfg, os.DirFS("."))
	r.Responder = defaultResponder(r.l, r.url, r.p)

	r.router = defaultRouter(r.cfg.Env, r.Responder, defaultMiddlewares(r.cfg, defaultHTTPLogger(r.cfg), m, r.Responder))
	r.router.HandleRoutes(web.NewHandler(r.Responder, r.cfg.Variant).Routes())
	if files, ok := staticFiles(); ok {
		r.router.HandleStatic(staticPrefix, files)
		r.l.Debug("serving static files from "+staticDir, nil)
	}

	r.srv = defaultServer(r.ctx, r.cfg, r.router)
	r.metricsSrv = defaultMetricsServer(r.cfg, r.reg)

	r.l.Debug(fmt.Sprintf("using env %s, variant %s, reload %t", r.cfg.Env, r.cfg.Variant, r.p.Reloading()), nil)

	return r, nil
}

// Config returns the settings r was built from.
func (r *Ranger) Config() Config { return r.cfg }

// EmitLogger returns the app logger.
func (r *Ranger) EmitLogger() logger.Logger { return r.l }

// Handler returns the [http.Handler] serving the homepage routes.
func (r *Ranger) Handler() http.Handler { return r.router }

// Registry returns the registry the web server's metrics are collected in.
func (r *Ranger) Registry() *prometheus.Registry { return r.reg }

// Guide begins the web server, along with the metrics server if METRICS_PORT is set.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	base := r.ctx
	if base == nil {
		base = context.Background()
	}

	ctx, stop := signal.NotifyContext(
		base,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errs := make(chan error, 2)
	listen := func(srv *http.Server, name string) {
		r.l.Info(fmt.Sprintf("running %s at %s", name, srv.Addr), nil)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("could not listen: %w", err)
			return
		}

		errs <- nil
	}

	running := 1
	go listen(r.srv, "web server")
	if r.metricsSrv != nil {
		running++
		go listen(r.metricsSrv, "metrics server")
	}

	var listenErr error
	select {
	case <-ctx.Done():
		r.l.Info("received shutdown signal", nil)
	case listenErr = <-errs:
		running--
		if listenErr != nil {
			r.l.Error(listenErr.Error(), nil)
		}
	}

	err := r.Shutdown()
	for ; running > 0; running-- {
		if e := <-errs; e != nil && listenErr == nil {
			listenErr = e
		}
	}

	return errors.Join(listenErr, err)
}

// Shutdown shuts down the web server and, if running, the metrics server.
func (r *Ranger) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	var errs []error
	for _, srv := range []*http.Server{r.srv, r.metricsSrv} {
		if srv == nil {
			continue
		}

		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, fmt.Errorf("could not shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
