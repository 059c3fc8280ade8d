package ranger

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/domain"
	"github.com/xy-planning-network/waypoint/logger"
)

// A RangerOption configures a *Ranger under construction.
// RangerOptions run after the Config is read from the environment
// and before any component is built from it.
type RangerOption func(rng *Ranger) error

// WithContext sets the context.Context every request's context derives from.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		rng.ctx = ctx
		return nil
	}
}

// WithDebug toggles debug logging and template auto-reload.
func WithDebug(debug bool) RangerOption {
	return func(rng *Ranger) error {
		rng.cfg.Debug = debug
		return nil
	}
}

// WithEnv sets the Environment the ranger runs in.
func WithEnv(env waypoint.Environment) RangerOption {
	return func(rng *Ranger) error {
		if err := env.Valid(); err != nil {
			return err
		}

		rng.cfg.Env = env
		return nil
	}
}

// WithHost sets the host the web server listens on.
func WithHost(host string) RangerOption {
	return func(rng *Ranger) error {
		rng.cfg.Host = host
		return nil
	}
}

// WithLogger uses l as the app logger instead of one built from the Config.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithLogOutput writes app and HTTP logs to w.
func WithLogOutput(w io.Writer) RangerOption {
	return func(rng *Ranger) error {
		rng.cfg.LogOutput = w
		return nil
	}
}

// WithPort sets the port the web server listens on, e.g. "8080" or ":8080".
func WithPort(port string) RangerOption {
	return func(rng *Ranger) error {
		rng.cfg.Port = normalizePort(port)
		return nil
	}
}

// WithRegistry registers metrics with reg instead of a new *prometheus.Registry.
func WithRegistry(reg *prometheus.Registry) RangerOption {
	return func(rng *Ranger) error {
		rng.reg = reg
		return nil
	}
}

// WithVariant parses v into the homepage variant to serve.
func WithVariant(v string) RangerOption {
	return func(rng *Ranger) error {
		variant, err := domain.ParseVariant(v)
		if err != nil {
			return err
		}

		rng.cfg.Variant = variant
		return nil
	}
}
