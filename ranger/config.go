package ranger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/domain"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Homepage defaults
	debugEnvVar    = "DEBUG"
	variantEnvVar  = "VARIANT"
	DefaultVariant = domain.WithTasks

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLvl   = slog.LevelInfo
	logJSONEnvVar   = "LOG_JSON"
	defaultLogJSON  = false
	sentryDsnEnvVar = "SENTRY_DSN"

	// Middleware defaults
	corsOriginEnvVar   = "CORS_ORIGIN"
	rateLimitEnvVar    = "RATE_LIMIT"
	trustProxyEnvVar   = "TRUST_PROXY"
	metricsPortEnvVar  = "METRICS_PORT"
	defaultMetricsPath = "/metrics"

	// Template defaults
	staticDir    = "static"
	staticPrefix = "/static/"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":5000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

// Config holds the settings a Ranger is built from.
type Config struct {
	Env     waypoint.Environment
	Debug   bool
	Variant domain.Variant

	Host        string
	Port        string
	MetricsPort string

	LogLevel  slog.Level
	LogJSON   bool
	LogOutput io.Writer
	SentryDSN string

	CORSOrigin string
	RateLimit  bool
	TrustProxy bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewConfig reads a Config from environment variables.
//
// An unknown VARIANT is reported after all other values are read.
//
// If CONFIG_FILE names a YAML file, it is loaded with LoadFile first.
func NewConfig() (Config, error) {
	if path := os.Getenv(configFileEnvVar); path != "" {
		if err := LoadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Env:          waypoint.EnvVarOrEnv(environmentEnvVar, waypoint.Development),
		Debug:        waypoint.EnvVarOrBool(debugEnvVar, false),
		Variant:      DefaultVariant,
		Host:         waypoint.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:         normalizePort(waypoint.EnvVarOrString(portEnvVar, DefaultPort)),
		MetricsPort:  normalizePort(os.Getenv(metricsPortEnvVar)),
		LogLevel:     waypoint.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl),
		LogJSON:      waypoint.EnvVarOrBool(logJSONEnvVar, defaultLogJSON),
		LogOutput:    os.Stdout,
		SentryDSN:    os.Getenv(sentryDsnEnvVar),
		CORSOrigin:   os.Getenv(corsOriginEnvVar),
		RateLimit:    waypoint.EnvVarOrBool(rateLimitEnvVar, false),
		TrustProxy:   waypoint.EnvVarOrBool(trustProxyEnvVar, false),
		ReadTimeout:  waypoint.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: waypoint.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		IdleTimeout:  waypoint.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
	}

	if val := os.Getenv(variantEnvVar); val != "" {
		v, err := domain.ParseVariant(val)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s: %w", ErrBadConfig, variantEnvVar, err)
		}

		cfg.Variant = v
	}

	return cfg, nil
}

// Addr is the address the web server listens on.
func (c Config) Addr() string { return c.Host + c.Port }

// BaseURL is the root URL the homepage links from.
func (c Config) BaseURL() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}

	return "http://" + host + c.Port + "/"
}

// level is the log level after DEBUG is taken into account.
func (c Config) level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	return c.LogLevel
}

// Valid reports whether c can build a Ranger.
func (c Config) Valid() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: %s %q", ErrNotValid, environmentEnvVar, c.Env)
	}

	if err := c.Variant.Valid(); err != nil {
		return fmt.Errorf("%w: %s %q", ErrNotValid, variantEnvVar, c.Variant)
	}

	if c.Port == "" {
		return fmt.Errorf("%w: empty %s", ErrNotValid, portEnvVar)
	}

	if c.MetricsPort != "" && c.MetricsPort == c.Port {
		return fmt.Errorf("%w: %s matches %s", ErrNotValid, metricsPortEnvVar, portEnvVar)
	}

	return nil
}

// normalizePort prefixes port with a colon, e.g. 5000 => :5000
func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" || port[0] == ':' {
		return port
	}

	return ":" + port
}
