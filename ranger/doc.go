/*
Package ranger wires together the components of a waypoint web server:
the configuration, loggers, template parser, responder, router and [*http.Server].

A ranger reads its configuration from environment variables,
loading any present in a .env file first,
then any unset ones from the YAML file CONFIG_FILE names (see LoadFile).
RangerOptions passed to New override them.

	CONFIG_FILE          YAML file filling in unset variables
	ENVIRONMENT          DEVELOPMENT, STAGING, PRODUCTION or TESTING; defaults to DEVELOPMENT
	HOST                 listen host; defaults to localhost
	PORT                 listen port; defaults to :5000
	DEBUG                debug logging and template auto-reload; defaults to false
	VARIANT              plain or tasks; defaults to tasks
	LOG_LEVEL            DEBUG, INFO, WARN or ERROR; defaults to INFO
	LOG_JSON             log JSON in DEVELOPMENT; defaults to false
	SENTRY_DSN           report errors and panics to Sentry
	CORS_ORIGIN          allow cross-origin requests from the origin
	RATE_LIMIT           rate limit requests per IP address; defaults to false
	TRUST_PROXY          rate limit by proxy headers instead of the connection; defaults to false
	METRICS_PORT         serve Prometheus metrics at /metrics on this port
	SERVER_READ_TIMEOUT  defaults to 5s
	SERVER_WRITE_TIMEOUT defaults to 5s
	SERVER_IDLE_TIMEOUT  defaults to 120s

Start the server with Guide:

	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	log.Fatal(rng.Guide())
*/
package ranger
