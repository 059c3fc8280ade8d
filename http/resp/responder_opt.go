package resp

import (
	"net/url"

	"github.com/xy-planning-network/waypoint/http/template"
	"github.com/xy-planning-network/waypoint/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithErrTemplate sets the template identified by the filepath to use for rendering
// error pages.
//
// The template is executed with the fields Code, Title and Description.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, one wrapping slog.Default is used.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the *template.Parser to use for parsing HTML templates.
func WithParser(p *template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering.
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes http://localhost:5000/
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("http://localhost:5000/")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}
