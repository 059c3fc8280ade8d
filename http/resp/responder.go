package resp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/xy-planning-network/waypoint/http/template"
	"github.com/xy-planning-network/waypoint/logger"
)

const htmlContentType = "text/html; charset=utf-8"

// descriptions holds the body text of error pages, by status code.
var descriptions = map[int]string{
	http.StatusNotFound:            "The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.",
	http.StatusMethodNotAllowed:    "The method is not allowed for the requested URL.",
	http.StatusTooManyRequests:     "This user has exceeded an allotted request count. Try again later.",
	http.StatusInternalServerError: "The server encountered an internal error and was unable to complete your request. Either the server is overloaded or there is an error in the application.",
}

// Responder maintains reusable pieces for responding to HTTP requests.
// These are the forms of response Responder can execute:
//
//	Html
//	Text
//	Err
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
type Responder struct {
	logger logger.Logger

	// Initialized template parser
	parser *template.Parser

	// Pool of *bytes.Buffer to prerender responses into
	pool *sync.Pool

	// Root URL the responder is listening on
	rootUrl *url.URL

	templates struct {
		// Root template to render when an error occurs
		err string
	}
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New(nil)
	}

	if d.parser != nil && d.rootUrl != nil {
		d.parser.AddFn(template.RootUrl(d.rootUrl))
	}

	return d
}

// Err renders the error template set on the Responder with the status code set by Code,
// or http.StatusInternalServerError if none is.
//
// Server errors are logged as errors, client errors at debug.
// If no error template can be rendered, Err falls back to http.Error.
func (doer *Responder) Err(w http.ResponseWriter, r *http.Request, err error, opts ...Fn) {
	rr, nested := doer.do(w, r, append(opts, Err(err))...)
	if nested != nil {
		if errors.Is(nested, ErrDone) {
			return
		}

		err = fmt.Errorf("%w: %s", err, nested)
		rr.code = http.StatusInternalServerError
	}

	lc := &logger.LogContext{Error: err, Request: r}
	if rr.code >= http.StatusInternalServerError {
		doer.logger.Error(fmt.Sprint(err), lc)
	} else {
		doer.logger.Debug(fmt.Sprint(err), lc)
	}

	title := http.StatusText(rr.code)
	if doer.parser == nil || doer.templates.err == "" {
		http.Error(w, title, rr.code)
		return
	}

	tmpl, nested := doer.parser.Parse(doer.templates.err)
	if nested != nil {
		doer.logger.Error(fmt.Sprintf("cannot parse error template: %s", nested), nil)
		http.Error(w, title, rr.code)
		return
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	data := map[string]any{
		"Code":        rr.code,
		"Title":       title,
		"Description": descriptions[rr.code],
	}
	if nested = tmpl.Execute(b, data); nested != nil {
		doer.logger.Error(fmt.Sprintf("cannot execute error template: %s", nested), nil)
		http.Error(w, title, rr.code)
		return
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(rr.code)
	if _, nested = b.WriteTo(w); nested != nil {
		doer.logger.Error(fmt.Sprintf("cannot write error page: %s", nested), nil)
	}
}

// Html executes the first template set by Tmpls with the value set by Data.
//
// The page renders fully before anything is written,
// so a failure renders the error page instead of a partial one.
func (doer *Responder) Html(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if doer.parser == nil {
		return fmt.Errorf("%w: no parser configured", ErrBadConfig)
	}

	if len(rr.tmpls) == 0 {
		return fmt.Errorf("%w: no templates to render", ErrMissingData)
	}

	tmpl, err := doer.parser.Parse(rr.tmpls...)
	if err != nil {
		return fmt.Errorf("cannot parse: %w", err)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	if err := tmpl.ExecuteTemplate(b, path.Base(rr.tmpls[0]), rr.data); err != nil {
		return fmt.Errorf("cannot execute: %w", err)
	}

	return doer.write(w, rr, b)
}

// Text writes the value set by Data, formatted with fmt.Sprint, as the response body.
//
// The default Content-Type is "text/html; charset=utf-8"; override it with ContentType.
func (doer *Responder) Text(w http.ResponseWriter, r *http.Request, opts ...Fn) error {
	rr, err := doer.do(w, r, opts...)
	if err != nil {
		return err
	}

	if rr.data == nil {
		return fmt.Errorf("%w: no body to write", ErrMissingData)
	}

	b := doer.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer doer.pool.Put(b)

	fmt.Fprint(b, rr.data)

	return doer.write(w, rr, b)
}

// do applies all options to a new *Response for w and r, in order.
//
// do stops at the first option returning an error,
// or with ErrDone when the request's context.Context is done.
func (doer *Responder) do(w http.ResponseWriter, r *http.Request, opts ...Fn) (*Response, error) {
	resp := &Response{w: w, r: r}
	for _, opt := range opts {
		select {
		case <-r.Context().Done():
			return resp, fmt.Errorf("%w", ErrDone)
		default:
			if err := opt(doer, resp); err != nil {
				return resp, err
			}
		}
	}

	return resp, nil
}

// write sets headers and the status code, then copies b to w.
func (doer *Responder) write(w http.ResponseWriter, rr *Response, b *bytes.Buffer) error {
	ct := rr.contentType
	if ct == "" {
		ct = htmlContentType
	}

	code := rr.code
	if code == 0 {
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", ct)
	w.WriteHeader(code)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}

	return nil
}
