package resp

import (
	"fmt"
	"net/http"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(*Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w           http.ResponseWriter
	r           *http.Request
	code        int
	contentType string
	data        any
	err         error
	tmpls       []string
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ *Responder, r *Response) error {
		if c < 100 || c > 999 {
			return fmt.Errorf("%w: status code %d", ErrBadConfig, c)
		}

		r.code = c
		return nil
	}
}

// ContentType overrides the Content-Type header of the response.
func ContentType(ct string) Fn {
	return func(_ *Responder, r *Response) error {
		r.contentType = ct
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Html executes templates with it; Text writes it formatted with fmt.Sprint.
func Data(d any) Fn {
	return func(_ *Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err records the error and sets the status code http.StatusInternalServerError,
// unless a status code has already been set.
func Err(e error) Fn {
	return func(_ *Responder, r *Response) error {
		r.err = e
		if r.code == 0 {
			r.code = http.StatusInternalServerError
		}

		return nil
	}
}

// Tmpls appends to the templates to be rendered.
// The first one is the template executed.
//
// Used with Responder.Html.
func Tmpls(fps ...string) Fn {
	return func(_ *Responder, r *Response) error {
		r.tmpls = append(r.tmpls, fps...)
		return nil
	}
}
