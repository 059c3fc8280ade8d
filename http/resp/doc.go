/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides three ways of responding to an HTTP request:
  - rendering HTML templates with [*Responder.Html]
  - writing a literal body with [*Responder.Text]
  - rendering an error page with [*Responder.Err]

Calling code supplies per-request data, status codes and templates through [Fn] options.
*/
package resp
