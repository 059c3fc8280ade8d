/*
Package router defines how a waypoint web server routes requests.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.

A [*Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

Path parameters constrained to integers are declared with [IntParam]
and read with [IntVar]:

	rt.Handle(router.Route{Path: "/user/" + router.IntParam("id"), Method: http.MethodGet, Handler: h.User})

A request whose segment is not made of digits does not match the route,
so the not-found handler answers it and the route's handler never runs.
*/
package router
