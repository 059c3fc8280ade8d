package router

import (
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// A Route for http.MethodGet also answers http.MethodHead,
// and http.MethodOptions with an empty body and an "Allow" header.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to the handlers registered with it.
type Router struct {
	env           waypoint.Environment
	everyReqStack []middleware.Adapter
	onPanic       func(http.ResponseWriter, *http.Request, error)
	r             *mux.Router
}

// A RouterOpt configures a *Router when constructing it.
type RouterOpt func(*Router)

// WithPanicHandler sets the function responding to requests whose handler panicked.
func WithPanicHandler(fn func(http.ResponseWriter, *http.Request, error)) RouterOpt {
	return func(r *Router) {
		r.onPanic = fn
	}
}

// New constructs a [*Router] for the given environment.
func New(env waypoint.Environment, opts ...RouterOpt) *Router {
	rt := &Router{env: env, r: mux.NewRouter()}
	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleMethodNotAllowed sets the provided [http.HandlerFunc] as the function
// for when a request matches the path of a Route but none of its methods.
//
// The "Allow" header lists the methods matching the path before handler is called.
func (r *Router) HandleMethodNotAllowed(handler http.HandlerFunc) {
	allow := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if methods := r.allowedMethods(req); len(methods) > 0 {
			w.Header().Set("Allow", strings.Join(methods, ", "))
		}

		handler(w, req)
	})

	r.r.MethodNotAllowedHandler = r.wrap(allow)
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
//
// Call OnEveryRequest first; its middlewares apply here too.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = r.wrap(handler)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter{}, middlewares...), route.Middlewares...)
		methods := []string{route.Method}
		if route.Method == http.MethodGet {
			methods = append(methods, http.MethodHead)
		}

		r.r.Handle(route.Path, r.wrap(route.Handler, mws...)).Methods(methods...)
		if route.Method == http.MethodGet {
			r.r.Handle(route.Path, r.wrap(r.options, mws...)).Methods(http.MethodOptions)
		}
	}
}

// HandleStatic serves files under prefix, e.g. "/static/", from files.
// Responses carry a 30 day "Cache-Control" header.
func (r *Router) HandleStatic(prefix string, files fs.FS) {
	server := http.StripPrefix(prefix, http.FileServer(http.FS(files)))
	r.r.PathPrefix(prefix).Methods(http.MethodGet, http.MethodHead).Handler(r.wrap(server.ServeHTTP, cacheControlMiddleware()))
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Only routes registered afterwards receive them.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [*Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		env:           r.env,
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
		onPanic:       r.onPanic,
		r:             r.r.PathPrefix(prefix).Subrouter(),
	}
}

// allowedMethods collects, sorted, the methods of every Route matching the path of req.
func (r *Router) allowedMethods(req *http.Request) []string {
	seen := make(map[string]bool)
	_ = r.r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		var match mux.RouteMatch
		if !route.Match(req, &match) && match.MatchErr != mux.ErrMethodMismatch {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}

		for _, m := range methods {
			seen[m] = true
		}

		return nil
	})

	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	return methods
}

// options answers http.MethodOptions with the methods matching the path of req.
func (r *Router) options(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Allow", strings.Join(r.allowedMethods(req), ", "))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
}

// wrap recovers panics in handler and applies every request middleware, then mws.
func (r *Router) wrap(handler http.HandlerFunc, mws ...middleware.Adapter) http.Handler {
	stack := append(append([]middleware.Adapter{}, r.everyReqStack...), mws...)
	return middleware.Chain(middleware.ReportPanic(r.env, r.onPanic)(handler), stack...)
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
