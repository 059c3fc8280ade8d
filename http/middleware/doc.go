/*
The middleware package defines what a middleware is in waypoint and a set of basic middlewares.

The available middlewares are:
  - CORS
  - InjectIPAddress
  - LogRequest
  - (*Metrics).Adapter
  - RateLimit
  - ReportPanic
  - RequestID

package ranger assembles the default chain applied to every request:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(httpLog),
		metrics.Adapter(),
		middleware.CORS(origin),
		middleware.RateLimit(visitors),
	}
*/
package middleware
