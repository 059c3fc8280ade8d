package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultVisitorLimit rate.Limit = 5
	defaultVisitorBurst            = 20
	defaultMaxVisitors             = 10_000
	visitorTTL                     = 60 * time.Minute
	cleanupEvery                   = time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst       int
	limit       rate.Limit
	lastCleanup time.Time
	max         int
	val         map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors limiting each IP address to 5 requests every second with bursts of up to 20.
func NewVisitors() *Visitors { return NewVisitorsWithLimit(defaultVisitorLimit, defaultVisitorBurst) }

// NewVisitorsWithLimit constructs a *Visitors limiting each IP address
// to limit requests every second with bursts of up to burst.
// At most 10,000 IP addresses are tracked; cf. WithMax.
func NewVisitorsWithLimit(limit rate.Limit, burst int) *Visitors {
	return &Visitors{
		burst:       burst,
		limit:       limit,
		lastCleanup: time.Now().UTC(),
		max:         defaultMaxVisitors,
		val:         make(map[string]Visitor),
	}
}

// WithMax caps how many IP addresses vs tracks at once.
// Values below 1 are ignored.
func (vs *Visitors) WithMax(n int) *Visitors {
	vs.Lock()
	defer vs.Unlock()

	if n > 0 {
		vs.max = n
	}

	return vs
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
//
// Once vs is full, expired Visitors are swept and, failing that,
// the Visitor seen least recently is evicted to make room.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		if len(vs.val) >= vs.max {
			vs.evict()
		}
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
// It sweeps at most once a minute.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()

	now := time.Now().UTC()
	if now.Sub(vs.lastCleanup) < cleanupEvery {
		return
	}
	vs.lastCleanup = now
	vs.sweep(now)
}

// evict makes room for one more Visitor. vs must be locked.
func (vs *Visitors) evict() {
	if vs.sweep(time.Now().UTC()) > 0 {
		return
	}

	var (
		oldest string
		seen   time.Time
	)
	for ip, v := range vs.val {
		if oldest == "" || v.LastSeen.Before(seen) {
			oldest, seen = ip, v.LastSeen
		}
	}
	delete(vs.val, oldest)
}

// sweep deletes expired Visitors, reporting how many. vs must be locked.
func (vs *Visitors) sweep(now time.Time) int {
	n := 0
	for ip, v := range vs.val {
		if now.Sub(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
			n++
		}
	}

	return n
}

// A RateLimitOpt configures RateLimit.
type RateLimitOpt func(*rateLimitConfig)

type rateLimitConfig struct {
	onLimit    http.HandlerFunc
	trustProxy bool
}

// TrustProxyHeaders keys Visitors on the address proxy headers report; cf. GetIPAddress.
// Only use it behind a proxy that overwrites "X-Forwarded-For" and "X-Real-Ip",
// otherwise clients choose their own key.
func TrustProxyHeaders(trust bool) RateLimitOpt {
	return func(c *rateLimitConfig) {
		c.trustProxy = trust
	}
}

// WithLimitHandler sets the handler responding to rejected requests.
func WithLimitHandler(fn http.HandlerFunc) RateLimitOpt {
	return func(c *rateLimitConfig) {
		if fn != nil {
			c.onLimit = fn
		}
	}
}

// RateLimit rejects requests with http.StatusTooManyRequests
// once the Visitor for the request's IP address exhausts its limiter.
//
// The IP address is the host of *http.Request.RemoteAddr,
// unless TrustProxyHeaders is set.
// Rejected requests get http.Error unless WithLimitHandler is set.
//
// If visitors is nil, NoopAdapter returns and this middleware does nothing.
func RateLimit(visitors *Visitors, opts ...RateLimitOpt) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	cfg := &rateLimitConfig{
		onLimit: func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r)
			if cfg.trustProxy {
				ip = clientIP(r)
			}

			if !visitors.Fetch(ip).Limiter.Allow() {
				cfg.onLimit(w, r)
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
