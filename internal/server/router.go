// Package server assembles the relay's HTTP router and middleware chain.
package server

import (
	"net/http"
	"time"

	"github.com/benvon/contact-relay/internal/handlers"
	"github.com/benvon/contact-relay/internal/middleware"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

// ServiceName identifies the relay in traces and logs
const ServiceName = "contact-relay"

// Options configures the router
type Options struct {
	Origins        []string
	TrustProxy     bool
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	EnableHSTS     bool
	Tracing        bool
}

// Deps are the collaborators the router wires together
type Deps struct {
	Dispatcher  handlers.Dispatcher
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// New builds the router. A request passes the origin guard, then the rate
// limiter, then validation, then dispatch; each stage can end it early.
func New(opts Options, deps Deps) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := middleware.NewOriginPolicy(opts.Origins)

	r := mux.NewRouter()

	// gorilla/mux runs middleware in registration order: the first one
	// registered is the outermost wrapper.
	if opts.Tracing {
		r.Use(otelmux.Middleware(ServiceName))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders(opts.EnableHSTS))
	r.Use(middleware.Logging(logger, opts.TrustProxy))
	r.Use(middleware.Audit(logger, opts.TrustProxy))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.OriginGuard(policy, logger))
	r.Use(middleware.CORS(policy))

	contact := handlers.NewContactHandler(deps.Dispatcher, logger)

	submit := r.Methods(http.MethodPost).Subrouter()
	submit.Use(deps.RateLimiter.Middleware)
	submit.Use(middleware.JSONBodyOnly(logger))
	submit.Use(middleware.MaxRequestSize(opts.MaxBodyBytes, logger))
	submit.Use(middleware.Timeout(opts.RequestTimeout))
	submit.HandleFunc("/", contact.Submit)

	// Preflights are answered by the CORS middleware. This route makes mux
	// match OPTIONS on any path so the middleware chain runs at all.
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
