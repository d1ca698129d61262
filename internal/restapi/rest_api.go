package restapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"spacetime.railviz.dev/internal/app"
	"spacetime.railviz.dev/internal/webui"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Handler builds the router and wraps it in the middleware chain:
// request logging, security headers, rate limiting and compression.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.HandleMethodNotAllowed = false

	api.SetRoutes(router)
	webui.New(api.Application).SetRoutes(router)

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger, api.Metrics)(handler)
	return handler
}

// Stop releases the rate limiter's background cleanup.
func (api *RestAPI) Stop() {
	api.rateLimiter.Stop()
}
