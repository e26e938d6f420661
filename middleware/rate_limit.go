package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	e "github.com/julianlk522/tryon/error"
)

const (
	// every try-on costs an upstream API call
	TRYON_LIMIT_PER_MINUTE = 60
	TRYON_LIMIT_PER_SECOND = 5
)

func TryOnRateLimits() []func(next http.Handler) http.Handler {
	return []func(next http.Handler) http.Handler{
		// per minute (IP)
		httprate.Limit(
			TRYON_LIMIT_PER_MINUTE,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(renderRateLimited),
		),
		// per second (IP)
		// (stop short bursts quickly)
		httprate.Limit(
			TRYON_LIMIT_PER_SECOND,
			time.Second,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(renderRateLimited),
		),
	}
}

func renderRateLimited(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, e.ErrTooManyRequests(e.ErrRateLimited))
}
