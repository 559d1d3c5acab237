package in

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	assistantin "lockedin/internal/modules/assistant/port/in"
)

type RouterOptions struct {
	RateLimit  int
	RateWindow time.Duration
}

// NewRouter builds the gateway: POST /api/chat and GET /healthz.
func NewRouter(coach assistantin.Coach, opts RouterOptions, logger *slog.Logger) *chi.Mux {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	chat := NewChatHandler(coach, logger)

	r.Get("/healthz", Health)

	r.Group(func(r chi.Router) {
		r.Use(RequireDevice)
		r.Use(httprate.Limit(opts.RateLimit, opts.RateWindow,
			httprate.WithKeyFuncs(deviceKey),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusTooManyRequests, "too many requests")
			}),
		))
		r.Post("/api/chat", chat.Chat)
	})
	return r
}
