package web

import "net/http"

// SetupRoutes builds the mux for h. Every route runs through the same
// middleware chain.
func SetupRoutes(h *Handler) *http.ServeMux {
	router := http.NewServeMux()
	wrap := func(fn HandlerFunc) http.HandlerFunc {
		return applyMiddleware(h.render, fn)
	}

	router.Handle("GET /{$}", wrap(h.Index))
	router.Handle("POST /{$}", wrap(h.Import))
	router.Handle("GET /user/{id}", wrap(h.User))
	router.Handle("GET /random", wrap(h.Random))
	router.Handle("GET /healthz", wrap(h.HealthCheck))
	router.Handle("/", wrap(h.NotFound))

	return router
}

func applyMiddleware(rd *Renderer, h HandlerFunc) http.HandlerFunc {
	return ErrorHandler(rd,
		TrustProxyMiddleware(
			RequestID(
				LoggingMiddleware(h),
			),
		),
	)
}
