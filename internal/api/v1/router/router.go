package router

import (
	"net/http"

	"seoinspector/internal/api/v1/handler"
	"seoinspector/internal/api/v1/middleware"
	"seoinspector/internal/config"
	"seoinspector/internal/log"
)

const (
	appName    = "seoinspector"
	apiVersion = "v1"
	BasePath   = "/" + appName + "/api/" + apiVersion
)

func New(h *handler.Handler, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	register := func(path string, fn http.HandlerFunc) {
		mux.HandleFunc(BasePath+path, fn)
	}

	register("/health", handler.HealthCheckHandler)
	register("/inspect", h.InspectHandler)
	register("/panel", h.PanelHandler)

	var api http.Handler = mux
	if cfg.AuthEnabled() {
		api = middleware.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass)(api)
	}

	return middleware.RecoverPanic(
		log.Logger,
		func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
		middleware.SecureHeaders(
			middleware.Logging(
				middleware.MetricsMiddleware(
					middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(api),
				),
			),
		),
	)
}

func NewMetricsRouter() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler.MetricsHandler())
	return mux
}
