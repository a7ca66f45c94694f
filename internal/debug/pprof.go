package debug

import (
	"net/http"
	_ "net/http/pprof"

	"go.uber.org/zap"
	"seoinspector/internal/log"
)

// StartPprof serves the default mux, where net/http/pprof registers itself.
// The API uses its own mux so profiles never leak onto the public port.
func StartPprof(host string) {
	go func() {
		log.Logger.Info("pprof listening", zap.String("host", host))
		if err := http.ListenAndServe(host, nil); err != nil {
			log.Logger.Error("pprof stopped", zap.String("host", host), zap.Error(err))
		}
	}()
}
