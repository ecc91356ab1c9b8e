package handler

import (
	"net/http"
	"sync"

	"kingdom/config"
	"kingdom/di"
	"kingdom/shared/logger"
	"kingdom/shared/metrics"
	"kingdom/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler serves a single serverless invocation. The service graph is built once per
// warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Warn().Err(err).Msg("using UTC")
		}

		if cfg.Metrics.Enable {
			metrics.Register()
		}

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
