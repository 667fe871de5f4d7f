package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/serframe/internal/logging"
)

// InitLogger configures the process-wide logger and stamps every event
// with the app name. Level and format honor the SERFRAME_LOG_*
// environment overrides.
func InitLogger(app string) zerolog.Logger {
	logging.ConfigureRuntime()
	logger := log.Logger.With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
