package initializers

import (
	"os"

	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/fiberlog"
)

func InitLogger() *fiberlog.Config {
	level := log.InfoLevel
	if parsed, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = parsed
	}
	log.SetFormatter(newFormatter())
	log.SetLevel(level)

	logger := log.New()
	logger.SetFormatter(newFormatter())
	logger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger:  logger,
		UserTag: true,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.RequestID,
		},
	}
}

func newFormatter() log.Formatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}
