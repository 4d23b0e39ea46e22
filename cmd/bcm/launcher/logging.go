package launcher

import (
	"fmt"
	"io"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// setupLogging configures the standard logger. Verbosity maps directly onto
// logrus levels, 0 (panic) through 6 (trace).
func setupLogging(cfg LoggingConfig, w io.Writer) error {
	if cfg.Verbosity < int(logrus.PanicLevel) || cfg.Verbosity > int(logrus.TraceLevel) {
		return fmt.Errorf("log verbosity %d out of range 0..%d", cfg.Verbosity, logrus.TraceLevel)
	}
	logrus.SetLevel(logrus.Level(cfg.Verbosity))
	logrus.SetOutput(w)

	switch cfg.Format {
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Color,
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", cfg.Format)
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("sentry hook: %w", err)
		}
		logrus.AddHook(hook)
	}
	return nil
}
