// Package logger builds slog loggers with environment defaults, static attributes and
// context extractors, plus a small set of attribute helpers used across the service.
//
// WithEnvironment picks debug text output for development and info JSON for
// staging and production, and tags every record with the service name and
// environment. WithConfig then applies LOG_LEVEL and LOG_FORMAT when they are set.
//
// Context extractors add per-request attributes to records logged with a
// context (InfoContext, DebugContext, ...). RequestIDExtractor reads the id set
// by the router's request-id middleware; LocaleExtractor reads the negotiated
// request locale.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "fortuned"),
//		logger.WithConfig(cfg.Log),
//		logger.WithContextExtractors(
//			logger.RequestIDExtractor(middleware.GetReqID),
//			logger.LocaleExtractor(i18n.LocaleFromContext),
//		),
//	)
//	log.InfoContext(r.Context(), "fortune selected", logger.MessageKey("fortune.3"))
//
// Packages default to Discard when no logger is supplied.
package logger
