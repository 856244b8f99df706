// Package logging builds the service's slog loggers and carries them through
// request contexts.
//
// LOG_LEVEL selects debug, info, warn or error. LOG_FORMAT=text switches the
// default JSON output to slog's text handler.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("processing request")
//	}
package logging
