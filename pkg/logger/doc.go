// Package logger builds *slog.Logger instances with environment presets,
// consistent attribute helpers and attributes pulled from context.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "storefront"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "submission accepted",
//		logger.Form("booking"),
//		logger.SubmissionID(id),
//	)
//
// Attribute helpers return an empty slog.Attr for empty input so call sites
// never need to branch.
package logger
