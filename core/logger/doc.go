// Package logger provides structured logging helpers built on Go's standard
// slog package: a set of pre-built, nil-safe attribute constructors for the
// fields this module logs repeatedly.
//
// Basic usage:
//
//	import "github.com/docview/pagestream/core/logger"
//
//	log.Info("stream event handled",
//		logger.Component("pagestream"),
//		logger.Event("pageavailable.svg"),
//		logger.Page(3),
//	)
//
//	// Nil errors produce an empty attribute, so no nil check is needed:
//	log.Warn("publish failed", logger.Error(err))
package logger
