// Package qlog provides the module's ambient debug tracing: pass
// entry/exit and warning counts inside lowering/desugar/metadata, separate
// from the mandatory io.Writer diagnostic sink the public API exposes.
package qlog

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// Set installs the logger used by qlog.L() for the remainder of the
// process. Callers that want tracing output construct a real *zap.Logger
// and call Set once during startup; tests leave the default no-op logger
// in place.
func Set(l *zap.Logger) {
	logger = l.Sugar()
}

// L returns the currently installed logger.
func L() *zap.SugaredLogger {
	return logger
}
