// SPDX-License-Identifier: MIT

package sparse

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// pkgLogger holds the package logger; the zero state is a no-op logger so a
// library caller that never configures logging sees no output.
var pkgLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	pkgLogger.Store(&nop)
}

// SetLogger replaces the package logger. Conversion and canonicalization
// events are emitted at debug level; advisories from the default
// DiagnosticSink at warn level.
func SetLogger(l zerolog.Logger) {
	l = l.With().Str("component", "sparse").Logger()
	pkgLogger.Store(&l)
}

// Logger returns the current package logger.
func Logger() *zerolog.Logger { return pkgLogger.Load() }

// traceConversion logs a completed conversion at debug level.
func traceConversion(op string, from, to Format, shape Shape, nnz int, w IndexWidth) {
	l := Logger()
	l.Debug().
		Str("op", op).
		Stringer("from", from).
		Stringer("to", to).
		Stringer("shape", shape).
		Int("nnz", nnz).
		Stringer("width", w).
		Msg("converted")
}
