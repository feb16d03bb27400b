// SPDX-License-Identifier: MIT

package sparse

import "fmt"

// DiagnosticKind classifies an advisory condition.
type DiagnosticKind uint8

const (
	// DiagNonIntegerIndex: an index sequence was supplied with a non-integer
	// element type and has been truncated to integers.
	DiagNonIntegerIndex DiagnosticKind = iota + 1

	// DiagSparseEfficiency: a conversion produced a layout known to be
	// inefficient (a DIA container with too many diagonals).
	DiagSparseEfficiency
)

// String returns a stable, grep-friendly name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagNonIntegerIndex:
		return "non_integer_index"
	case DiagSparseEfficiency:
		return "sparse_efficiency"
	default:
		return fmt.Sprintf("diagnostic(%d)", uint8(k))
	}
}

// Diagnostic is a non-fatal advisory. The operation that raised it completed.
type Diagnostic struct {
	Kind    DiagnosticKind
	Op      string // operation tag, e.g. "ToDIA"
	Axis    int    // axis concerned (-1 when not applicable)
	Count   int    // quantity that triggered the advisory (e.g. diagonal count)
	Message string
}

// DiagnosticSink receives advisories. Implementations must not retain the
// container that raised the advisory.
type DiagnosticSink interface {
	Report(d Diagnostic)
}

// DiagnosticFunc adapts a function to DiagnosticSink.
type DiagnosticFunc func(d Diagnostic)

// Report calls f(d).
func (f DiagnosticFunc) Report(d Diagnostic) { f(d) }

// DiagnosticRecorder collects advisories in arrival order. Useful in tests
// and in batch tools that summarize advisories at the end.
type DiagnosticRecorder struct {
	items []Diagnostic
}

// Report appends d.
func (r *DiagnosticRecorder) Report(d Diagnostic) { r.items = append(r.items, d) }

// Diagnostics returns a copy of the recorded advisories.
func (r *DiagnosticRecorder) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), r.items...)
}

// Count returns how many advisories of kind k were recorded.
func (r *DiagnosticRecorder) Count(k DiagnosticKind) int {
	n := 0
	for _, d := range r.items {
		if d.Kind == k {
			n++
		}
	}

	return n
}

// logSink is the default sink: advisories become warn-level log events.
type logSink struct{}

// Report logs d through the package logger.
func (logSink) Report(d Diagnostic) {
	l := Logger()
	l.Warn().
		Str("kind", d.Kind.String()).
		Str("op", d.Op).
		Int("axis", d.Axis).
		Int("count", d.Count).
		Msg(d.Message)
}

// report delivers d to the environment's sink.
func (e env) report(d Diagnostic) {
	e.orDefault().sink.Report(d)
}
