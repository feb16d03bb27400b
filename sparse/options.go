// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for construction, conversion and
// reshaping. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic only on nonsensical values),
//   - gatherOptions helper (internal).
//
// Notes:
//   - Shape and order values come from user data, so they are validated by the
//     operations that consume them and reported as errors, never panics.
//   - The diagnostic sink and DIA threshold travel with a container: stores
//     derived from it (conversions, transposes, reshapes) inherit them.
package sparse

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultCopy leaves caller buffers aliased by constructors and lets
	// conversions share buffers when possible.
	DefaultCopy = false

	// DefaultOrder is the reshape linearization.
	DefaultOrder = OrderC

	// DefaultMaxDiagonals is the DIA diagonal count above which ToDIA emits a
	// DiagSparseEfficiency advisory.
	DefaultMaxDiagonals = 100
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicMaxDiagonalsInvalid = "sparse: WithMaxDiagonals: n must be non-negative"
	panicNilSink             = "sparse: WithDiagnostics: sink must not be nil"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	shape    Shape // explicit shape (nil ⇒ infer)
	hasShape bool

	copy  bool
	order Order

	sink         DiagnosticSink
	maxDiagonals int
}

// env is the part of Options a container keeps for later conversions.
type env struct {
	sink         DiagnosticSink
	maxDiagonals int
}

// WithShape supplies an explicit shape instead of inferring it from the
// index sequences (or, for dense input, a shape to be checked against).
func WithShape(dims ...int) Option {
	sh := append(Shape(nil), dims...)

	return func(o *Options) {
		o.shape = sh
		o.hasShape = true
	}
}

// WithCopy controls buffer aliasing: true forces private copies of caller
// buffers and of converted data.
func WithCopy(copy bool) Option {
	return func(o *Options) { o.copy = copy }
}

// WithOrder selects the reshape linearization ('C' or 'F'). Other tokens are
// rejected by Reshape with ErrInvalidOrder.
func WithOrder(order Order) Option {
	return func(o *Options) { o.order = order }
}

// WithDiagnostics routes advisories to sink instead of the package logger.
// Panics when sink is nil.
func WithDiagnostics(sink DiagnosticSink) Option {
	if sink == nil {
		panic(panicNilSink)
	}

	return func(o *Options) { o.sink = sink }
}

// WithMaxDiagonals sets the DIA advisory threshold. Panics when n < 0.
func WithMaxDiagonals(n int) Option {
	if n < 0 {
		panic(panicMaxDiagonalsInvalid)
	}

	return func(o *Options) { o.maxDiagonals = n }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		copy:         DefaultCopy,
		order:        DefaultOrder,
		sink:         logSink{},
		maxDiagonals: DefaultMaxDiagonals,
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// env extracts the container-carried subset.
func (o Options) env() env {
	return env{sink: o.sink, maxDiagonals: o.maxDiagonals}
}

// orDefault replaces a zero env (containers built as zero values) with the
// defaults.
func (e env) orDefault() env {
	if e.sink == nil {
		return defaultOptions().env()
	}

	return e
}
