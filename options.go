package behaviour

// Option configures a Registry.
type Option func(*Registry)

// WithIsolation makes Init call every handler regardless of failures of
// other handlers. Handler errors and panics are collected and returned
// together when Init has finished. Without this option, Init stops at
// the first failing handler and panics are not recovered.
//
// Elements for which a handler failed are not remembered as done, so
// a subsequent call to Init will try again.
func WithIsolation() Option {
	return func(r *Registry) {
		r.isolate = true
	}
}
