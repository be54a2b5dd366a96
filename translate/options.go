package translate

import "go.uber.org/zap"

// Observer is notified about every translated node and every rejected
// formula.
type Observer interface {
	// Translated is called once per node after its handle was built; kind
	// is expr.Kind of the node.
	Translated(kind string)
	// Rejected is called with the error of a failed Translate.
	Rejected(err error)
}

type nopObserver struct{}

func (nopObserver) Translated(string) {}
func (nopObserver) Rejected(error)    {}

type options struct {
	negation bool
	log      *zap.Logger
	observer Observer
}

// Option configures a Translator.
type Option func(*options)

// WithNegation enables translation of logical negation. Without it,
// Negation nodes are rejected as unsupported.
func WithNegation() Option {
	return func(o *options) { o.negation = true }
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithObserver registers an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}
