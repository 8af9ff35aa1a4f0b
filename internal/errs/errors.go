// Package errs holds the single classified error type shared by the signal
// loader, the alphabet resolver and the backend adapters.
package errs

import "errors"

// Kind classifies a MegaError so callers can decide whether a failure is
// fatal for the process, for one read, or for one inference call.
type Kind int

const (
	// KindConfig marks an invalid or incomplete model specification.
	KindConfig Kind = iota + 1
	// KindUnsupported marks a model shape this core refuses to run.
	KindUnsupported
	// KindIO marks a read container that could not be opened or decoded.
	KindIO
	// KindCompat marks a trained model lacking an expected entry point.
	KindCompat
	// KindResource marks device resource exhaustion during inference.
	KindResource
	// KindInternal marks a broken internal invariant.
	KindInternal
	// KindDependency marks a runtime that was not built into this binary.
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration"
	case KindUnsupported:
		return "unsupported model configuration"
	case KindIO:
		return "io"
	case KindCompat:
		return "compatibility"
	case KindResource:
		return "resource"
	case KindInternal:
		return "internal"
	case KindDependency:
		return "dependency unavailable"
	default:
		return "unknown"
	}
}

// MegaError carries a human readable classification message and the
// underlying cause, if any.
type MegaError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *MegaError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *MegaError) Unwrap() error { return e.Err }

// New constructs a MegaError without a cause.
func New(kind Kind, msg string) error { return &MegaError{Kind: kind, Msg: msg} }

// Wrap constructs a MegaError that keeps err reachable through errors.Is/As.
func Wrap(kind Kind, msg string, err error) error {
	return &MegaError{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first MegaError in err's chain, or 0.
func KindOf(err error) Kind {
	var me *MegaError
	if errors.As(err, &me) {
		return me.Kind
	}
	return 0
}

// Message returns the classification message of the first MegaError in
// err's chain, or err.Error() for foreign errors.
func Message(err error) string {
	var me *MegaError
	if errors.As(err, &me) {
		return me.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsKind reports whether err is a MegaError of the given kind.
func IsKind(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

// IsConfig reports whether err indicates an invalid model specification.
func IsConfig(err error) bool { return IsKind(err, KindConfig) }

// IsUnsupported reports whether err indicates an unsupported model shape.
func IsUnsupported(err error) bool { return IsKind(err, KindUnsupported) }

// IsIO reports whether err indicates a read container failure.
func IsIO(err error) bool { return IsKind(err, KindIO) }

// IsDependencyUnavailable reports whether err indicates a runtime missing
// from this build.
func IsDependencyUnavailable(err error) bool { return IsKind(err, KindDependency) }
