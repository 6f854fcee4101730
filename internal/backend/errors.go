package backend

// exhaustedError signals that the shared context ran out of room for the
// current active set. Recoverable: the scheduler evicts and retries.
type exhaustedError struct{ msg string }

func (e exhaustedError) Error() string { return "backend exhausted: " + e.msg }

// ErrExhausted constructs an exhaustion error.
func ErrExhausted(msg string) error { return exhaustedError{msg: msg} }

// IsExhausted reports whether err indicates recoverable capacity pressure.
func IsExhausted(err error) bool {
	_, ok := err.(exhaustedError)
	return ok
}

// dependencyUnavailableError signals a missing runtime dependency (e.g. a
// binary built without llama support).
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
