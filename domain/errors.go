package domain

// Error taxonomy of the application. All errors are caught at the
// controller boundary and converted to a single user-visible message;
// none propagate to a crash.

// ValidationError signals bad user input, caught before any I/O.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError with a user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// GenerationError signals that the generative backend call failed or
// returned a payload that does not conform to the requested schema.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError wraps an upstream failure with a user-facing message.
func NewGenerationError(message string, err error) *GenerationError {
	return &GenerationError{Message: message, Err: err}
}

// PersistenceError signals a failed local write. The in-memory state is
// kept: persistence is best-effort and a failed write must not corrupt the
// running session, only risk losing it on reload.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return "não foi possível salvar os dados de '" + e.Key + "'"
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// LookupErrorKind distinguishes the two user-relevant registry failures.
type LookupErrorKind int

const (
	// LookupNotFound means the registry answered but knows no such record.
	LookupNotFound LookupErrorKind = iota
	// LookupUnreachable means the registry could not be reached at all.
	LookupUnreachable
)

// LookupError signals a failed registry collaborator call.
type LookupError struct {
	Kind    LookupErrorKind
	Message string
	Err     error
}

func (e *LookupError) Error() string { return e.Message }

func (e *LookupError) Unwrap() error { return e.Err }
