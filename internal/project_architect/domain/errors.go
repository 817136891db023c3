package domain

import "errors"

const (
	GenerationFailedMessage = "Failed to architect your project. Please try again."
	AnalysisFailedMessage   = "Failed to analyze image"
)

var (
	ErrGenerationInFlight   = errors.New("a project generation is already in progress")
	ErrAnalysisInFlight     = errors.New("an image analysis is already in progress")
	ErrNoImage              = errors.New("no image selected")
	ErrSimulatorUnavailable = errors.New("hazard simulator is not available for the current project")
	ErrInvalidTab           = errors.New("invalid tab")
	ErrInvalidInput         = errors.New("invalid constraint input")
	ErrInvalidImage         = errors.New("invalid image payload")
	ErrSessionNotFound      = errors.New("session not found")
)

// GenerationError is the single failure value of a project generation.
// Message is safe to show; the cause is for logs only.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// NewGenerationError wraps cause with the fixed user-facing message.
func NewGenerationError(cause error) *GenerationError {
	return &GenerationError{Message: GenerationFailedMessage, Cause: cause}
}

// AnalysisError is the single failure value of a hazard analysis.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

func NewAnalysisError(cause error) *AnalysisError {
	return &AnalysisError{Message: AnalysisFailedMessage, Cause: cause}
}

// UserMessage turns any error into the text shown to the student.
func UserMessage(err error) string {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr.Message
	}
	var aerr *AnalysisError
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
