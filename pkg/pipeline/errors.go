package pipeline

import "github.com/pkg/errors"

var (
	ErrNegativeIndex   = errors.New("index must be >= 0")
	ErrPipelineNotSet  = errors.New("pipeline is not set")
	ErrWindowIndex     = errors.New("window index out of range")
	ErrStageIndex      = errors.New("stage index out of range")
	ErrNoWindows       = errors.New("pipeline needs at least one window")
	ErrWindowMustBeSet = errors.New("window must be set")
)

// StageError is the error recorded by a stage during the last run.
type StageError struct {
	Window string
	Stage  string
	// WindowIndex is -1 for a window without a pipeline.
	WindowIndex int
	Index       int
	Err         error
}

func (se *StageError) Error() string {
	return se.Window + " / " + se.Stage + ": " + se.Err.Error()
}

func (se *StageError) Unwrap() error { return se.Err }
