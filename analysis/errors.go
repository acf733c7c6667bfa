package analysis

import (
	"errors"
	"fmt"
)

// Stage names reported in a StageError.
const (
	StageInput    = "input"
	StagePrepare  = "prepare"
	StageBaseline = "baseline"
	StageEcho     = "echo"
	StageSEFit    = "se-fit"
	StageFIDFit   = "fid-fit"
	StageBuild    = "build"
	StageDensity  = "density"
)

// Errors returned while collecting inputs.
var (
	ErrMissingRole   = errors.New("analysis: required signal missing")
	ErrDuplicateRole = errors.New("analysis: signal role given more than once")
)

// StageError reports the pipeline stage and input that failed.
type StageError struct {
	Stage string
	Input string
	Err   error
}

func (e *StageError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("analysis: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("analysis: %s %s: %v", e.Stage, e.Input, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageError(stage, input string, err error) error {
	return &StageError{Stage: stage, Input: input, Err: err}
}
