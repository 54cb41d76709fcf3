package converter

import (
	"errors"
	"fmt"
)

var (
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrOutputUnavailable    = errors.New("output directory cannot be created")
	ErrNoCandidates         = errors.New("no BMP files found")
	ErrAlreadyRunning       = errors.New("a conversion is already running")
	ErrNoDirectory          = errors.New("no directory selected")
)

// JobError is a job-level failure. errors.Is matches both Kind and Cause,
// so callers can ask for ErrDirectoryUnavailable or fs.ErrPermission alike.
type JobError struct {
	Op    string
	Path  string
	Kind  error
	Cause error
}

func (e *JobError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

func (e *JobError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func jobError(op, path string, kind, cause error) error {
	return &JobError{Op: op, Path: path, Kind: kind, Cause: cause}
}
