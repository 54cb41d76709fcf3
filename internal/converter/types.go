package converter

import (
	"image/png"
	"time"

	"github.com/google/uuid"

	"keyout/pkg/imgutil"
)

// Status classifies what happened to a single candidate file.
type Status int

const (
	StatusConverted Status = iota
	StatusSkippedInvalid
	StatusSkippedEmpty
	StatusSkippedUnreadable
	StatusFailedDuringDecode
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "Converted"
	case StatusSkippedInvalid:
		return "SkippedInvalid"
	case StatusSkippedEmpty:
		return "SkippedEmpty"
	case StatusSkippedUnreadable:
		return "SkippedUnreadable"
	case StatusFailedDuringDecode:
		return "FailedDuringDecode"
	default:
		return "Unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is the orchestrator's position in a run.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateConverting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateConverting:
		return "converting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options are the engine settings taken from configuration.
type Options struct {
	KeyColor     imgutil.RGB
	OutputFolder string
	Compression  png.CompressionLevel
}

// Job is one conversion run over a fixed snapshot of candidate files.
type Job struct {
	ID         uuid.UUID
	SourceDir  string
	OutputDir  string
	KeyColor   imgutil.RGB
	Candidates []string
}

// FileOutcome is the immutable result of processing one candidate.
type FileOutcome struct {
	Name            string `json:"name"`
	Status          Status `json:"status"`
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path,omitempty"`
	Detail          string `json:"detail,omitempty"`
	Size            int64  `json:"size"`
	Header          []byte `json:"-"`
	KeyedPixels     int    `json:"keyed_pixels,omitempty"`
	BytesWritten    int64  `json:"bytes_written,omitempty"`
}

// Report summarises a finished run.
type Report struct {
	JobID           uuid.UUID     `json:"job_id"`
	SourceDir       string        `json:"source_dir"`
	OutputDir       string        `json:"output_dir"`
	KeyColor        string        `json:"key_color"`
	TotalCandidates int           `json:"total_candidates"`
	Succeeded       int           `json:"succeeded"`
	Failed          []FileOutcome `json:"failed"`
	KeyedPixels     int           `json:"keyed_pixels"`
	BytesWritten    int64         `json:"bytes_written"`
	Cancelled       bool          `json:"cancelled,omitempty"`
	Remaining       int           `json:"remaining,omitempty"`
	Started         time.Time     `json:"started"`
	Finished        time.Time     `json:"finished"`
}

// WithErrors reports whether any candidate did not convert.
func (r Report) WithErrors() bool {
	return r.Succeeded < r.TotalCandidates
}

// Balanced checks that every candidate is accounted for exactly once.
func (r Report) Balanced() bool {
	return r.Succeeded+len(r.Failed)+r.Remaining == r.TotalCandidates
}

// Elapsed is the wall time of the run.
func (r Report) Elapsed() time.Duration {
	return r.Finished.Sub(r.Started)
}
