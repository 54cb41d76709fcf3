package tui

import (
	"errors"
	"io/fs"

	"keyout/internal/converter"
)

// StatusLine turns an engine error into the short message shown to the user.
func StatusLine(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, converter.ErrNoDirectory):
		return "No directory selected"
	case errors.Is(err, converter.ErrAlreadyRunning):
		return "A conversion is already running"
	case errors.Is(err, converter.ErrNoCandidates):
		return "No BMP files found in the selected directory"
	case errors.Is(err, converter.ErrOutputUnavailable):
		return "Output folder could not be created"
	case errors.Is(err, converter.ErrDirectoryUnavailable):
		switch {
		case errors.Is(err, fs.ErrPermission):
			return "Access denied to directory"
		case errors.Is(err, fs.ErrNotExist):
			return "Directory not found"
		case errors.Is(err, converter.ErrNotDirectory):
			return "Path is not a directory"
		}
		return "Directory could not be read"
	default:
		return "Error during conversion"
	}
}
