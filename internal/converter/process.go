package converter

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"keyout/pkg/imgutil"
)

// MinBMPSize is a 14-byte file header plus a 40-byte info header.
const MinBMPSize = 54

func (e *Engine) processFile(job *Job, name string) (outcome FileOutcome) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outcome = FileOutcome{
		Name:            name,
		SourcePath:      filepath.Join(job.SourceDir, name),
		DestinationPath: filepath.Join(job.OutputDir, stem+".png"),
		Size:            -1,
	}

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = StatusFailedDuringDecode
			outcome.Detail = fmt.Sprintf("unexpected error: %v", r)
			outcome.KeyedPixels = 0
			outcome.BytesWritten = 0
		}
	}()

	return e.convertFile(outcome, job.KeyColor)
}

// convertFile runs the validation checks in order and stops at the first
// one that fails. Only the decoded image of this one file is held.
func (e *Engine) convertFile(o FileOutcome, key imgutil.RGB) FileOutcome {
	info, err := e.fs.Stat(o.SourcePath)
	if err != nil {
		return reject(o, StatusSkippedUnreadable, fmt.Sprintf("input file is not accessible: %v", err))
	}
	if !info.Mode().IsRegular() {
		return reject(o, StatusSkippedUnreadable, "input is not a regular file")
	}
	o.Size = info.Size()
	if o.Size == 0 {
		return reject(o, StatusSkippedEmpty, "file is empty (0 bytes)")
	}

	header, err := e.fs.ReadHeader(o.SourcePath, imgutil.HeaderSize)
	if err != nil {
		return reject(o, StatusSkippedUnreadable, fmt.Sprintf("cannot read file: %v", err))
	}
	o.Header = header
	kind, err := imgutil.DetectHeader(header)
	if err != nil || kind != imgutil.KindBMP {
		return reject(o, StatusSkippedInvalid, invalidHeaderDetail(header, kind))
	}

	data, err := e.fs.ReadFile(o.SourcePath)
	if err != nil {
		return reject(o, StatusSkippedUnreadable, fmt.Sprintf("cannot read file: %v", err))
	}
	img, err := e.codec.Decode(data)
	if err != nil {
		return reject(o, StatusFailedDuringDecode, err.Error())
	}
	pixels := e.codec.Normalize(img)
	o.KeyedPixels = ApplyKey(pixels, key)

	var buf bytes.Buffer
	if err := e.codec.EncodePNG(&buf, pixels); err != nil {
		return reject(o, StatusFailedDuringDecode, fmt.Sprintf("encode png: %v", err))
	}
	if err := e.fs.WriteFile(o.DestinationPath, buf.Bytes()); err != nil {
		return reject(o, StatusFailedDuringDecode, fmt.Sprintf("write output: %v", err))
	}

	o.BytesWritten = int64(buf.Len())
	o.Status = StatusConverted
	return o
}

func reject(o FileOutcome, status Status, detail string) FileOutcome {
	o.Status = status
	o.Detail = detail
	o.KeyedPixels = 0
	return o
}

func invalidHeaderDetail(header []byte, kind imgutil.Kind) string {
	detail := fmt.Sprintf("not a valid BMP file (header % x)", header)
	if kind != imgutil.KindUnknown {
		detail += fmt.Sprintf(", looks like %s", kind)
	}
	return detail
}

func sizeHint(size int64) string {
	switch {
	case size < 0:
		return "could not get file size"
	case size == 0:
		return "file is empty and cannot be processed"
	case size < MinBMPSize:
		return "file is too small to be a valid BMP"
	default:
		return ""
	}
}

func logOutcome(log *slog.Logger, o FileOutcome) {
	attrs := []any{
		"file", o.SourcePath,
		"status", o.Status.String(),
		"detail", o.Detail,
		"size", o.Size,
	}
	if len(o.Header) > 0 {
		attrs = append(attrs, "header", fmt.Sprintf("% x", o.Header))
	}
	if hint := sizeHint(o.Size); hint != "" {
		attrs = append(attrs, "hint", hint)
	}
	log.Warn("converter.file.skipped", attrs...)
}
