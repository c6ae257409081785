package museum

import (
	"context"
	"fmt"
	"strings"

	"github.com/psylabs/art-finder/pkg/models"
)

// LogFunc is a sink for structured (level, message) log events emitted
// during a search. Logging is best-effort observability only: a nil sink
// must not change adapter behavior.
type LogFunc func(level, message string)

// Log levels passed to LogFunc.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Adapter is implemented by each museum API client. An adapter knows how to
// query one museum, normalize its records into models.Artwork and apply the
// filters the museum's API cannot apply server-side.
//
// Search never returns an error: every failure is captured in the result's
// Errors list so callers always get a structured outcome.
type Adapter interface {
	Name() string // full display name
	Code() string // short identifier, e.g. "CMA"
	Search(ctx context.Context, filters models.SearchFilters) models.AdapterResult
	Departments() []string
	SetLogger(fn LogFunc)
}

// base carries the logging plumbing shared by all adapters.
type base struct {
	name string
	code string
	log  LogFunc
}

func (b *base) Name() string { return b.name }
func (b *base) Code() string { return b.code }

func (b *base) SetLogger(fn LogFunc) { b.log = fn }

func (b *base) logf(level, format string, args ...any) {
	if b.log == nil {
		return
	}
	b.log(level, "["+b.code+"] "+fmt.Sprintf(format, args...))
}

func (b *base) infof(format string, args ...any)  { b.logf(LevelInfo, format, args...) }
func (b *base) warnf(format string, args ...any)  { b.logf(LevelWarn, format, args...) }
func (b *base) errorf(format string, args ...any) { b.logf(LevelError, format, args...) }

// matchesOrientation reports whether image dimensions satisfy the requested
// orientation. Unknown dimensions pass unfiltered (fail-open): probing each
// image for its real size would cost an extra round-trip per record, which
// is outside the one-bounded-request budget. Square images count as
// landscape.
func matchesOrientation(width, height *int, orientation string) bool {
	if width == nil || height == nil {
		return true
	}
	isPortrait := *height > *width
	switch orientation {
	case models.OrientationPortrait:
		return isPortrait
	case models.OrientationLandscape:
		return !isPortrait
	}
	return true
}

// matchesResolution reports whether image dimensions meet the minimum
// resolution. Unknown dimensions pass unfiltered, same rationale as
// matchesOrientation.
func matchesResolution(width, height *int, minWidth, minHeight int) bool {
	if minWidth > 0 && width != nil && *width < minWidth {
		return false
	}
	if minHeight > 0 && height != nil && *height < minHeight {
		return false
	}
	return true
}

// maxFilenameBase caps the title-derived part of a filename before the id
// suffix is appended.
const maxFilenameBase = 100

// makeFilename derives a collision-resistant download filename from the
// artwork title, its museum-local id and the museum code. Characters that
// are invalid in common filesystems are stripped and whitespace collapsed.
func makeFilename(title, id, code string) string {
	filenameBase := code + "-" + title

	filenameBase = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		return r
	}, filenameBase)

	filenameBase = strings.Join(strings.Fields(filenameBase), " ")

	if runes := []rune(filenameBase); len(runes) > maxFilenameBase {
		filenameBase = strings.TrimSpace(string(runes[:maxFilenameBase]))
	}

	return filenameBase + "-" + id + ".jpg"
}

func intPtr(v int) *int { return &v }
