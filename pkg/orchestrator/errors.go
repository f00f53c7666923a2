package orchestrator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Stage names the pipeline step a SectionError came from.
type Stage string

const (
	StageFetch  Stage = "fetch"
	StageRender Stage = "render"
	StageMount  Stage = "mount"
)

// SectionError records a failure confined to one section.
type SectionError struct {
	Section sheet.SectionID
	Stage   Stage
	Err     error
}

func (e *SectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("orchestrator: %s section %q: %v", e.Stage, e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Result is the outcome of a Generate call.
type Result struct {
	// HTML is the serialized page.
	HTML []byte
	// Failures lists sections left unrendered, in pipeline order.
	Failures []*SectionError
	// Rendered lists the sections mounted into the page.
	Rendered []sheet.SectionID
}

// Err joins every recorded failure, or returns nil.
func (r *Result) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, failure)
	}
	return errors.Join(errs...)
}

// Failed reports whether id was recorded as failed.
func (r *Result) Failed(id sheet.SectionID) bool {
	if r == nil {
		return false
	}
	for _, failure := range r.Failures {
		if failure.Section == id {
			return true
		}
	}
	return false
}
