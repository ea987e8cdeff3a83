package internal

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrDocumentUnreadable means the conversion layer could not open the
// document at all. Fatal for that document, never for a batch.
var ErrDocumentUnreadable = eris.New("document unreadable")

// ErrOCRUnavailable means no OCR collaborator is installed or it failed.
// Always soft; the OCR tier yields no data and the pipeline moves on.
var ErrOCRUnavailable = eris.New("ocr unavailable")

// CoercionError reports a matched capture that could not be converted to
// the field's declared type. The match is discarded and the cascade
// continues with the next pattern.
type CoercionError struct {
	Field Field
	Raw   string
	Cause error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coerce %s from %q: %v", e.Field, e.Raw, e.Cause)
}

func (e *CoercionError) Unwrap() error { return e.Cause }

// PreprocessingError reports required fields that are unusable across an
// entire batch. Fatal for that batch call.
type PreprocessingError struct {
	Missing []Field
}

func (e *PreprocessingError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		names = append(names, string(f))
	}
	return "preprocessing: required fields unusable across batch: " + strings.Join(names, ", ")
}
