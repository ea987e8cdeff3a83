// Package ocr wraps optical character recognition behind a small interface
// so the extraction pipeline can degrade gracefully when no OCR engine is
// installed.
package ocr

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rotisserie/eris"

	"bidrank/internal"
)

// Recognizer turns a page image into plain text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Tesseract shells out to the tesseract binary, feeding the image on stdin
// and reading text from stdout. Availability is probed once at construction;
// callers consult Available instead of discovering a missing binary on every
// page.
type Tesseract struct {
	bin       string
	available bool
}

func NewTesseract(bin string) *Tesseract {
	if bin == "" {
		bin = "tesseract"
	}
	_, err := exec.LookPath(bin)
	return &Tesseract{bin: bin, available: err == nil}
}

func (t *Tesseract) Available() bool { return t.available }

func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if !t.available {
		return "", internal.ErrOCRUnavailable
	}

	cmd := exec.CommandContext(ctx, t.bin, "stdin", "stdout", "--psm", "6")
	cmd.Stdin = bytes.NewReader(image)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "tesseract: %s", stderr.String())
	}
	return out.String(), nil
}

// Nop is the recognizer used when OCR is disabled by configuration.
type Nop struct{}

func (Nop) Recognize(context.Context, []byte) (string, error) {
	return "", internal.ErrOCRUnavailable
}
