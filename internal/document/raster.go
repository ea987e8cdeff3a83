package document

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// Pdftoppm renders PDF pages to PNG through the poppler pdftoppm binary.
type Pdftoppm struct {
	bin string
	dpi int
}

func NewPdftoppm(bin string) *Pdftoppm {
	if bin == "" {
		bin = "pdftoppm"
	}
	return &Pdftoppm{bin: bin, dpi: 200}
}

// RenderPage shells out to pdftoppm for a single page and returns the PNG
// bytes. Output goes through a temp directory because pdftoppm only writes
// to files.
func (r *Pdftoppm) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	dir, err := os.MkdirTemp("", "bidrank-raster-")
	if err != nil {
		return nil, eris.Wrap(err, "raster temp dir")
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, r.bin,
		"-singlefile",
		"-f", fmt.Sprint(page),
		"-l", fmt.Sprint(page),
		"-r", fmt.Sprint(r.dpi),
		"-png", path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, eris.Wrapf(err, "pdftoppm page %d of %s: %s", page, path, out)
	}

	blob, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, eris.Wrapf(err, "read rendered page %d of %s", page, path)
	}
	return blob, nil
}
