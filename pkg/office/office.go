// Package office converts between office documents and PDF by
// shelling out to LibreOffice.
package office

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pagebind/pagebind/pkg/errors"
)

// ToPDF converts one office document (docx, odt, pptx, ...) to PDF and
// returns the path of the produced file, which lands in outDir under
// the source's basename.
func ToPDF(ctx context.Context, inPath, outDir string) (string, error) {
	return convert(ctx, inPath, outDir, "pdf", nil)
}

// ToDocx converts a PDF to DOCX through LibreOffice's PDF import
// filter. The result is an editable approximation; complex layouts
// degrade the way they do in Writer itself.
func ToDocx(ctx context.Context, inPath, outDir string) (string, error) {
	return convert(ctx, inPath, outDir, "docx", []string{"--infilter=writer_pdf_import"})
}

// convert runs soffice --headless --convert-to targetExt and returns
// the path of the produced file. Requires LibreOffice: apt install
// libreoffice (Linux), brew install --cask libreoffice (macOS).
func convert(ctx context.Context, inPath, outDir, targetExt string, extraArgs []string) (string, error) {
	if _, err := os.Stat(inPath); err != nil {
		return "", errors.Wrap(errors.ErrCodeSourceNotFound, err, "input document %s", inPath)
	}
	soffice, err := exec.LookPath("soffice")
	if err != nil {
		return "", errors.New(errors.ErrCodeUnsupported,
			"document conversion requires LibreOffice. Install with:\n  macOS:  brew install --cask libreoffice\n  Linux:  apt install libreoffice")
	}
	if outDir == "" {
		outDir = filepath.Dir(inPath)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	args := []string{"--headless"}
	args = append(args, extraArgs...)
	args = append(args, "--convert-to", targetExt, "--outdir", outDir, inPath)
	cmd := exec.CommandContext(ctx, soffice, args...)

	var errBuf bytes.Buffer
	cmd.Stdout = &errBuf
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "soffice: %s", strings.TrimSpace(errBuf.String()))
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	outPath := filepath.Join(outDir, base+"."+targetExt)
	if _, err := os.Stat(outPath); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "soffice reported success but %s is missing", outPath)
	}
	return outPath, nil
}
