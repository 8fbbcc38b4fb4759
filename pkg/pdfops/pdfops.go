// Package pdfops wraps the post-processing operations on finished
// PDFs: merging documents and removing password protection.
package pdfops

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pagebind/pagebind/pkg/errors"
)

// Merge concatenates the given PDF files into one document at outPath,
// in argument order.
func Merge(inputs []string, outPath string) error {
	if len(inputs) == 0 {
		return errors.New(errors.ErrCodeSourceEmpty, "no documents to merge")
	}
	for _, path := range inputs {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(errors.ErrCodeSourceNotFound, err, "input document %s", path)
		}
	}

	conf := model.NewDefaultConfiguration()
	if err := api.MergeCreateFile(inputs, outPath, false, conf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "merging %d documents", len(inputs))
	}
	return nil
}

// Unlock removes encryption from a password-protected PDF, writing the
// decrypted document to outPath. An empty outPath decrypts in place.
func Unlock(inPath, outPath, password string) error {
	if _, err := os.Stat(inPath); err != nil {
		return errors.Wrap(errors.ErrCodeSourceNotFound, err, "input document %s", inPath)
	}
	if outPath == "" {
		outPath = inPath
	}

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	if err := api.DecryptFile(inPath, outPath, conf); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decrypting %s", inPath)
	}
	return nil
}
