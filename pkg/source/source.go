// Package source resolves and probes input images.
//
// Inputs come in three shapes: a directory (every supported image in
// it, non-recursive), a single file, or a comma-separated list of
// files. Resolution produces an ordered slice of paths; probing reads
// one file and extracts its intrinsic properties (pixel dimensions and
// EXIF orientation) without a full decode.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pagebind/pagebind/pkg/errors"
)

// supportedExts are the image extensions picked up from directories,
// lowercase with the leading dot.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".webp": true,
}

// Supported reports whether a path has a recognized image extension.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// Resolve expands an input argument into an ordered list of image
// paths. A directory yields its supported images; anything else is
// treated as a comma-separated list of files, each of which must
// exist. When sorted is true, directory listings are ordered by name;
// explicit lists always keep their given order.
func Resolve(input string, sorted bool) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New(errors.ErrCodeSourceEmpty, "no input given")
	}

	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return resolveDir(input, sorted)
	}

	var paths []string
	for _, p := range strings.Split(input, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "input file %s", p)
		}
		if info.IsDir() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "directory %s cannot appear in a file list", p)
		}
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeSourceEmpty, "no input files in %q", input)
	}
	return paths, nil
}

func resolveDir(dir string, sorted bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "reading directory %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeSourceEmpty, "no supported images in %s", dir)
	}
	if sorted {
		sort.Strings(paths)
	}
	return paths, nil
}
