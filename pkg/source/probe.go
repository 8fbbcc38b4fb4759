package source

import (
	"bytes"
	"image"
	"os"

	// Register the decoders for every supported extension.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
)

// Probe extracts the intrinsic properties of one image from its raw
// bytes: pixel dimensions from the format header and the EXIF
// orientation tag, if any. It never decodes the pixel data.
func Probe(path string, data []byte) (layout.Intrinsics, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return layout.Intrinsics{}, errors.Wrap(errors.ErrCodeSourceDecode, err, "probing %s", path)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return layout.Intrinsics{}, errors.New(errors.ErrCodeSourceDecode,
			"%s reports non-positive dimensions %dx%d", path, cfg.Width, cfg.Height)
	}
	return layout.Intrinsics{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Orientation: Orientation(data),
	}, nil
}

// Decode decodes the full pixel data of one image and reports the
// registered format name ("jpeg", "png", ...).
func Decode(path string, data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeSourceDecode, err, "decoding %s", path)
	}
	return img, format, nil
}

// ReadFile loads an image file, mapping filesystem errors onto the
// source error codes.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeSourceNotFound, err, "reading %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeSourceDecode, err, "reading %s", path)
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeSourceDecode, "%s is empty", path)
	}
	return data, nil
}
