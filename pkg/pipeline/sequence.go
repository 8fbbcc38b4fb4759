package pipeline

import (
	"context"
	"image"

	"github.com/disintegration/imaging"

	"github.com/pagebind/pagebind/pkg/errors"
	"github.com/pagebind/pagebind/pkg/layout"
	"github.com/pagebind/pagebind/pkg/render"
	"github.com/pagebind/pagebind/pkg/source"
)

// Each walks a page plan in order, loading and orienting one image at
// a time and handing it to fn. At most one decoded image is alive at
// once, which is what keeps the streaming backend's memory bounded.
func Each(ctx context.Context, entries []layout.Entry, fn func(layout.Entry, *render.Image) error) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := LoadImage(entry)
		if err != nil {
			return err
		}
		if err := fn(entry, img); err != nil {
			return err
		}
	}
	return nil
}

// LoadImage reads and decodes one planned image, applying its net
// rotation so the pixels match the placement rectangle.
func LoadImage(entry layout.Entry) (*render.Image, error) {
	data, err := source.ReadFile(entry.Source)
	if err != nil {
		return nil, err
	}
	pixels, format, err := source.Decode(entry.Source, data)
	if err != nil {
		return nil, err
	}
	pixels, err = rotate(pixels, entry.RotationDeg)
	if err != nil {
		return nil, err
	}
	return &render.Image{Raw: data, Format: format, Pixels: pixels}, nil
}

// rotate applies a counter-clockwise rotation in whole quarter turns.
func rotate(img image.Image, deg int) (image.Image, error) {
	switch deg {
	case 0:
		return img, nil
	case 90:
		return imaging.Rotate90(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate270(img), nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "rotation %d is not a quarter turn", deg)
}
