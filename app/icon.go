// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Icon is a window icon in 8-bit non-premultiplied RGBA.
type Icon struct {
	img *image.NRGBA
}

// NewIcon creates an icon from rows of RGBA pixels. The length of rgba
// must be w*h*4.
func NewIcon(rgba []byte, w, h int) (*Icon, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidIcon, w, h)
	}
	if len(rgba) != w*h*4 {
		return nil, fmt.Errorf("%w: %d bytes of pixel data for a %dx%d icon", ErrInvalidIcon, len(rgba), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, rgba)
	return &Icon{img: img}, nil
}

// DecodeIcon decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func DecodeIcon(r io.Reader) (*Icon, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIcon, err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidIcon)
	}
	if img, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return &Icon{img: img}, nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	return &Icon{img: img}, nil
}

// LoadIcon decodes the image file at path.
func LoadIcon(path string) (*Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("app: load icon: %w", err)
	}
	defer f.Close()
	return DecodeIcon(f)
}

// Size returns the width and height of the icon.
func (i *Icon) Size() (int, int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// RGBA returns a copy of the pixel data.
func (i *Icon) RGBA() []byte {
	return append([]byte(nil), i.img.Pix...)
}

func (i *Icon) image() *image.NRGBA {
	if i == nil {
		return nil
	}
	return i.img
}
