// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestNewIcon(t *testing.T) {
	_, err := NewIcon(make([]byte, 15), 2, 2)
	assert.ErrorIs(t, err, ErrInvalidIcon)
	_, err = NewIcon(nil, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidIcon)

	pix := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 0, 0, 0, 0,
	}
	icon, err := NewIcon(pix, 2, 2)
	require.NoError(t, err)
	w, h := icon.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, pix, icon.RGBA())
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(2, 1, color.RGBA{B: 255, A: 255})
	return img
}

func TestDecodeIcon(t *testing.T) {
	encoders := map[string]func(buf *bytes.Buffer, img image.Image) error{
		"png": func(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) },
		"bmp": func(buf *bytes.Buffer, img image.Image) error { return bmp.Encode(buf, img) },
	}
	for name, enc := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, enc(&buf, testImage()))
			icon, err := DecodeIcon(&buf)
			require.NoError(t, err)
			w, h := icon.Size()
			assert.Equal(t, 3, w)
			assert.Equal(t, 2, h)
			pix := icon.RGBA()
			assert.Equal(t, []byte{255, 0, 0, 255}, pix[:4])
			assert.Equal(t, []byte{0, 0, 255, 255}, pix[len(pix)-4:])
		})
	}
	_, err := DecodeIcon(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, ErrInvalidIcon)
}

func TestLoadIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	icon, err := LoadIcon(path)
	require.NoError(t, err)
	w, _ := icon.Size()
	assert.Equal(t, 3, w)

	_, err = LoadIcon(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWindowIcon(t *testing.T) {
	l, d := newTestLoop(t)
	icon, err := NewIcon(make([]byte, 16*16*4), 16, 16)
	require.NoError(t, err)
	w, err := l.App().NewWindow(WindowIcon(icon))
	require.NoError(t, err)
	st, _ := d.State(w.ID())
	require.NotNil(t, st.Icon)
	assert.Equal(t, 16, st.Icon.Bounds().Dx())
	w.SetWindowIcon(nil)
	st, _ = d.State(w.ID())
	assert.Nil(t, st.Icon)
}
