// Package raster provides a dense, single-owner pixel buffer.
//
// Samples are stored row-major and interleaved: the channels of pixel (x, y)
// start at index (y*width+x)*channels.
package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/cocosip/go-superpixel/pixel"
)

// Image is a width x height grid of pixel values sharing one channel count.
type Image[T pixel.Channel] struct {
	width    int
	height   int
	channels int
	pix      []T
}

// New creates a zero-filled image.
func New[T pixel.Channel](width, height, channels int) (*Image[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, pixel.ErrInvalidDimension)
	}
	if channels <= 0 || channels > pixel.MaxChannels {
		return nil, fmt.Errorf("%d channels: %w", channels, pixel.ErrInvalidChannelCount)
	}
	if width > math.MaxInt/height/channels {
		return nil, fmt.Errorf("%dx%dx%d samples overflow: %w", width, height, channels, pixel.ErrInvalidDimension)
	}
	return &Image[T]{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]T, width*height*channels),
	}, nil
}

// FromSamples wraps interleaved samples. The slice is copied.
func FromSamples[T pixel.Channel](width, height, channels int, samples []T) (*Image[T], error) {
	img, err := New[T](width, height, channels)
	if err != nil {
		return nil, err
	}
	if len(samples) != len(img.pix) {
		return nil, fmt.Errorf("got %d samples, want %d: %w", len(samples), len(img.pix), pixel.ErrDimensionMismatch)
	}
	copy(img.pix, samples)
	return img, nil
}

func (m *Image[T]) Width() int    { return m.width }
func (m *Image[T]) Height() int   { return m.height }
func (m *Image[T]) Channels() int { return m.channels }

// Bounds returns the image rectangle anchored at the origin.
func (m *Image[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Samples exposes the interleaved sample buffer. Callers must not resize it.
func (m *Image[T]) Samples() []T {
	return m.pix
}

func (m *Image[T]) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Image[T]) offset(x, y int) int {
	return (y*m.width + x) * m.channels
}

// Get returns the pixel at (x, y).
func (m *Image[T]) Get(x, y int) (pixel.Value[T], error) {
	if !m.inBounds(x, y) {
		return pixel.Value[T]{}, fmt.Errorf("get (%d,%d) in %dx%d: %w", x, y, m.width, m.height, pixel.ErrOutOfBounds)
	}
	return m.at(x, y), nil
}

// at reads a pixel the caller already bounds checked.
func (m *Image[T]) at(x, y int) pixel.Value[T] {
	off := m.offset(x, y)
	v, _ := pixel.New(m.pix[off : off+m.channels]...)
	return v
}

// Set overwrites the pixel at (x, y).
func (m *Image[T]) Set(x, y int, v pixel.Value[T]) error {
	if !m.inBounds(x, y) {
		return fmt.Errorf("set (%d,%d) in %dx%d: %w", x, y, m.width, m.height, pixel.ErrOutOfBounds)
	}
	if v.Len() != m.channels {
		return fmt.Errorf("set %d channels into %d-channel image: %w", v.Len(), m.channels, pixel.ErrChannelCountMismatch)
	}
	m.put(x, y, v)
	return nil
}

// put writes a pixel the caller already checked.
func (m *Image[T]) put(x, y int, v pixel.Value[T]) {
	off := m.offset(x, y)
	for c := 0; c < m.channels; c++ {
		m.pix[off+c] = v.At(c)
	}
}

// Fill sets every pixel to v.
func (m *Image[T]) Fill(v pixel.Value[T]) error {
	if v.Len() != m.channels {
		return fmt.Errorf("fill %d channels into %d-channel image: %w", v.Len(), m.channels, pixel.ErrChannelCountMismatch)
	}
	for off := 0; off < len(m.pix); off += m.channels {
		for c := 0; c < m.channels; c++ {
			m.pix[off+c] = v.At(c)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (m *Image[T]) Clone() *Image[T] {
	out := *m
	out.pix = make([]T, len(m.pix))
	copy(out.pix, m.pix)
	return &out
}

// Equal reports whether both images have the same shape and samples.
func (m *Image[T]) Equal(o *Image[T]) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.width != o.width || m.height != o.height || m.channels != o.channels {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
