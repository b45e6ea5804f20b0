package raster

import (
	"fmt"

	"github.com/cocosip/go-superpixel/pixel"
)

// Crop copies the w x h rectangle anchored at (x, y) into a new image.
func (m *Image[T]) Crop(x, y, w, h int) (*Image[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("crop %dx%d: %w", w, h, pixel.ErrInvalidDimension)
	}
	if !m.inBounds(x, y) || !m.inBounds(x+w-1, y+h-1) {
		return nil, fmt.Errorf("crop %dx%d at (%d,%d) in %dx%d: %w", w, h, x, y, m.width, m.height, pixel.ErrOutOfBounds)
	}
	out, err := New[T](w, h, m.channels)
	if err != nil {
		return nil, err
	}
	rowLen := w * m.channels
	for row := 0; row < h; row++ {
		src := m.offset(x, y+row)
		copy(out.pix[row*rowLen:(row+1)*rowLen], m.pix[src:src+rowLen])
	}
	return out, nil
}

// Paste copies src into m with its top-left corner at (x, y).
func (m *Image[T]) Paste(src *Image[T], x, y int) error {
	if src.channels != m.channels {
		return fmt.Errorf("paste %d channels into %d: %w", src.channels, m.channels, pixel.ErrChannelCountMismatch)
	}
	if !m.inBounds(x, y) || !m.inBounds(x+src.width-1, y+src.height-1) {
		return fmt.Errorf("paste %dx%d at (%d,%d) in %dx%d: %w", src.width, src.height, x, y, m.width, m.height, pixel.ErrOutOfBounds)
	}
	rowLen := src.width * m.channels
	for row := 0; row < src.height; row++ {
		dst := m.offset(x, y+row)
		copy(m.pix[dst:dst+rowLen], src.pix[row*rowLen:(row+1)*rowLen])
	}
	return nil
}

// Pad returns a w x h copy of m, filling the new columns and rows by
// replicating the last column and row. w and h must not be smaller than m.
func (m *Image[T]) Pad(w, h int) (*Image[T], error) {
	if w < m.width || h < m.height {
		return nil, fmt.Errorf("pad %dx%d to %dx%d: %w", m.width, m.height, w, h, pixel.ErrDimensionMismatch)
	}
	if w == m.width && h == m.height {
		return m.Clone(), nil
	}
	out, err := New[T](w, h, m.channels)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		sy := min(y, m.height-1)
		for x := 0; x < w; x++ {
			sx := min(x, m.width-1)
			src := m.offset(sx, sy)
			dst := out.offset(x, y)
			copy(out.pix[dst:dst+m.channels], m.pix[src:src+m.channels])
		}
	}
	return out, nil
}
