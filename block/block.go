// Package block implements the 2x2 superpixel transform.
//
// A block of four pixels
//
//	TL TR
//	BL BR
//
// is decomposed per channel into
//
//	average    = floor((TL + TR + BL + BR) / 4)
//	vertical   = -TL - TR + BL + BR
//	horizontal = -TL + TR - BL + BR
//	diagonal   =  TL - TR - BL + BR
//
// Integer channels are widened to int32 for the arithmetic and the results are
// stored back in the input type, clamped to its range. Float channels are
// computed in float64. Inverse recovers the block exactly for float channels
// (up to float32 rounding) and for integer blocks whose coefficients did not
// need clamping.
package block

import (
	"fmt"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// Block holds the four pixels of a 2x2 superpixel.
type Block[T pixel.Channel] struct {
	TL, TR, BL, BR pixel.Value[T]
}

// Coefficients holds the result of a forward transform, one value per band,
// each with the channel count of the block.
type Coefficients[T pixel.Channel] struct {
	Average    pixel.Value[T]
	Vertical   pixel.Value[T]
	Horizontal pixel.Value[T]
	Diagonal   pixel.Value[T]
}

// Channels returns the shared channel count of the block.
func (b Block[T]) Channels() (int, error) {
	return sameLen(b.TL, b.TR, b.BL, b.BR)
}

// Channels returns the shared channel count of the coefficients.
func (c Coefficients[T]) Channels() (int, error) {
	return sameLen(c.Average, c.Vertical, c.Horizontal, c.Diagonal)
}

func sameLen[T pixel.Channel](a, b, c, d pixel.Value[T]) (int, error) {
	n := a.Len()
	if b.Len() != n || c.Len() != n || d.Len() != n {
		return 0, fmt.Errorf("%d/%d/%d/%d channels: %w", n, b.Len(), c.Len(), d.Len(), pixel.ErrChannelCountMismatch)
	}
	return n, nil
}

// At reads the block whose top-left pixel is (x, y). Both coordinates must
// be even and the block must lie inside img.
func At[T pixel.Channel](img *raster.Image[T], x, y int) (Block[T], error) {
	if x&1 != 0 || y&1 != 0 {
		return Block[T]{}, fmt.Errorf("anchor (%d,%d): %w", x, y, pixel.ErrOddAnchor)
	}
	var b Block[T]
	var err error
	if b.TL, err = img.Get(x, y); err != nil {
		return Block[T]{}, err
	}
	if b.TR, err = img.Get(x+1, y); err != nil {
		return Block[T]{}, err
	}
	if b.BL, err = img.Get(x, y+1); err != nil {
		return Block[T]{}, err
	}
	if b.BR, err = img.Get(x+1, y+1); err != nil {
		return Block[T]{}, err
	}
	return b, nil
}

// Store writes the block back with its top-left pixel at (x, y).
func (b Block[T]) Store(img *raster.Image[T], x, y int) error {
	if x&1 != 0 || y&1 != 0 {
		return fmt.Errorf("anchor (%d,%d): %w", x, y, pixel.ErrOddAnchor)
	}
	if err := img.Set(x, y, b.TL); err != nil {
		return err
	}
	if err := img.Set(x+1, y, b.TR); err != nil {
		return err
	}
	if err := img.Set(x, y+1, b.BL); err != nil {
		return err
	}
	return img.Set(x+1, y+1, b.BR)
}
