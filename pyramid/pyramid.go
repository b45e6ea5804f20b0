// Package pyramid builds multi-resolution pyramids out of the 2x2 block
// transform and reconstructs images from them.
//
// Each level transforms a whole image and stores the four bands as
// quadrants (average top-left, vertical top-right, horizontal bottom-left,
// diagonal bottom-right). The next level transforms the average quadrant of
// the previous one, until the average plane is 1x1.
package pyramid

import (
	"fmt"

	"github.com/cocosip/go-superpixel/internal/logx"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// Pyramid is an ordered list of levels, finest first.
type Pyramid[T pixel.Channel] struct {
	levels   []*Level[T]
	residual *raster.Image[T]
}

// Assemble builds a pyramid from levels ordered finest first. Each level's
// source must be the average plane of the previous level. residual is only
// used for pyramids without levels, i.e. 1x1 images.
func Assemble[T pixel.Channel](levels []*Level[T], residual *raster.Image[T]) (*Pyramid[T], error) {
	if len(levels) == 0 {
		if residual == nil {
			return nil, fmt.Errorf("empty pyramid without residual: %w", pixel.ErrInvalidDimension)
		}
		return &Pyramid[T]{residual: residual.Clone()}, nil
	}
	for i := 1; i < len(levels); i++ {
		prev, cur := levels[i-1], levels[i]
		if cur.Channels() != prev.Channels() {
			return nil, fmt.Errorf("level %d has %d channels, level %d has %d: %w",
				i, cur.Channels(), i-1, prev.Channels(), pixel.ErrChannelCountMismatch)
		}
		if cur.sourceWidth != prev.Width()/2 || cur.sourceHeight != prev.Height()/2 {
			return nil, fmt.Errorf("level %d source %dx%d does not match level %d average %dx%d: %w",
				i, cur.sourceWidth, cur.sourceHeight, i-1, prev.Width()/2, prev.Height()/2, pixel.ErrDimensionMismatch)
		}
	}
	p := &Pyramid[T]{levels: append([]*Level[T](nil), levels...)}
	p.residual = p.levels[len(p.levels)-1].Average()
	return p, nil
}

// Len returns the number of levels.
func (p *Pyramid[T]) Len() int {
	return len(p.levels)
}

// Level returns level i, 0 being the finest.
func (p *Pyramid[T]) Level(i int) (*Level[T], error) {
	if i < 0 || i >= len(p.levels) {
		return nil, fmt.Errorf("level %d of %d: %w", i, len(p.levels), pixel.ErrOutOfBounds)
	}
	return p.levels[i], nil
}

// Levels returns the levels finest first.
func (p *Pyramid[T]) Levels() []*Level[T] {
	return append([]*Level[T](nil), p.levels...)
}

// Residual returns a copy of the coarsest average plane.
func (p *Pyramid[T]) Residual() *raster.Image[T] {
	return p.residual.Clone()
}

// Width returns the width of the original image.
func (p *Pyramid[T]) Width() int {
	if len(p.levels) == 0 {
		return p.residual.Width()
	}
	return p.levels[0].sourceWidth
}

// Height returns the height of the original image.
func (p *Pyramid[T]) Height() int {
	if len(p.levels) == 0 {
		return p.residual.Height()
	}
	return p.levels[0].sourceHeight
}

// Channels returns the channel count shared by every level.
func (p *Pyramid[T]) Channels() int {
	return p.residual.Channels()
}

// Build decomposes img level by level until the average plane is 1x1, the
// MaxLevels cap is reached, or, under EdgeReject, the next average plane has
// an odd size. An odd img under EdgeReject fails with pixel.ErrOddDimension.
// Levels depend on each other and are built sequentially.
func Build[T pixel.Channel](img *raster.Image[T], opts Options) (*Pyramid[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	var levels []*Level[T]
	cur := img
	for cur.Width() > 1 || cur.Height() > 1 {
		if opts.MaxLevels > 0 && len(levels) == opts.MaxLevels {
			break
		}
		odd := cur.Width()&1 != 0 || cur.Height()&1 != 0
		if odd && opts.Edge == EdgeReject && len(levels) > 0 {
			log.LogPrintf(logx.DEBUG, "stopping at odd average plane %dx%d", cur.Width(), cur.Height())
			break
		}
		lvl, err := DecomposeLevel(cur, opts)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", len(levels), err)
		}
		log.LogPrintf(logx.DEBUG, "level %d: %dx%d -> average %dx%d",
			len(levels), cur.Width(), cur.Height(), lvl.Width()/2, lvl.Height()/2)
		levels = append(levels, lvl)
		cur = lvl.Average()
	}

	if len(levels) == 0 {
		return &Pyramid[T]{residual: img.Clone()}, nil
	}
	return &Pyramid[T]{levels: levels, residual: cur}, nil
}

// Reconstruct walks the levels from coarsest to finest, placing each
// reconstructed image into the average quadrant of the next finer level
// before inverting it.
func Reconstruct[T pixel.Channel](p *Pyramid[T], opts Options) (*raster.Image[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(p.levels) == 0 {
		return p.residual.Clone(), nil
	}
	log := opts.logger()

	last := p.levels[len(p.levels)-1]
	img, err := reconstruct(last.coeffs, last.sourceWidth, last.sourceHeight, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", len(p.levels)-1, err)
	}
	for i := len(p.levels) - 2; i >= 0; i-- {
		lvl := p.levels[i]
		coeffs := lvl.coeffs.Clone()
		if err := coeffs.Paste(img, 0, 0); err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		if img, err = reconstruct(coeffs, lvl.sourceWidth, lvl.sourceHeight, opts.Workers); err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		log.LogPrintf(logx.DEBUG, "reconstructed level %d: %dx%d", i, img.Width(), img.Height())
	}
	return img, nil
}
