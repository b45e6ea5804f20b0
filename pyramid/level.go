package pyramid

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cocosip/go-superpixel/block"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// Level is one block transform pass over an image. Its coefficient image has
// even dimensions and holds the four bands as quadrants. A Level is not
// modified after it is built.
type Level[T pixel.Channel] struct {
	coeffs       *raster.Image[T]
	sourceWidth  int
	sourceHeight int
}

// NewLevel wraps a coefficient image produced for a source of the given size.
// The coefficient image must be the source size rounded up to even. The
// image is copied.
func NewLevel[T pixel.Channel](coeffs *raster.Image[T], sourceWidth, sourceHeight int) (*Level[T], error) {
	if sourceWidth <= 0 || sourceHeight <= 0 {
		return nil, fmt.Errorf("source %dx%d: %w", sourceWidth, sourceHeight, pixel.ErrInvalidDimension)
	}
	if coeffs.Width() != padded(sourceWidth) || coeffs.Height() != padded(sourceHeight) {
		return nil, fmt.Errorf("coefficients %dx%d for source %dx%d: %w",
			coeffs.Width(), coeffs.Height(), sourceWidth, sourceHeight, pixel.ErrDimensionMismatch)
	}
	return &Level[T]{coeffs: coeffs.Clone(), sourceWidth: sourceWidth, sourceHeight: sourceHeight}, nil
}

// Coefficients returns a copy of the full coefficient image.
func (l *Level[T]) Coefficients() *raster.Image[T] {
	return l.coeffs.Clone()
}

// Samples exposes the coefficient samples for serialization. Callers must
// not modify them.
func (l *Level[T]) Samples() []T {
	return l.coeffs.Samples()
}

func (l *Level[T]) Width() int        { return l.coeffs.Width() }
func (l *Level[T]) Height() int       { return l.coeffs.Height() }
func (l *Level[T]) Channels() int     { return l.coeffs.Channels() }
func (l *Level[T]) SourceWidth() int  { return l.sourceWidth }
func (l *Level[T]) SourceHeight() int { return l.sourceHeight }

// Band copies one quadrant out of the level.
func (l *Level[T]) Band(b Band) (*raster.Image[T], error) {
	w, h := l.coeffs.Width(), l.coeffs.Height()
	x, y := b.Origin(w, h)
	return l.coeffs.Crop(x, y, w/2, h/2)
}

// Average copies the average quadrant, the input of the next level.
func (l *Level[T]) Average() *raster.Image[T] {
	avg, _ := l.Band(Average)
	return avg
}

// DecomposeLevel applies the block transform to every 2x2 block of img in
// raster order and lays the four results out as quadrants of an image of the
// same size.
func DecomposeLevel[T pixel.Channel](img *raster.Image[T], opts Options) (*Level[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src := img
	if img.Width()&1 != 0 || img.Height()&1 != 0 {
		if opts.Edge != EdgeReplicate {
			return nil, fmt.Errorf("decompose %dx%d: %w", img.Width(), img.Height(), pixel.ErrOddDimension)
		}
		var err error
		if src, err = img.Pad(padded(img.Width()), padded(img.Height())); err != nil {
			return nil, err
		}
	}

	w, h := src.Width(), src.Height()
	out, err := raster.New[T](w, h, src.Channels())
	if err != nil {
		return nil, err
	}
	hw, hh := w/2, h/2

	err = forEachRow(hh, opts.Workers, func(by int) error {
		for bx := 0; bx < hw; bx++ {
			b, err := block.At(src, 2*bx, 2*by)
			if err != nil {
				return err
			}
			co, err := block.Forward(b)
			if err != nil {
				return err
			}
			if err := out.Set(bx, by, co.Average); err != nil {
				return err
			}
			if err := out.Set(bx+hw, by, co.Vertical); err != nil {
				return err
			}
			if err := out.Set(bx, by+hh, co.Horizontal); err != nil {
				return err
			}
			if err := out.Set(bx+hw, by+hh, co.Diagonal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Level[T]{coeffs: out, sourceWidth: img.Width(), sourceHeight: img.Height()}, nil
}

// ReconstructLevel inverts DecomposeLevel, returning an image of the
// level's source size.
func ReconstructLevel[T pixel.Channel](level *Level[T], opts Options) (*raster.Image[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return reconstruct(level.coeffs, level.sourceWidth, level.sourceHeight, opts.Workers)
}

func reconstruct[T pixel.Channel](coeffs *raster.Image[T], sourceWidth, sourceHeight, workers int) (*raster.Image[T], error) {
	w, h := coeffs.Width(), coeffs.Height()
	out, err := raster.New[T](w, h, coeffs.Channels())
	if err != nil {
		return nil, err
	}
	hw, hh := w/2, h/2

	err = forEachRow(hh, workers, func(by int) error {
		for bx := 0; bx < hw; bx++ {
			var co block.Coefficients[T]
			var err error
			if co.Average, err = coeffs.Get(bx, by); err != nil {
				return err
			}
			if co.Vertical, err = coeffs.Get(bx+hw, by); err != nil {
				return err
			}
			if co.Horizontal, err = coeffs.Get(bx, by+hh); err != nil {
				return err
			}
			if co.Diagonal, err = coeffs.Get(bx+hw, by+hh); err != nil {
				return err
			}
			b, err := block.Inverse(co)
			if err != nil {
				return err
			}
			if err := b.Store(out, 2*bx, 2*by); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sourceWidth == w && sourceHeight == h {
		return out, nil
	}
	return out.Crop(0, 0, sourceWidth, sourceHeight)
}

// forEachRow calls fn for every block row. Rows write disjoint cells, so
// they may run on several goroutines.
func forEachRow(rows, workers int, fn func(row int) error) error {
	if workers <= 1 || rows < 2 {
		for row := 0; row < rows; row++ {
			if err := fn(row); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for row := 0; row < rows; row++ {
		g.Go(func() error {
			return fn(row)
		})
	}
	return g.Wait()
}
