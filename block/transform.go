package block

import (
	"github.com/cocosip/go-superpixel/pixel"
)

// Forward decomposes a block into its average and difference coefficients.
func Forward[T pixel.Channel](b Block[T]) (Coefficients[T], error) {
	n, err := b.Channels()
	if err != nil {
		return Coefficients[T]{}, err
	}
	zero, _ := pixel.Zero[T](n)
	out := Coefficients[T]{Average: zero, Vertical: zero, Horizontal: zero, Diagonal: zero}

	float := pixel.IsFloat[T]()
	for c := 0; c < n; c++ {
		var a, v, h, d T
		if float {
			a, v, h, d = forwardFloat(b.TL.At(c), b.TR.At(c), b.BL.At(c), b.BR.At(c))
		} else {
			a, v, h, d = forwardInt(b.TL.At(c), b.TR.At(c), b.BL.At(c), b.BR.At(c))
		}
		out.Average, _ = out.Average.With(c, a)
		out.Vertical, _ = out.Vertical.With(c, v)
		out.Horizontal, _ = out.Horizontal.With(c, h)
		out.Diagonal, _ = out.Diagonal.With(c, d)
	}
	return out, nil
}

// Inverse rebuilds a block from its coefficients.
func Inverse[T pixel.Channel](co Coefficients[T]) (Block[T], error) {
	n, err := co.Channels()
	if err != nil {
		return Block[T]{}, err
	}
	zero, _ := pixel.Zero[T](n)
	out := Block[T]{TL: zero, TR: zero, BL: zero, BR: zero}

	float := pixel.IsFloat[T]()
	for c := 0; c < n; c++ {
		var tl, tr, bl, br T
		if float {
			tl, tr, bl, br = inverseFloat(co.Average.At(c), co.Vertical.At(c), co.Horizontal.At(c), co.Diagonal.At(c))
		} else {
			tl, tr, bl, br = inverseInt(co.Average.At(c), co.Vertical.At(c), co.Horizontal.At(c), co.Diagonal.At(c))
		}
		out.TL, _ = out.TL.With(c, tl)
		out.TR, _ = out.TR.With(c, tr)
		out.BL, _ = out.BL.With(c, bl)
		out.BR, _ = out.BR.With(c, br)
	}
	return out, nil
}

func forwardInt[T pixel.Channel](tl, tr, bl, br T) (a, v, h, d T) {
	x0, x1, x2, x3 := int32(tl), int32(tr), int32(bl), int32(br)
	// Arithmetic shift floors negative sums as well.
	a = pixel.ClampInt[T]((x0 + x1 + x2 + x3) >> 2)
	v = pixel.ClampInt[T](-x0 - x1 + x2 + x3)
	h = pixel.ClampInt[T](-x0 + x1 - x2 + x3)
	d = pixel.ClampInt[T](x0 - x1 - x2 + x3)
	return
}

// inverseInt restores the two bits the floored average dropped: the sum of
// the block is congruent to v+h-d modulo 4.
func inverseInt[T pixel.Channel](a, v, h, d T) (tl, tr, bl, br T) {
	xa, xv, xh, xd := int32(a), int32(v), int32(h), int32(d)
	sum := 4*xa + (xv+xh-xd)&3
	tl = pixel.ClampInt[T]((sum - xv - xh + xd) >> 2)
	tr = pixel.ClampInt[T]((sum - xv + xh - xd) >> 2)
	bl = pixel.ClampInt[T]((sum + xv - xh - xd) >> 2)
	br = pixel.ClampInt[T]((sum + xv + xh + xd) >> 2)
	return
}

func forwardFloat[T pixel.Channel](tl, tr, bl, br T) (a, v, h, d T) {
	x0, x1, x2, x3 := float64(tl), float64(tr), float64(bl), float64(br)
	a = pixel.ClampFloat[T]((x0 + x1 + x2 + x3) / 4)
	v = pixel.ClampFloat[T](-x0 - x1 + x2 + x3)
	h = pixel.ClampFloat[T](-x0 + x1 - x2 + x3)
	d = pixel.ClampFloat[T](x0 - x1 - x2 + x3)
	return
}

func inverseFloat[T pixel.Channel](a, v, h, d T) (tl, tr, bl, br T) {
	xa := float64(a)
	xv, xh, xd := float64(v)/4, float64(h)/4, float64(d)/4
	tl = pixel.ClampFloat[T](xa - xv - xh + xd)
	tr = pixel.ClampFloat[T](xa - xv + xh - xd)
	bl = pixel.ClampFloat[T](xa + xv - xh - xd)
	br = pixel.ClampFloat[T](xa + xv + xh + xd)
	return
}
