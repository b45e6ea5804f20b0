package raster

import (
	"fmt"

	"github.com/cocosip/go-superpixel/pixel"
)

// SplitChannel extracts channel index of every pixel into a single-channel
// image of the same size. The source is not modified.
func SplitChannel[T pixel.Channel](src *Image[T], index int) (*Image[T], error) {
	if index < 0 || index >= src.channels {
		return nil, fmt.Errorf("channel %d of %d: %w", index, src.channels, pixel.ErrChannelIndexOutOfRange)
	}
	out, err := New[T](src.width, src.height, 1)
	if err != nil {
		return nil, err
	}
	for i := range out.pix {
		out.pix[i] = src.pix[i*src.channels+index]
	}
	return out, nil
}

// SplitChannels splits every channel of src.
func SplitChannels[T pixel.Channel](src *Image[T]) ([]*Image[T], error) {
	planes := make([]*Image[T], src.channels)
	for c := range planes {
		p, err := SplitChannel(src, c)
		if err != nil {
			return nil, err
		}
		planes[c] = p
	}
	return planes, nil
}

// MergeChannels interleaves single-channel planes of equal size into one
// image, plane i becoming channel i.
func MergeChannels[T pixel.Channel](planes ...*Image[T]) (*Image[T], error) {
	if len(planes) == 0 || len(planes) > pixel.MaxChannels {
		return nil, fmt.Errorf("merge %d planes: %w", len(planes), pixel.ErrInvalidChannelCount)
	}
	w, h := planes[0].width, planes[0].height
	for i, p := range planes {
		if p.channels != 1 {
			return nil, fmt.Errorf("plane %d has %d channels: %w", i, p.channels, pixel.ErrChannelCountMismatch)
		}
		if p.width != w || p.height != h {
			return nil, fmt.Errorf("plane %d is %dx%d, want %dx%d: %w", i, p.width, p.height, w, h, pixel.ErrDimensionMismatch)
		}
	}
	out, err := New[T](w, h, len(planes))
	if err != nil {
		return nil, err
	}
	n := len(planes)
	for c, p := range planes {
		for i, s := range p.pix {
			out.pix[i*n+c] = s
		}
	}
	return out, nil
}

// ConvertImage changes the channel type of every sample with the semantics
// of pixel.Convert. The first sample that does not fit aborts with
// pixel.ErrOverflow.
func ConvertImage[S, D pixel.Channel](src *Image[S]) (*Image[D], error) {
	out, err := New[D](src.width, src.height, src.channels)
	if err != nil {
		return nil, err
	}
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			v, err := pixel.Convert[S, D](src.at(x, y))
			if err != nil {
				return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			out.put(x, y, v)
		}
	}
	return out, nil
}

// ClampImage changes the channel type of every sample with the saturating
// semantics of pixel.Clamp.
func ClampImage[S, D pixel.Channel](src *Image[S]) *Image[D] {
	out := &Image[D]{
		width:    src.width,
		height:   src.height,
		channels: src.channels,
		pix:      make([]D, len(src.pix)),
	}
	for i, s := range src.pix {
		out.pix[i] = pixel.ClampFloat[D](float64(s))
	}
	return out
}
