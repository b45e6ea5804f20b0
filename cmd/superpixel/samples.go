package main

import (
	"fmt"

	"github.com/cocosip/go-superpixel/codec"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// widen maps 8-bit samples into T: int8 is centred on zero and float32 is
// scaled to [0, 1].
func widen[T pixel.Channel](src *raster.Image[uint8]) (*raster.Image[T], error) {
	out := make([]T, len(src.Samples()))
	for i, s := range src.Samples() {
		f := float64(s)
		switch pixel.TypeOf[T]() {
		case pixel.I8:
			f -= 128
		case pixel.F32:
			f /= 255
		}
		out[i] = pixel.ClampFloat[T](f)
	}
	return raster.FromSamples(src.Width(), src.Height(), src.Channels(), out)
}

// narrow is the inverse of widen, saturating values outside 8 bits.
func narrow[T pixel.Channel](src *raster.Image[T]) (*raster.Image[uint8], error) {
	out := make([]uint8, len(src.Samples()))
	for i, s := range src.Samples() {
		f := float64(s)
		switch pixel.TypeOf[T]() {
		case pixel.I8:
			f += 128
		case pixel.F32:
			f *= 255
		}
		out[i] = pixel.ClampFloat[uint8](f)
	}
	return raster.FromSamples(src.Width(), src.Height(), src.Channels(), out)
}

func widenBytes[T pixel.Channel](src *raster.Image[uint8]) ([]byte, error) {
	img, err := widen[T](src)
	if err != nil {
		return nil, err
	}
	return codec.EncodeSamples(img.Samples()), nil
}

// pixelData serializes an 8-bit image as samples of type t.
func pixelData(src *raster.Image[uint8], t pixel.ChannelType) ([]byte, error) {
	switch t {
	case pixel.U8:
		return codec.EncodeSamples(src.Samples()), nil
	case pixel.I8:
		return widenBytes[int8](src)
	case pixel.I16:
		return widenBytes[int16](src)
	case pixel.F32:
		return widenBytes[float32](src)
	}
	return nil, fmt.Errorf("channel type %s: %w", t, codec.ErrUnsupportedFormat)
}

func narrowBytes[T pixel.Channel](res *codec.DecodeResult) (*raster.Image[uint8], error) {
	samples, err := codec.DecodeSamples[T](res.PixelData)
	if err != nil {
		return nil, err
	}
	img, err := raster.FromSamples(res.Width, res.Height, res.Components, samples)
	if err != nil {
		return nil, err
	}
	return narrow(img)
}

// decodedImage turns a decode result back into an 8-bit image.
func decodedImage(res *codec.DecodeResult) (*raster.Image[uint8], error) {
	switch res.SampleType {
	case pixel.U8:
		return narrowBytes[uint8](res)
	case pixel.I8:
		return narrowBytes[int8](res)
	case pixel.I16:
		return narrowBytes[int16](res)
	case pixel.F32:
		return narrowBytes[float32](res)
	}
	return nil, fmt.Errorf("channel type %s: %w", res.SampleType, codec.ErrUnsupportedFormat)
}

// displayKind picks the kind used to render a decoded image.
func displayKind(kind pixel.Kind, channels int) pixel.Kind {
	if kind.Valid() && kind.Channels() == channels {
		return kind
	}
	switch channels {
	case 1:
		return pixel.Luma
	case 3:
		return pixel.RGB
	}
	return pixel.RGBA
}
