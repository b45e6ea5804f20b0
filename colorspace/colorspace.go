// Package colorspace converts pixels between the multi-channel kinds.
//
// YCbCr is BT.601 full range. YUV uses U = 0.492(B-Y) and V = 0.877(R-Y).
// Chroma channels are stored around a midpoint that depends on the channel
// type: 128 for uint8, 0.5 for float32 and 0 for the signed integer types.
// Alpha is dropped when leaving RGBA and set to the type's maximum (1.0 for
// float32) when entering it.
package colorspace

import (
	"fmt"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// scale describes the numeric domain of a channel type.
type scale struct {
	mid    float64
	opaque float64
}

func scaleOf[T pixel.Channel]() scale {
	switch pixel.TypeOf[T]() {
	case pixel.U8:
		return scale{mid: 128, opaque: 255}
	case pixel.I8:
		return scale{mid: 0, opaque: 127}
	case pixel.I16:
		return scale{mid: 0, opaque: 32767}
	default:
		return scale{mid: 0.5, opaque: 1}
	}
}

type pair struct {
	from, to pixel.Kind
}

// convertFunc maps the channels of one pixel to another kind. in and out
// never alias.
type convertFunc func(in, out []float64, s scale)

var table = map[pair]convertFunc{
	{pixel.RGB, pixel.YCbCr}:  rgbToYCbCr,
	{pixel.YCbCr, pixel.RGB}:  yCbCrToRGB,
	{pixel.RGB, pixel.YUV}:    rgbToYUV,
	{pixel.YUV, pixel.RGB}:    yuvToRGB,
	{pixel.RGB, pixel.RGBA}:   rgbToRGBA,
	{pixel.RGBA, pixel.RGB}:   rgbaToRGB,
	{pixel.RGB, pixel.Luma}:   rgbToLuma,
	{pixel.Luma, pixel.RGB}:   lumaToRGB,
	{pixel.YCbCr, pixel.Luma}: firstChannel,
	{pixel.YUV, pixel.Luma}:   firstChannel,
}

func init() {
	// Every other pair of multi-channel kinds goes through RGB.
	kinds := []pixel.Kind{pixel.Luma, pixel.RGB, pixel.RGBA, pixel.YCbCr, pixel.YUV}
	for _, from := range kinds {
		for _, to := range kinds {
			p := pair{from, to}
			if from == to || from == pixel.RGB || to == pixel.RGB {
				continue
			}
			if _, ok := table[p]; ok {
				continue
			}
			in, ok1 := table[pair{from, pixel.RGB}]
			out, ok2 := table[pair{pixel.RGB, to}]
			if ok1 && ok2 {
				table[p] = chain(in, out)
			}
		}
	}
}

func chain(a, b convertFunc) convertFunc {
	return func(in, out []float64, s scale) {
		var rgb [3]float64
		a(in, rgb[:], s)
		b(rgb[:], out, s)
	}
}

// Supported reports whether Convert knows how to go from one kind to another.
func Supported(from, to pixel.Kind) bool {
	if from == to {
		return from.Valid()
	}
	_, ok := table[pair{from, to}]
	return ok
}

func lookup(from, to pixel.Kind) (convertFunc, error) {
	f, ok := table[pair{from, to}]
	if !ok {
		return nil, fmt.Errorf("%s to %s: %w", from, to, pixel.ErrUnsupportedConversion)
	}
	return f, nil
}

// Convert converts one pixel. The value must carry from.Channels() channels.
func Convert[T pixel.Channel](v pixel.Value[T], from, to pixel.Kind) (pixel.Value[T], error) {
	if v.Len() != from.Channels() {
		return pixel.Value[T]{}, fmt.Errorf("%s value with %d channels: %w", from, v.Len(), pixel.ErrChannelCountMismatch)
	}
	if from == to {
		return v, nil
	}
	f, err := lookup(from, to)
	if err != nil {
		return pixel.Value[T]{}, err
	}

	var in, out [pixel.MaxChannels]float64
	for i := 0; i < v.Len(); i++ {
		in[i] = float64(v.At(i))
	}
	n := to.Channels()
	f(in[:v.Len()], out[:n], scaleOf[T]())

	ch := make([]T, n)
	for i := range ch {
		ch[i] = pixel.ClampFloat[T](out[i])
	}
	return pixel.New(ch...)
}

// ConvertImage converts every pixel of img into a new image.
func ConvertImage[T pixel.Channel](img *raster.Image[T], from, to pixel.Kind) (*raster.Image[T], error) {
	if img.Channels() != from.Channels() {
		return nil, fmt.Errorf("%s image with %d channels: %w", from, img.Channels(), pixel.ErrChannelCountMismatch)
	}
	if from == to {
		return img.Clone(), nil
	}
	f, err := lookup(from, to)
	if err != nil {
		return nil, err
	}

	src := img.Samples()
	inN, outN := from.Channels(), to.Channels()
	dst := make([]T, img.Width()*img.Height()*outN)
	s := scaleOf[T]()
	var in, out [pixel.MaxChannels]float64
	for p := 0; p < img.Width()*img.Height(); p++ {
		for c := 0; c < inN; c++ {
			in[c] = float64(src[p*inN+c])
		}
		f(in[:inN], out[:outN], s)
		for c := 0; c < outN; c++ {
			dst[p*outN+c] = pixel.ClampFloat[T](out[c])
		}
	}
	return raster.FromSamples(img.Width(), img.Height(), outN, dst)
}
