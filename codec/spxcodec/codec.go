// Package spxcodec registers pyramid codecs that store images as spx
// streams, either raw or zstd compressed.
package spxcodec

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-superpixel/codec"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/pyramid"
	"github.com/cocosip/go-superpixel/raster"
	"github.com/cocosip/go-superpixel/spx"
)

const (
	// RawUID identifies uncompressed spx streams
	RawUID = "2.25.211758163493618473813069826227361043581"
	// ZstdUID identifies zstd compressed spx streams
	ZstdUID = "2.25.211758163493618473813069826227361043582"
)

// Codec implements the codec.Codec interface for spx streams
type Codec struct {
	uid      string
	name     string
	compress bool
}

// NewRawCodec creates a codec writing uncompressed streams
func NewRawCodec() *Codec {
	return &Codec{uid: RawUID, name: "spx-raw"}
}

// NewZstdCodec creates a codec writing zstd compressed streams
func NewZstdCodec() *Codec {
	return &Codec{uid: ZstdUID, name: "spx-zstd", compress: true}
}

// Encode decomposes the pixel data into a pyramid and serializes it
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	opts := &Options{}
	if params.Options != nil {
		o, ok := params.Options.(*Options)
		if !ok {
			return nil, fmt.Errorf("options %T: %w", params.Options, codec.ErrInvalidParameter)
		}
		if o != nil {
			opts = o
		}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	switch params.SampleType {
	case pixel.U8:
		return encode[uint8](params, opts, c.compress)
	case pixel.I8:
		return encode[int8](params, opts, c.compress)
	case pixel.I16:
		return encode[int16](params, opts, c.compress)
	case pixel.F32:
		return encode[float32](params, opts, c.compress)
	}
	return nil, fmt.Errorf("sample type %s: %w", params.SampleType, codec.ErrUnsupportedFormat)
}

func encode[T pixel.Channel](params codec.EncodeParams, opts *Options, compress bool) ([]byte, error) {
	samples, err := codec.DecodeSamples[T](params.PixelData)
	if err != nil {
		return nil, err
	}
	img, err := raster.FromSamples(params.Width, params.Height, params.Components, samples)
	if err != nil {
		return nil, err
	}
	p, err := pyramid.Build(img, opts.pyramidOptions())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := spx.Write(&buf, p, params.Kind, spx.Options{Compress: compress, Level: opts.CompressionLevel}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads an spx stream and reconstructs the image. Both codecs decode
// raw and compressed streams.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	h, err := spx.ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	switch h.SampleType() {
	case pixel.U8:
		return decode[uint8](data)
	case pixel.I8:
		return decode[int8](data)
	case pixel.I16:
		return decode[int16](data)
	case pixel.F32:
		return decode[float32](data)
	}
	return nil, fmt.Errorf("sample type %s: %w", h.SampleType(), codec.ErrUnsupportedFormat)
}

func decode[T pixel.Channel](data []byte) (*codec.DecodeResult, error) {
	p, h, err := spx.Read[T](bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	img, err := pyramid.Reconstruct(p, pyramid.Options{})
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:  codec.EncodeSamples(img.Samples()),
		Width:      img.Width(),
		Height:     img.Height(),
		Components: img.Channels(),
		SampleType: h.SampleType(),
		Kind:       h.PixelKind(),
		Levels:     p.Len(),
	}, nil
}

// UID returns the private UID of the stream flavour
func (c *Codec) UID() string {
	return c.uid
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return c.name
}

// Register registers both codecs with the global registry
func init() {
	codec.Register(NewRawCodec())
	codec.Register(NewZstdCodec())
}
