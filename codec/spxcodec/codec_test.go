package spxcodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-superpixel/codec"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/pyramid"
	"github.com/cocosip/go-superpixel/spx"
)

func TestEncodeDecodeUint8(t *testing.T) {
	width, height := 32, 32
	pixelData := make([]byte, width*height)
	for i := range pixelData {
		pixelData[i] = 100
	}

	for _, c := range []*Codec{NewRawCodec(), NewZstdCodec()} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Encode(codec.EncodeParams{
				PixelData:  pixelData,
				Width:      width,
				Height:     height,
				Components: 1,
				SampleType: pixel.U8,
				Kind:       pixel.Luma,
			})
			require.NoError(t, err)

			result, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, width, result.Width)
			assert.Equal(t, height, result.Height)
			assert.Equal(t, 1, result.Components)
			assert.Equal(t, pixel.U8, result.SampleType)
			assert.Equal(t, pixel.Luma, result.Kind)
			assert.Equal(t, 5, result.Levels)
			assert.Equal(t, pixelData, result.PixelData)
		})
	}
}

func TestEncodeDecodeInt16(t *testing.T) {
	width, height, comps := 10, 6, 3
	samples := make([]int16, width*height*comps)
	for i := range samples {
		samples[i] = int16((i*37)%2000 - 1000)
	}

	c := NewZstdCodec()
	data, err := c.Encode(codec.EncodeParams{
		PixelData:  codec.EncodeSamples(samples),
		Width:      width,
		Height:     height,
		Components: comps,
		SampleType: pixel.I16,
		Options:    &Options{Edge: pyramid.EdgeReplicate, Workers: 2, CompressionLevel: 3},
	})
	require.NoError(t, err)

	h, err := spx.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, h.Compressed())

	// The raw codec decodes compressed streams too.
	result, err := NewRawCodec().Decode(data)
	require.NoError(t, err)
	got, err := codec.DecodeSamples[int16](result.PixelData)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestLevelsOption(t *testing.T) {
	pixelData := codec.EncodeSamples(make([]float32, 16*16))
	data, err := NewRawCodec().Encode(codec.EncodeParams{
		PixelData:  pixelData,
		Width:      16,
		Height:     16,
		Components: 1,
		SampleType: pixel.F32,
		Options:    &Options{Levels: 2},
	})
	require.NoError(t, err)

	result, err := NewRawCodec().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Levels)
}

func TestEncodeErrors(t *testing.T) {
	c := NewRawCodec()
	base := codec.EncodeParams{
		PixelData:  make([]byte, 9),
		Width:      3,
		Height:     3,
		Components: 1,
		SampleType: pixel.U8,
	}

	_, err := c.Encode(base)
	assert.ErrorIs(t, err, pixel.ErrOddDimension)

	short := base
	short.PixelData = make([]byte, 4)
	_, err = c.Encode(short)
	assert.ErrorIs(t, err, codec.ErrInvalidParameter)

	badOpts := base
	badOpts.Options = &Options{CompressionLevel: 99}
	_, err = c.Encode(badOpts)
	assert.ErrorIs(t, err, codec.ErrInvalidParameter)

	badKind := base
	badKind.Kind = pixel.RGB
	_, err = c.Encode(badKind)
	assert.ErrorIs(t, err, pixel.ErrChannelCountMismatch)

	_, err = c.Decode([]byte("not an spx stream at all"))
	assert.ErrorIs(t, err, spx.ErrInvalidMagic)
}

func TestNilOptionsUseDefaults(t *testing.T) {
	var opts *Options
	data, err := NewZstdCodec().Encode(codec.EncodeParams{
		PixelData:  make([]byte, 4*4),
		Width:      4,
		Height:     4,
		Components: 1,
		SampleType: pixel.U8,
		Options:    opts,
	})
	require.NoError(t, err)

	result, err := NewZstdCodec().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Levels)
}

func TestRegistered(t *testing.T) {
	for _, key := range []string{"spx-raw", RawUID, "spx-zstd", ZstdUID} {
		c, err := codec.Get(key)
		require.NoError(t, err, key)
		assert.Contains(t, []string{RawUID, ZstdUID}, c.UID())
	}
}
