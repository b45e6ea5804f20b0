package spx

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/pyramid"
	"github.com/cocosip/go-superpixel/raster"
)

func buildPyramid(t *testing.T, w, h, ch int) (*raster.Image[int16], *pyramid.Pyramid[int16]) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	samples := make([]int16, w*h*ch)
	for i := range samples {
		samples[i] = int16(rng.Intn(512) - 256)
	}
	img, err := raster.FromSamples(w, h, ch, samples)
	require.NoError(t, err)
	p, err := pyramid.Build(img, pyramid.Options{Edge: pyramid.EdgeReplicate})
	require.NoError(t, err)
	return img, p
}

func encode[T pixel.Channel](t *testing.T, p *pyramid.Pyramid[T], kind pixel.Kind, opts Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, kind, opts))
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	img, p := buildPyramid(t, 13, 7, 3)

	for _, opts := range []Options{{}, {Compress: true}, {Compress: true, Level: 19}} {
		data := encode(t, p, pixel.YCbCr, opts)

		h, err := ReadHeader(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, uint32(13), h.Width)
		assert.Equal(t, uint32(7), h.Height)
		assert.Equal(t, uint8(3), h.Channels)
		assert.Equal(t, pixel.I16, h.SampleType())
		assert.Equal(t, pixel.YCbCr, h.PixelKind())
		assert.Equal(t, uint32(p.Len()), h.Levels)
		assert.Equal(t, opts.Compress, h.Compressed())

		q, h2, err := Read[int16](bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, h, h2)
		require.Equal(t, p.Len(), q.Len())

		out, err := pyramid.Reconstruct(q, pyramid.Options{})
		require.NoError(t, err)
		assert.True(t, out.Equal(img), "reconstructed image differs")
	}
}

func TestSinglePixel(t *testing.T) {
	img, err := raster.FromSamples[uint8](1, 1, 1, []uint8{42})
	require.NoError(t, err)
	p, err := pyramid.Build(img, pyramid.Options{})
	require.NoError(t, err)

	data := encode(t, p, pixel.Luma, Options{})
	q, h, err := Read[uint8](bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), h.Levels)
	assert.Equal(t, 0, q.Len())
	assert.True(t, q.Residual().Equal(img))
}

func TestCompressionShrinksConstantData(t *testing.T) {
	img, err := raster.New[float32](64, 64, 1)
	require.NoError(t, err)
	p, err := pyramid.Build(img, pyramid.Options{})
	require.NoError(t, err)

	raw := encode(t, p, 0, Options{})
	packed := encode(t, p, 0, Options{Compress: true})
	assert.Less(t, len(packed), len(raw))
}

func TestChecksum(t *testing.T) {
	_, p := buildPyramid(t, 4, 4, 1)
	data := encode(t, p, 0, Options{})
	data[HeaderSize+levelHeaderSize] ^= 0xff

	_, _, err := Read[int16](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestHeaderErrors(t *testing.T) {
	_, p := buildPyramid(t, 4, 4, 1)
	data := encode(t, p, pixel.Luma, Options{})

	bad := append([]byte(nil), data...)
	copy(bad, "JUNK")
	_, err := ReadHeader(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrInvalidMagic)

	bad = append([]byte(nil), data...)
	bad[3] = '2'
	_, err = ReadHeader(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = ReadHeader(bytes.NewReader(data[:10]))
	assert.ErrorIs(t, err, ErrTruncated)

	bad = append([]byte(nil), data...)
	bad[13] = 9
	_, err = ReadHeader(bytes.NewReader(bad))
	assert.ErrorIs(t, err, ErrInvalidHeader)

	_, _, err = Read[float32](bytes.NewReader(data))
	assert.ErrorIs(t, err, pixel.ErrChannelTypeMismatch)

	_, _, err = Read[int16](bytes.NewReader(data[:HeaderSize+8]))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestWriteErrors(t *testing.T) {
	_, p := buildPyramid(t, 4, 4, 1)
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, p, pixel.RGB, Options{}), pixel.ErrChannelCountMismatch)
	assert.Error(t, Write(&buf, p, 0, Options{Level: 40}))
}

// craft assembles a file from a header and an uncompressed payload, sealed
// with a valid digest.
func craft(t *testing.T, h Header, payload []byte) []byte {
	t.Helper()
	copy(h.Magic[:], Magic)
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, h))
	buf.Write(payload)
	buf.Write(digest(payload))
	return buf.Bytes()
}

func levelPayload(dims [4]uint32, samples []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, dims)
	buf.Write(samples)
	return buf.Bytes()
}

func TestMalformedPayload(t *testing.T) {
	const huge = 1 << 31
	tests := []struct {
		name    string
		header  Header
		payload []byte
		wantErr error
	}{
		{
			name:    "Sample count overflows",
			header:  Header{Width: huge, Height: huge, Channels: 4, ChannelType: uint8(pixel.U8), Levels: 1},
			payload: levelPayload([4]uint32{huge, huge, huge, huge}, nil),
			wantErr: ErrTruncated,
		},
		{
			name:    "Level larger than payload",
			header:  Header{Width: 64, Height: 64, Channels: 1, ChannelType: uint8(pixel.U8), Levels: 1},
			payload: levelPayload([4]uint32{64, 64, 64, 64}, make([]byte, 16)),
			wantErr: ErrTruncated,
		},
		{
			name:    "Too many levels",
			header:  Header{Width: 4, Height: 4, Channels: 1, ChannelType: uint8(pixel.U8), Levels: 1<<32 - 1},
			payload: levelPayload([4]uint32{4, 4, 4, 4}, make([]byte, 16)),
			wantErr: ErrInvalidHeader,
		},
		{
			name:    "Empty level",
			header:  Header{Width: 4, Height: 4, Channels: 1, ChannelType: uint8(pixel.U8), Levels: 1},
			payload: levelPayload([4]uint32{0, 0, 4, 4}, nil),
			wantErr: pixel.ErrInvalidDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := craft(t, tt.header, tt.payload)
			require.NotPanics(t, func() {
				_, _, err := Read[uint8](bytes.NewReader(data))
				assert.ErrorIs(t, err, tt.wantErr)
			})
		})
	}
}

func TestLevelCountBound(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader(craft(t, Header{Width: 1, Height: 1, Channels: 1, ChannelType: uint8(pixel.U8), Levels: 1}, nil)))
	assert.ErrorIs(t, err, ErrInvalidHeader)

	_, err = ReadHeader(bytes.NewReader(craft(t, Header{Width: 16, Height: 2, Channels: 1, ChannelType: uint8(pixel.U8), Levels: 4}, nil)))
	assert.NoError(t, err)
}
