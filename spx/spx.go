package spx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/zeebo/blake3"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/pyramid"
	"github.com/cocosip/go-superpixel/raster"
)

// Options configures Write.
type Options struct {
	// Compress stores the payload zstd compressed.
	Compress bool
	// Level is the zstd compression level (1-22). 0 selects the default.
	Level int
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Level < 0 || o.Level > 22 {
		return fmt.Errorf("spx: invalid compression level %d", o.Level)
	}
	return nil
}

func digest(payload []byte) []byte {
	h := blake3.New()
	h.Write(payload)
	return h.Sum(nil)
}

// Write serializes p. kind records the meaning of the channels and may be 0.
func Write[T pixel.Channel](w io.Writer, p *pyramid.Pyramid[T], kind pixel.Kind, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if kind != 0 && kind.Channels() != p.Channels() {
		return fmt.Errorf("%s with %d channels: %w", kind, p.Channels(), pixel.ErrChannelCountMismatch)
	}

	var payload bytes.Buffer
	levels := p.Levels()
	for _, lvl := range levels {
		err := writeImage(&payload, lvl.Width(), lvl.Height(), lvl.SourceWidth(), lvl.SourceHeight(), lvl.Samples())
		if err != nil {
			return err
		}
	}
	if len(levels) == 0 {
		res := p.Residual()
		if err := writeImage(&payload, res.Width(), res.Height(), res.Width(), res.Height(), res.Samples()); err != nil {
			return err
		}
	}
	sum := digest(payload.Bytes())

	h := Header{
		Width:       uint32(p.Width()),
		Height:      uint32(p.Height()),
		Channels:    uint8(p.Channels()),
		ChannelType: uint8(pixel.TypeOf[T]()),
		Levels:      uint32(len(levels)),
		Kind:        uint8(kind),
	}
	copy(h.Magic[:], Magic)

	body := payload.Bytes()
	if opts.Compress {
		h.Flags |= FlagZstd
		var err error
		if body, err = compress(body, opts.Level); err != nil {
			return fmt.Errorf("spx: compress: %w", err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	_, err := w.Write(sum)
	return err
}

func writeImage[T pixel.Channel](buf *bytes.Buffer, width, height, sourceWidth, sourceHeight int, samples []T) error {
	dims := [4]uint32{uint32(width), uint32(height), uint32(sourceWidth), uint32(sourceHeight)}
	if err := binary.Write(buf, binary.LittleEndian, dims); err != nil {
		return err
	}
	return binary.Write(buf, binary.LittleEndian, samples)
}

// Read deserializes a pyramid whose samples are of type T. The channel type
// recorded in the header must match T.
func Read[T pixel.Channel](r io.Reader) (*pyramid.Pyramid[T], Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, h, err
	}
	if got, want := h.SampleType(), pixel.TypeOf[T](); got != want {
		return nil, h, fmt.Errorf("file holds %s, want %s: %w", got, want, pixel.ErrChannelTypeMismatch)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, h, err
	}
	if len(rest) < DigestSize {
		return nil, h, fmt.Errorf("digest: %w", ErrTruncated)
	}
	body, sum := rest[:len(rest)-DigestSize], rest[len(rest)-DigestSize:]
	if h.Compressed() {
		if body, err = decompress(body); err != nil {
			return nil, h, fmt.Errorf("spx: decompress: %w", err)
		}
	}
	if !bytes.Equal(digest(body), sum) {
		return nil, h, ErrChecksum
	}

	p, err := decodePayload[T](bytes.NewReader(body), h)
	if err != nil {
		return nil, h, err
	}
	return p, h, nil
}

func decodePayload[T pixel.Channel](r *bytes.Reader, h Header) (*pyramid.Pyramid[T], error) {
	channels := int(h.Channels)
	if h.Levels == 0 {
		res, sw, sh, err := readImage[T](r, channels)
		if err != nil {
			return nil, err
		}
		if sw != res.Width() || sh != res.Height() || sw != int(h.Width) || sh != int(h.Height) {
			return nil, fmt.Errorf("residual %dx%d in %dx%d file: %w", res.Width(), res.Height(), h.Width, h.Height, ErrInvalidHeader)
		}
		if r.Len() != 0 {
			return nil, fmt.Errorf("spx: %d trailing payload bytes", r.Len())
		}
		return pyramid.Assemble(nil, res)
	}

	levels := make([]*pyramid.Level[T], 0, h.Levels)
	for i := uint32(0); i < h.Levels; i++ {
		coeffs, sw, sh, err := readImage[T](r, channels)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		lvl, err := pyramid.NewLevel(coeffs, sw, sh)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		levels = append(levels, lvl)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("spx: %d trailing payload bytes", r.Len())
	}
	if levels[0].SourceWidth() != int(h.Width) || levels[0].SourceHeight() != int(h.Height) {
		return nil, fmt.Errorf("level 0 source %dx%d in %dx%d file: %w",
			levels[0].SourceWidth(), levels[0].SourceHeight(), h.Width, h.Height, ErrInvalidHeader)
	}
	return pyramid.Assemble(levels, nil)
}

func readImage[T pixel.Channel](r *bytes.Reader, channels int) (*raster.Image[T], int, int, error) {
	var dims [4]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, 0, 0, truncated(err)
	}
	w, h := int(dims[0]), int(dims[1])
	hi, px := bits.Mul64(uint64(dims[0]), uint64(dims[1]))
	hi2, size := bits.Mul64(px, uint64(channels*pixel.TypeOf[T]().Size()))
	if hi != 0 || hi2 != 0 || size > uint64(r.Len()) {
		return nil, 0, 0, fmt.Errorf("%dx%d image: %w", dims[0], dims[1], ErrTruncated)
	}
	samples := make([]T, px*uint64(channels))
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return nil, 0, 0, truncated(err)
	}
	img, err := raster.FromSamples(w, h, channels, samples)
	if err != nil {
		return nil, 0, 0, err
	}
	return img, int(dims[2]), int(dims[3]), nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
