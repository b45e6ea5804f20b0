// Package spx stores superpixel pyramids in a compact binary container.
//
// A file is a fixed little-endian header, the payload and a BLAKE3 digest of
// the uncompressed payload:
//
//	magic "SPX1" | width u32 | height u32 | channels u8 | channel type u8 |
//	levels u32 | kind u8 | flags u8
//	payload (zstd compressed when FlagZstd is set)
//	digest [32]byte
//
// The payload holds every level finest first, each as
// width u32 | height u32 | source width u32 | source height u32 followed by
// the interleaved coefficient samples. A pyramid without levels stores its
// single residual image the same way.
package spx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/pyramid"
)

const (
	Magic      = "SPX1"
	HeaderSize = 20
	DigestSize = 32

	levelHeaderSize = 16
)

// Header flags.
const (
	FlagZstd uint8 = 1 << 0

	knownFlags = FlagZstd
)

var (
	ErrInvalidMagic       = errors.New("spx: invalid magic")
	ErrUnsupportedVersion = errors.New("spx: unsupported version")
	ErrTruncated          = errors.New("spx: truncated data")
	ErrChecksum           = errors.New("spx: checksum mismatch")
	ErrInvalidHeader      = errors.New("spx: invalid header")
)

// Header is the fixed part of a file.
type Header struct {
	Magic       [4]byte
	Width       uint32
	Height      uint32
	Channels    uint8
	ChannelType uint8
	Levels      uint32
	Kind        uint8
	Flags       uint8
}

// SampleType returns the channel type of the stored samples.
func (h Header) SampleType() pixel.ChannelType {
	return pixel.ChannelType(h.ChannelType)
}

// PixelKind returns the recorded pixel kind, 0 when none was recorded.
func (h Header) PixelKind() pixel.Kind {
	return pixel.Kind(h.Kind)
}

// Compressed reports whether the payload is zstd compressed.
func (h Header) Compressed() bool {
	return h.Flags&FlagZstd != 0
}

func (h Header) validate() error {
	if string(h.Magic[:3]) != Magic[:3] {
		return ErrInvalidMagic
	}
	if h.Magic[3] != Magic[3] {
		return fmt.Errorf("version %q: %w", h.Magic[3], ErrUnsupportedVersion)
	}
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%dx%d: %w", h.Width, h.Height, ErrInvalidHeader)
	}
	if h.Channels == 0 || int(h.Channels) > pixel.MaxChannels {
		return fmt.Errorf("%d channels: %w", h.Channels, ErrInvalidHeader)
	}
	if !h.SampleType().Valid() {
		return fmt.Errorf("channel type %d: %w", h.ChannelType, ErrInvalidHeader)
	}
	if k := h.PixelKind(); k != 0 && k.Channels() != int(h.Channels) {
		return fmt.Errorf("kind %s with %d channels: %w", k, h.Channels, ErrInvalidHeader)
	}
	if limit := pyramid.MaxDepth(int(h.Width), int(h.Height), pyramid.EdgeReplicate); int64(h.Levels) > int64(limit) {
		return fmt.Errorf("%d levels for %dx%d, at most %d: %w", h.Levels, h.Width, h.Height, limit, ErrInvalidHeader)
	}
	if h.Flags&^knownFlags != 0 {
		return fmt.Errorf("flags %#x: %w", h.Flags, ErrInvalidHeader)
	}
	return nil
}

// ReadHeader reads and validates the fixed header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return h, fmt.Errorf("header: %w", ErrTruncated)
		}
		return h, err
	}
	if err := h.validate(); err != nil {
		return h, err
	}
	return h, nil
}
