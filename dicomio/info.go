// Package dicomio reads and writes uncompressed DICOM pixel data frames as
// raster images.
package dicomio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/cocosip/go-superpixel/pixel"
)

// ErrUnsupported is returned for pixel data layouts without a matching
// channel type or pixel kind.
var ErrUnsupported = errors.New("dicomio: unsupported pixel data")

// Photometric interpretations understood by this package.
const (
	Monochrome1 = "MONOCHROME1"
	Monochrome2 = "MONOCHROME2"
	PhotoRGB    = "RGB"
	YBRFull     = "YBR_FULL"
)

// FrameInfo describes the layout of every frame of a pixel data element.
type FrameInfo struct {
	Width                     int
	Height                    int
	BitsAllocated             int
	BitsStored                int
	HighBit                   int // 0 means BitsStored-1
	SamplesPerPixel           int
	PixelRepresentation       int // 0 unsigned, 1 two's complement
	PlanarConfiguration       int // 0 interleaved, 1 planar
	PhotometricInterpretation string
}

// InfoFrom copies the fields of a go-dicom frame info.
func InfoFrom(fi *imagetypes.FrameInfo) FrameInfo {
	return FrameInfo{
		Width:                     int(fi.Width),
		Height:                    int(fi.Height),
		BitsAllocated:             int(fi.BitsAllocated),
		BitsStored:                int(fi.BitsStored),
		HighBit:                   int(fi.HighBit),
		SamplesPerPixel:           int(fi.SamplesPerPixel),
		PixelRepresentation:       int(fi.PixelRepresentation),
		PlanarConfiguration:       int(fi.PlanarConfiguration),
		PhotometricInterpretation: string(fi.PhotometricInterpretation),
	}
}

// FrameSize returns the number of bytes of one frame.
func (fi FrameInfo) FrameSize() int {
	return fi.Width * fi.Height * fi.SamplesPerPixel * (fi.BitsAllocated / 8)
}

func (fi FrameInfo) validate() error {
	if fi.Width <= 0 || fi.Height <= 0 {
		return fmt.Errorf("%dx%d frame: %w", fi.Width, fi.Height, pixel.ErrInvalidDimension)
	}
	if fi.SamplesPerPixel <= 0 || fi.SamplesPerPixel > pixel.MaxChannels {
		return fmt.Errorf("%d samples per pixel: %w", fi.SamplesPerPixel, pixel.ErrInvalidChannelCount)
	}
	if fi.BitsStored <= 0 || fi.BitsStored > fi.BitsAllocated {
		return fmt.Errorf("%d of %d bits stored: %w", fi.BitsStored, fi.BitsAllocated, ErrUnsupported)
	}
	if hb := fi.highBit(); hb < fi.BitsStored-1 || hb >= fi.BitsAllocated {
		return fmt.Errorf("high bit %d for %d of %d bits: %w", hb, fi.BitsStored, fi.BitsAllocated, ErrUnsupported)
	}
	return nil
}

func (fi FrameInfo) highBit() int {
	if fi.HighBit == 0 {
		return fi.BitsStored - 1
	}
	return fi.HighBit
}

// SampleType returns the smallest channel type holding the frame's samples.
// Unsigned 16-bit data needs at most 15 stored bits to fit int16.
func SampleType(fi FrameInfo) (pixel.ChannelType, error) {
	signed := fi.PixelRepresentation == 1
	switch fi.BitsAllocated {
	case 8:
		if signed {
			return pixel.I8, nil
		}
		return pixel.U8, nil
	case 16:
		if signed || fi.BitsStored <= 15 {
			return pixel.I16, nil
		}
	}
	return 0, fmt.Errorf("%d bits allocated, %d stored, representation %d: %w",
		fi.BitsAllocated, fi.BitsStored, fi.PixelRepresentation, ErrUnsupported)
}

// KindOf maps the photometric interpretation to a pixel kind.
func KindOf(fi FrameInfo) (pixel.Kind, error) {
	var kind pixel.Kind
	switch strings.ToUpper(strings.TrimSpace(fi.PhotometricInterpretation)) {
	case Monochrome1, Monochrome2:
		kind = pixel.Luma
	case PhotoRGB:
		kind = pixel.RGB
	case YBRFull:
		kind = pixel.YCbCr
	default:
		return 0, fmt.Errorf("photometric interpretation %q: %w", fi.PhotometricInterpretation, ErrUnsupported)
	}
	if kind.Channels() != fi.SamplesPerPixel {
		return 0, fmt.Errorf("%s with %d samples per pixel: %w", fi.PhotometricInterpretation, fi.SamplesPerPixel, pixel.ErrChannelCountMismatch)
	}
	return kind, nil
}

// photometric is the inverse of KindOf.
func photometric(kind pixel.Kind) (string, error) {
	switch kind {
	case pixel.Luma:
		return Monochrome2, nil
	case pixel.RGB:
		return PhotoRGB, nil
	case pixel.YCbCr:
		return YBRFull, nil
	}
	return "", fmt.Errorf("kind %s: %w", kind, ErrUnsupported)
}
