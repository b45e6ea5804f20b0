package dicomio

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// Source yields the frames of a pixel data element. go-dicom pixel data
// satisfies it.
type Source interface {
	FrameCount() int
	GetFrame(index int) ([]byte, error)
}

// Sink collects encoded frames. go-dicom pixel data satisfies it.
type Sink interface {
	AddFrame(data []byte) error
}

// fits reports whether every value of frame type f is representable in t.
func fits(f, t pixel.ChannelType) bool {
	switch t {
	case pixel.F32:
		return true
	case pixel.I16:
		return f == pixel.U8 || f == pixel.I8 || f == pixel.I16
	}
	return f == t
}

// ReadFrame decodes one frame of src.
func ReadFrame[T pixel.Channel](src Source, fi FrameInfo, index int) (*raster.Image[T], error) {
	if index < 0 || index >= src.FrameCount() {
		return nil, fmt.Errorf("frame %d of %d: %w", index, src.FrameCount(), pixel.ErrOutOfBounds)
	}
	data, err := src.GetFrame(index)
	if err != nil {
		return nil, fmt.Errorf("get frame %d: %w", index, err)
	}
	return DecodeFrame[T](data, fi)
}

// DecodeFrame converts little-endian frame bytes into an interleaved image.
// T must be able to hold every sample of the frame.
func DecodeFrame[T pixel.Channel](data []byte, fi FrameInfo) (*raster.Image[T], error) {
	if err := fi.validate(); err != nil {
		return nil, err
	}
	ft, err := SampleType(fi)
	if err != nil {
		return nil, err
	}
	if !fits(ft, pixel.TypeOf[T]()) {
		return nil, fmt.Errorf("%s frame into %s image: %w", ft, pixel.TypeOf[T](), pixel.ErrChannelTypeMismatch)
	}
	if len(data) < fi.FrameSize() {
		return nil, fmt.Errorf("frame has %d bytes, want %d: %w", len(data), fi.FrameSize(), pixel.ErrDimensionMismatch)
	}

	img, err := raster.New[T](fi.Width, fi.Height, fi.SamplesPerPixel)
	if err != nil {
		return nil, err
	}
	out := img.Samples()
	npix := fi.Width * fi.Height
	ch := fi.SamplesPerPixel
	signed := fi.PixelRepresentation == 1
	low := uint(fi.highBit() - fi.BitsStored + 1)
	shift := uint(32 - fi.BitsStored)
	mask := uint32(1)<<uint(fi.BitsStored) - 1

	for i := range out {
		// Source position of output sample i.
		src := i
		if fi.PlanarConfiguration == 1 {
			src = (i%ch)*npix + i/ch
		}
		var raw uint32
		if fi.BitsAllocated == 8 {
			raw = uint32(data[src])
		} else {
			raw = uint32(binary.LittleEndian.Uint16(data[2*src:]))
		}
		raw >>= low
		var v int32
		if signed {
			v = int32(raw<<shift) >> shift
		} else {
			v = int32(raw & mask)
		}
		out[i] = T(v)
	}
	return img, nil
}

// EncodeFrame serializes img as an interleaved little-endian frame and
// describes it. Float images have no uncompressed DICOM representation
// here and are rejected.
func EncodeFrame[T pixel.Channel](img *raster.Image[T], kind pixel.Kind) ([]byte, FrameInfo, error) {
	photo, err := photometric(kind)
	if err != nil {
		return nil, FrameInfo{}, err
	}
	if kind.Channels() != img.Channels() {
		return nil, FrameInfo{}, fmt.Errorf("%s image with %d channels: %w", kind, img.Channels(), pixel.ErrChannelCountMismatch)
	}
	fi := FrameInfo{
		Width:                     img.Width(),
		Height:                    img.Height(),
		SamplesPerPixel:           img.Channels(),
		PhotometricInterpretation: photo,
	}

	samples := img.Samples()
	var data []byte
	switch pixel.TypeOf[T]() {
	case pixel.U8, pixel.I8:
		fi.BitsAllocated, fi.BitsStored, fi.HighBit = 8, 8, 7
		data = make([]byte, len(samples))
		for i, s := range samples {
			data[i] = byte(int8(s))
		}
	case pixel.I16:
		fi.BitsAllocated, fi.BitsStored, fi.HighBit = 16, 16, 15
		data = make([]byte, 2*len(samples))
		for i, s := range samples {
			binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(s)))
		}
	default:
		return nil, FrameInfo{}, fmt.Errorf("%s samples: %w", pixel.TypeOf[T](), ErrUnsupported)
	}
	if pixel.TypeOf[T]().Signed() {
		fi.PixelRepresentation = 1
	}
	return data, fi, nil
}

// WriteFrame encodes img and appends it to dst.
func WriteFrame[T pixel.Channel](dst Sink, img *raster.Image[T], kind pixel.Kind) (FrameInfo, error) {
	data, fi, err := EncodeFrame(img, kind)
	if err != nil {
		return FrameInfo{}, err
	}
	if err := dst.AddFrame(data); err != nil {
		return FrameInfo{}, fmt.Errorf("add frame: %w", err)
	}
	return fi, nil
}
