package dicomio

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/imaging"
)

// File is the pixel data of a parsed DICOM file.
type File struct {
	Info   FrameInfo
	frames []func() ([]byte, error)
}

// FrameCount returns the number of frames.
func (f *File) FrameCount() int {
	return len(f.frames)
}

// GetFrame returns the raw bytes of frame index.
func (f *File) GetFrame(index int) ([]byte, error) {
	if index < 0 || index >= len(f.frames) {
		return nil, fmt.Errorf("frame %d of %d out of range", index, len(f.frames))
	}
	return f.frames[index]()
}

// Open parses a DICOM file with uncompressed pixel data.
func Open(path string) (*File, error) {
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if res.TransferSyntax != nil && res.TransferSyntax.IsEncapsulated() {
		return nil, fmt.Errorf("%s: encapsulated transfer syntax: %w", path, ErrUnsupported)
	}

	pd, err := imaging.CreatePixelData(res.Dataset)
	if err != nil {
		return nil, fmt.Errorf("%s: pixel data: %w", path, err)
	}

	info := pd.Info
	f := &File{
		Info: FrameInfo{
			Width:               int(info.Width),
			Height:              int(info.Height),
			BitsAllocated:       int(info.BitsAllocated),
			BitsStored:          int(info.BitsStored),
			HighBit:             int(info.HighBit),
			SamplesPerPixel:     int(info.SamplesPerPixel),
			PixelRepresentation: int(info.PixelRepresentation),
			PlanarConfiguration: int(info.PlanarConfiguration),
		},
	}
	if p := info.PhotometricInterpretation; p != nil {
		f.Info.PhotometricInterpretation = p.Value
	}
	for i := 0; i < pd.FrameCount(); i++ {
		f.frames = append(f.frames, func() ([]byte, error) {
			return pd.GetFrame(i)
		})
	}
	return f, nil
}
