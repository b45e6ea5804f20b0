// Package imageio moves pixels between standard library images, image files
// and raster buffers.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/cocosip/go-superpixel/colorspace"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

// plane returns the multi-channel kind a single chroma plane is taken from
// and the plane's channel index within it.
func plane(kind pixel.Kind) (pixel.Kind, int) {
	switch kind {
	case pixel.Cb:
		return pixel.YCbCr, 1
	case pixel.Cr:
		return pixel.YCbCr, 2
	case pixel.U:
		return pixel.YUV, 1
	case pixel.V:
		return pixel.YUV, 2
	}
	return kind, -1
}

// FromImage copies src into an 8-bit buffer of the given kind. Single chroma
// kinds (Cb, Cr, U, V) extract that plane.
func FromImage(src image.Image, kind pixel.Kind) (*raster.Image[uint8], error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("kind %s: %w", kind, pixel.ErrUnsupportedConversion)
	}
	nrgba := imaging.Clone(src)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	rgba, err := raster.FromSamples(w, h, 4, nrgba.Pix[:w*h*4])
	if err != nil {
		return nil, err
	}

	parent, index := plane(kind)
	img, err := colorspace.ConvertImage(rgba, pixel.RGBA, parent)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return img, nil
	}
	return raster.SplitChannel(img, index)
}

// ToImage converts img, holding pixels of the given kind, to a standard
// library image: *image.Gray for single-channel kinds, *image.NRGBA
// otherwise.
func ToImage(img *raster.Image[uint8], kind pixel.Kind) (image.Image, error) {
	if img.Channels() != kind.Channels() {
		return nil, fmt.Errorf("%s image with %d channels: %w", kind, img.Channels(), pixel.ErrChannelCountMismatch)
	}
	w, h := img.Width(), img.Height()
	if img.Channels() == 1 {
		out := image.NewGray(image.Rect(0, 0, w, h))
		copy(out.Pix, img.Samples())
		return out, nil
	}

	rgba, err := colorspace.ConvertImage(img, kind, pixel.RGBA)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, rgba.Samples())
	return out, nil
}

// Visualize renders one channel of img as a grayscale image. Unsigned
// samples are shown as is, signed samples are centred on 128 and float
// samples are taken to be in [0, 1].
func Visualize[T pixel.Channel](img *raster.Image[T], channel int) (*image.Gray, error) {
	ch, err := raster.SplitChannel(img, channel)
	if err != nil {
		return nil, err
	}
	out := image.NewGray(image.Rect(0, 0, img.Width(), img.Height()))
	for i, s := range ch.Samples() {
		out.Pix[i] = toGray(s)
	}
	return out, nil
}

func toGray[T pixel.Channel](s T) uint8 {
	switch pixel.TypeOf[T]() {
	case pixel.U8:
		return uint8(s)
	case pixel.I8:
		return uint8(int(s) + 128)
	case pixel.I16:
		return uint8(int(s)>>8 + 128)
	default:
		return pixel.ClampFloat[uint8](float64(s) * 255)
	}
}

// Fit downscales src to fit maxWidth x maxHeight, keeping the aspect ratio.
// Images already inside the box are returned unchanged.
func Fit(src image.Image, maxWidth, maxHeight int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || maxHeight <= 0 || (b.Dx() <= maxWidth && b.Dy() <= maxHeight) {
		return src
	}
	return imaging.Fit(src, maxWidth, maxHeight, imaging.Lanczos)
}

// Decode reads an image in any registered format, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Open reads an image file.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// Save writes img to path in the format implied by its extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
