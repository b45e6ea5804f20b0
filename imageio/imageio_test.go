package imageio

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	return img
}

func TestFromImageRGB(t *testing.T) {
	img, err := FromImage(testImage(), pixel.RGB)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{
		255, 255, 255, 0, 0, 0,
		10, 20, 30, 100, 100, 100,
	}
	if diff := cmp.Diff(want, img.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestFromImagePlanes(t *testing.T) {
	luma, err := FromImage(testImage(), pixel.Luma)
	if err != nil {
		t.Fatal(err)
	}
	if luma.Channels() != 1 {
		t.Fatalf("luma channels = %d, want 1", luma.Channels())
	}
	if got := luma.Samples(); got[0] != 255 || got[1] != 0 || got[3] != 100 {
		t.Errorf("luma = %v", got)
	}

	cb, err := FromImage(testImage(), pixel.Cb)
	if err != nil {
		t.Fatal(err)
	}
	if got := cb.Samples(); got[0] != 128 || got[1] != 128 || got[3] != 128 {
		t.Errorf("cb of grays = %v, want 128", got)
	}
}

func TestToImage(t *testing.T) {
	src := testImage()
	img, err := FromImage(src, pixel.RGB)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToImage(img, pixel.RGB)
	if err != nil {
		t.Fatal(err)
	}
	nrgba, ok := out.(*image.NRGBA)
	if !ok {
		t.Fatalf("ToImage returned %T, want *image.NRGBA", out)
	}
	if diff := cmp.Diff(src.Pix, nrgba.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}

	gray, _ := raster.FromSamples[uint8](2, 1, 1, []uint8{3, 4})
	g, err := ToImage(gray, pixel.Luma)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.(*image.Gray); !ok {
		t.Errorf("ToImage(luma) returned %T, want *image.Gray", g)
	}

	if _, err := ToImage(gray, pixel.RGB); !errors.Is(err, pixel.ErrChannelCountMismatch) {
		t.Errorf("error = %v, want ErrChannelCountMismatch", err)
	}
}

func TestVisualize(t *testing.T) {
	i8, _ := raster.FromSamples[int8](3, 1, 1, []int8{-128, 0, 127})
	g, err := Visualize(i8, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint8{0, 128, 255}, g.Pix); diff != "" {
		t.Errorf("int8 mismatch (-want +got):\n%s", diff)
	}

	i16, _ := raster.FromSamples[int16](2, 1, 2, []int16{-32768, 1, 0, 2})
	g, err = Visualize(i16, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint8{0, 128}, g.Pix); diff != "" {
		t.Errorf("int16 mismatch (-want +got):\n%s", diff)
	}

	f, _ := raster.FromSamples[float32](2, 1, 1, []float32{0, 1})
	g, err = Visualize(f, 0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint8{0, 255}, g.Pix); diff != "" {
		t.Errorf("float mismatch (-want +got):\n%s", diff)
	}

	if _, err := Visualize(f, 1); !errors.Is(err, pixel.ErrChannelIndexOutOfRange) {
		t.Errorf("error = %v, want ErrChannelIndexOutOfRange", err)
	}
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(testImage(), path); err != nil {
		t.Fatal(err)
	}
	img, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromImage(img, pixel.RGBA)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(testImage().Pix, got.Samples()); diff != "" {
		t.Errorf("png round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Open of a missing file succeeded")
	}
}

func TestFit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	if got := Fit(src, 100, 100); got != image.Image(src) {
		t.Error("Fit resized an image that already fits")
	}
	b := Fit(src, 10, 10).Bounds()
	if b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("Fit bounds = %v, want 10x5", b)
	}
}
