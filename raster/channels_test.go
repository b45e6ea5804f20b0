package raster

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cocosip/go-superpixel/pixel"
)

func rgbFixture(t *testing.T) *Image[uint8] {
	t.Helper()
	img, err := FromSamples[uint8](2, 2, 3, []uint8{
		10, 20, 30, 11, 21, 31,
		12, 22, 32, 13, 23, 33,
	})
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestSplitChannel(t *testing.T) {
	img := rgbFixture(t)

	tests := []struct {
		index int
		want  []uint8
	}{
		{0, []uint8{10, 11, 12, 13}},
		{1, []uint8{20, 21, 22, 23}},
		{2, []uint8{30, 31, 32, 33}},
	}
	for _, tt := range tests {
		plane, err := SplitChannel(img, tt.index)
		if err != nil {
			t.Fatalf("SplitChannel(%d) failed: %v", tt.index, err)
		}
		if plane.Channels() != 1 || plane.Width() != 2 || plane.Height() != 2 {
			t.Errorf("plane shape = %dx%dx%d", plane.Width(), plane.Height(), plane.Channels())
		}
		if diff := cmp.Diff(tt.want, plane.Samples()); diff != "" {
			t.Errorf("SplitChannel(%d) mismatch (-want +got):\n%s", tt.index, diff)
		}
	}

	if _, err := SplitChannel(img, 3); !errors.Is(err, pixel.ErrChannelIndexOutOfRange) {
		t.Errorf("SplitChannel(3) error = %v, want ErrChannelIndexOutOfRange", err)
	}
}

func TestMergeChannelsRoundTrip(t *testing.T) {
	img := rgbFixture(t)
	planes, err := SplitChannels(img)
	if err != nil {
		t.Fatal(err)
	}
	merged, err := MergeChannels(planes...)
	if err != nil {
		t.Fatal(err)
	}
	if !merged.Equal(img) {
		t.Errorf("merged samples = %v, want %v", merged.Samples(), img.Samples())
	}
}

func TestMergeChannelsErrors(t *testing.T) {
	a, _ := New[uint8](2, 2, 1)
	b, _ := New[uint8](2, 1, 1)
	c, _ := New[uint8](2, 2, 3)

	if _, err := MergeChannels(a, b); !errors.Is(err, pixel.ErrDimensionMismatch) {
		t.Errorf("size mismatch error = %v", err)
	}
	if _, err := MergeChannels(a, c); !errors.Is(err, pixel.ErrChannelCountMismatch) {
		t.Errorf("channel mismatch error = %v", err)
	}
	if _, err := MergeChannels[uint8](); !errors.Is(err, pixel.ErrInvalidChannelCount) {
		t.Errorf("empty merge error = %v", err)
	}
}

func TestConvertImage(t *testing.T) {
	src, _ := FromSamples[int16](2, 1, 1, []int16{-3, 300})

	if _, err := ConvertImage[int16, uint8](src); !errors.Is(err, pixel.ErrOverflow) {
		t.Errorf("ConvertImage error = %v, want ErrOverflow", err)
	}

	f, err := ConvertImage[int16, float32](src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float32{-3, 300}, f.Samples()); diff != "" {
		t.Errorf("ConvertImage mismatch (-want +got):\n%s", diff)
	}

	clamped := ClampImage[int16, uint8](src)
	if diff := cmp.Diff([]uint8{0, 255}, clamped.Samples()); diff != "" {
		t.Errorf("ClampImage mismatch (-want +got):\n%s", diff)
	}
}
