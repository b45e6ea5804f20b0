package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-superpixel/imageio"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/spx"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error", "--color", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeTestPNG(t *testing.T, dir string, w, h int) (string, *image.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: uint8(x*y + 7), A: 255})
		}
	}
	path := filepath.Join(dir, "in.png")
	require.NoError(t, imageio.Save(img, path))
	return path, img
}

func TestEncodeDecodeRGB(t *testing.T) {
	dir := t.TempDir()
	in, src := writeTestPNG(t, dir, 5, 3)
	spxPath := filepath.Join(dir, "out.spx")
	outPath := filepath.Join(dir, "out.png")

	for _, typ := range []string{"u8", "i16"} {
		_, err := run(t, "encode", "--kind", "rgb", "--type", typ, "--workers", "2", in, spxPath)
		require.NoError(t, err)

		data, err := os.ReadFile(spxPath)
		require.NoError(t, err)
		h, err := spx.ReadHeader(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, pixel.RGB, h.PixelKind())
		assert.True(t, h.Compressed())

		_, err = run(t, "decode", spxPath, outPath)
		require.NoError(t, err)

		got, err := imageio.Open(outPath)
		require.NoError(t, err)
		rgba, err := imageio.FromImage(got, pixel.RGBA)
		require.NoError(t, err)
		if typ == "i16" {
			assert.Equal(t, src.Pix, rgba.Samples(), "i16 round trip must be exact")
		} else {
			assert.Len(t, rgba.Samples(), len(src.Pix))
		}
	}
}

func TestEncodeDefaultTypeLossless(t *testing.T) {
	dir := t.TempDir()
	in, src := writeTestPNG(t, dir, 6, 4)
	spxPath := filepath.Join(dir, "out.spx")
	outPath := filepath.Join(dir, "out.png")

	_, err := run(t, "encode", "--kind", "rgb", in, spxPath)
	require.NoError(t, err)
	data, err := os.ReadFile(spxPath)
	require.NoError(t, err)
	h, err := spx.ReadHeader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, pixel.I16, h.SampleType())

	_, err = run(t, "decode", spxPath, outPath)
	require.NoError(t, err)
	got, err := imageio.Open(outPath)
	require.NoError(t, err)
	rgba, err := imageio.FromImage(got, pixel.RGBA)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, rgba.Samples())
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir, 4, 4)
	outdir := filepath.Join(dir, "planes")

	_, err := run(t, "split", in, outdir)
	require.NoError(t, err)
	for _, name := range []string{"Luma.png", "Cb.png", "Cr.png"} {
		_, err := os.Stat(filepath.Join(outdir, name))
		assert.NoError(t, err, name)
	}

	_, err = run(t, "split", "--kind", "rgb", in, outdir)
	assert.Error(t, err)
}

func TestLevels(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir, 4, 4)
	spxPath := filepath.Join(dir, "out.spx")
	outdir := filepath.Join(dir, "levels")

	_, err := run(t, "encode", "--kind", "luma", "--type", "f32", "--codec", "spx-raw", in, spxPath)
	require.NoError(t, err)
	_, err = run(t, "levels", spxPath, outdir)
	require.NoError(t, err)

	for _, name := range []string{"level00_c0.png", "level01_c0.png", "residual_c0.png"} {
		_, err := os.Stat(filepath.Join(outdir, name))
		assert.NoError(t, err, name)
	}
}

func TestEncodeRejectOdd(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir, 5, 3)
	_, err := run(t, "encode", "--edge", "reject", in, filepath.Join(dir, "out.spx"))
	assert.ErrorIs(t, err, pixel.ErrOddDimension)
}

func TestCodecs(t *testing.T) {
	out, err := run(t, "codecs")
	require.NoError(t, err)
	assert.Contains(t, out, "spx-raw")
	assert.Contains(t, out, "spx-zstd")
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "superpixel.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[encode]
codec = "spx-raw"
kind = "luma"
levels = 1
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "spx-raw", cfg.Encode.Codec)
	assert.Equal(t, 1, cfg.Encode.Levels)
	assert.Equal(t, DefaultConfig.Encode.Edge, cfg.Encode.Edge)

	ec, err := cfg.Encode.parse()
	require.NoError(t, err)
	assert.Equal(t, pixel.Luma, ec.kind)
	assert.Equal(t, pixel.I16, ec.typ)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("colour = \"on\"\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, cfg)
}
