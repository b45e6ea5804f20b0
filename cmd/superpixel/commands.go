package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cocosip/go-superpixel/codec"
	"github.com/cocosip/go-superpixel/codec/spxcodec"
	"github.com/cocosip/go-superpixel/dicomio"
	"github.com/cocosip/go-superpixel/imageio"
	"github.com/cocosip/go-superpixel/internal/logx"
	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/raster"
	"github.com/cocosip/go-superpixel/spx"
)

// planeNames are the file names of split planes.
var planeNames = map[pixel.Kind]string{
	pixel.Luma: "Luma",
	pixel.Cb:   "Cb",
	pixel.Cr:   "Cr",
	pixel.U:    "U",
	pixel.V:    "V",
}

func newSplitCmd(a *app) *cobra.Command {
	var kindName string
	cmd := &cobra.Command{
		Use:   "split <image> <outdir>",
		Short: "Split an image into Luma/Cb/Cr (or Luma/U/V) grayscale planes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := pixel.ParseKind(kindName)
			if err != nil {
				return err
			}
			if len(kind.Planes()) != kind.Channels() {
				return fmt.Errorf("kind %s has no named planes", kind)
			}
			src, err := imageio.Open(args[0])
			if err != nil {
				return err
			}
			img, err := imageio.FromImage(src, kind)
			if err != nil {
				return err
			}
			planes, err := raster.SplitChannels(img)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(args[1], 0o755); err != nil {
				return err
			}
			for i, plane := range planes {
				gray, err := imageio.ToImage(plane, pixel.Luma)
				if err != nil {
					return err
				}
				path := filepath.Join(args[1], planeNames[kind.Planes()[i]]+".png")
				if err := imageio.Save(gray, path); err != nil {
					return err
				}
				a.log.LogPrintf(logx.INFO, "saved %s", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "ycbcr", "ycbcr or yuv")
	return cmd
}

// encodeFlags mirrors EncodeCfg on the command line.
type encodeFlags struct {
	EncodeCfg
}

func (f *encodeFlags) register(cmd *cobra.Command, withImage bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.Codec, "codec", "", "codec name or UID")
	fl.IntVar(&f.Levels, "levels", 0, "maximum pyramid levels, 0 for all")
	fl.StringVar(&f.Edge, "edge", "", "odd size policy: reject or replicate")
	fl.IntVar(&f.Workers, "workers", 0, "goroutines per level")
	fl.IntVar(&f.CompressionLevel, "compression-level", 0, "zstd level, 0 for default")
	if withImage {
		fl.StringVar(&f.Kind, "kind", "", "pixel kind: luma, rgb, rgba, ycbcr or yuv")
		fl.StringVar(&f.Type, "type", "", "channel type: u8, i8, i16 or f32 (u8 and i8 clip negative differences)")
		fl.IntVar(&f.MaxSize, "max-size", 0, "downscale images larger than this, 0 to keep")
	}
}

// apply overrides cfg with the flags given on the command line.
func (f *encodeFlags) apply(cmd *cobra.Command, cfg EncodeCfg) EncodeCfg {
	fl := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fl.Changed(name) {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v int) {
		if fl.Changed(name) {
			*dst = v
		}
	}
	set("codec", &cfg.Codec, f.Codec)
	set("edge", &cfg.Edge, f.Edge)
	set("kind", &cfg.Kind, f.Kind)
	set("type", &cfg.Type, f.Type)
	setInt("levels", &cfg.Levels, f.Levels)
	setInt("workers", &cfg.Workers, f.Workers)
	setInt("compression-level", &cfg.CompressionLevel, f.CompressionLevel)
	setInt("max-size", &cfg.MaxSize, f.MaxSize)
	return cfg
}

func (a *app) encode(ec parsedEncode, params codec.EncodeParams, out string) error {
	c, err := codec.Get(ec.Codec)
	if err != nil {
		return err
	}
	params.Options = &spxcodec.Options{
		Levels:           ec.Levels,
		Edge:             ec.edge,
		Workers:          ec.Workers,
		CompressionLevel: ec.CompressionLevel,
		Logger:           a.log,
	}
	data, err := c.Encode(params)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	a.log.LogPrintf(logx.INFO, "%s: %dx%d %s %s with %s, %d bytes",
		out, params.Width, params.Height, params.Kind, params.SampleType, c.Name(), len(data))
	return nil
}

func newEncodeCmd(a *app) *cobra.Command {
	var f encodeFlags
	cmd := &cobra.Command{
		Use:   "encode <image> <out.spx>",
		Short: "Decompose an image into a superpixel pyramid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := f.apply(cmd, a.cfg.Encode).parse()
			if err != nil {
				return err
			}
			src, err := imageio.Open(args[0])
			if err != nil {
				return err
			}
			src = imageio.Fit(src, ec.MaxSize, ec.MaxSize)
			img, err := imageio.FromImage(src, ec.kind)
			if err != nil {
				return err
			}
			data, err := pixelData(img, ec.typ)
			if err != nil {
				return err
			}
			return a.encode(ec, codec.EncodeParams{
				PixelData:  data,
				Width:      img.Width(),
				Height:     img.Height(),
				Components: img.Channels(),
				SampleType: ec.typ,
				Kind:       ec.kind,
			}, args[1])
		},
	}
	f.register(cmd, true)
	return cmd
}

func newDicomCmd(a *app) *cobra.Command {
	var f encodeFlags
	var frame int
	cmd := &cobra.Command{
		Use:   "dicom <in.dcm> <out.spx>",
		Short: "Decompose one frame of an uncompressed DICOM file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := f.apply(cmd, a.cfg.Encode).parse()
			if err != nil {
				return err
			}
			file, err := dicomio.Open(args[0])
			if err != nil {
				return err
			}
			st, err := dicomio.SampleType(file.Info)
			if err != nil {
				return err
			}
			kind, err := dicomio.KindOf(file.Info)
			if err != nil {
				return err
			}
			data, err := dicomFrame(file, st, frame)
			if err != nil {
				return err
			}
			a.log.LogPrintf(logx.DEBUG, "%s: frame %d of %d, %s %s",
				args[0], frame, file.FrameCount(), file.Info.PhotometricInterpretation, st)
			return a.encode(ec, codec.EncodeParams{
				PixelData:  data,
				Width:      file.Info.Width,
				Height:     file.Info.Height,
				Components: file.Info.SamplesPerPixel,
				SampleType: st,
				Kind:       kind,
			}, args[1])
		},
	}
	f.register(cmd, false)
	cmd.Flags().IntVar(&frame, "frame", 0, "frame index")
	return cmd
}

func dicomFrameAs[T pixel.Channel](file *dicomio.File, frame int) ([]byte, error) {
	img, err := dicomio.ReadFrame[T](file, file.Info, frame)
	if err != nil {
		return nil, err
	}
	return codec.EncodeSamples(img.Samples()), nil
}

func dicomFrame(file *dicomio.File, st pixel.ChannelType, frame int) ([]byte, error) {
	switch st {
	case pixel.U8:
		return dicomFrameAs[uint8](file, frame)
	case pixel.I8:
		return dicomFrameAs[int8](file, frame)
	case pixel.I16:
		return dicomFrameAs[int16](file, frame)
	}
	return nil, fmt.Errorf("channel type %s: %w", st, dicomio.ErrUnsupported)
}

func newDecodeCmd(a *app) *cobra.Command {
	var codecName string
	cmd := &cobra.Command{
		Use:   "decode <in.spx> <out image>",
		Short: "Reconstruct an image from a superpixel pyramid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, err := codec.Get(codecName)
			if err != nil {
				return err
			}
			res, err := c.Decode(data)
			if err != nil {
				return err
			}
			img, err := decodedImage(res)
			if err != nil {
				return err
			}
			out, err := imageio.ToImage(img, displayKind(res.Kind, res.Components))
			if err != nil {
				return err
			}
			if err := imageio.Save(out, args[1]); err != nil {
				return err
			}
			a.log.LogPrintf(logx.INFO, "%s: %dx%d from %d levels", args[1], res.Width, res.Height, res.Levels)
			return nil
		},
	}
	cmd.Flags().StringVar(&codecName, "codec", "spx-raw", "codec name or UID")
	return cmd
}

func saveLevels[T pixel.Channel](a *app, data []byte, outdir string) error {
	p, _, err := spx.Read[T](bytes.NewReader(data))
	if err != nil {
		return err
	}
	save := func(img *raster.Image[T], name string) error {
		for c := 0; c < img.Channels(); c++ {
			gray, err := imageio.Visualize(img, c)
			if err != nil {
				return err
			}
			path := filepath.Join(outdir, fmt.Sprintf("%s_c%d.png", name, c))
			if err := imageio.Save(gray, path); err != nil {
				return err
			}
			a.log.LogPrintf(logx.DEBUG, "saved %s", path)
		}
		return nil
	}
	for i, lvl := range p.Levels() {
		if err := save(lvl.Coefficients(), fmt.Sprintf("level%02d", i)); err != nil {
			return err
		}
	}
	if err := save(p.Residual(), "residual"); err != nil {
		return err
	}
	a.log.LogPrintf(logx.INFO, "saved %d levels to %s", p.Len(), outdir)
	return nil
}

func newLevelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levels <in.spx> <outdir>",
		Short: "Render every pyramid level as grayscale images",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := spx.ReadHeader(bytes.NewReader(data))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(args[1], 0o755); err != nil {
				return err
			}
			switch h.SampleType() {
			case pixel.U8:
				return saveLevels[uint8](a, data, args[1])
			case pixel.I8:
				return saveLevels[int8](a, data, args[1])
			case pixel.I16:
				return saveLevels[int16](a, data, args[1])
			case pixel.F32:
				return saveLevels[float32](a, data, args[1])
			}
			return fmt.Errorf("channel type %s: %w", h.SampleType(), codec.ErrUnsupportedFormat)
		},
	}
}

func newCodecsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codecs",
		Short: "List registered codecs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sb strings.Builder
			for _, c := range codec.List() {
				fmt.Fprintf(&sb, "%-10s %s\n", c.Name(), c.UID())
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}
}
