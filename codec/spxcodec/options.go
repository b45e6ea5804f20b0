package spxcodec

import (
	"github.com/cocosip/go-superpixel/codec"
	"github.com/cocosip/go-superpixel/internal/logx"
	"github.com/cocosip/go-superpixel/pyramid"
)

// Options contains encoding options for spx codecs
type Options struct {
	// Levels caps the pyramid depth. 0 decomposes down to 1x1.
	Levels int

	// Edge selects how odd sizes are handled
	Edge pyramid.EdgePolicy

	// Workers is the number of goroutines per level
	Workers int

	// CompressionLevel is the zstd level for the compressed codec.
	// 0 selects the default.
	CompressionLevel int

	// Logger receives per-level debug lines
	Logger logx.Logger
}

// Validate validates the options. A nil *Options means the defaults.
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}
	if o.CompressionLevel < 0 || o.CompressionLevel > 22 {
		return codec.ErrInvalidParameter
	}
	return o.pyramidOptions().Validate()
}

func (o *Options) pyramidOptions() pyramid.Options {
	return pyramid.Options{
		Edge:      o.Edge,
		MaxLevels: o.Levels,
		Workers:   o.Workers,
		Logger:    o.Logger,
	}
}
