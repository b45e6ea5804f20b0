package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cocosip/go-superpixel/pixel"
	"github.com/cocosip/go-superpixel/pyramid"
)

// EncodeCfg holds the defaults of the encode and dicom commands.
type EncodeCfg struct {
	Codec            string `toml:"codec"`
	Kind             string `toml:"kind"`
	Type             string `toml:"type"`
	Levels           int    `toml:"levels"`
	Edge             string `toml:"edge"`
	Workers          int    `toml:"workers"`
	CompressionLevel int    `toml:"compression_level"`
	MaxSize          int    `toml:"max_size"`
}

// Config is the TOML configuration file layout.
type Config struct {
	LogLevel string    `toml:"log_level"`
	Color    string    `toml:"color"`
	Encode   EncodeCfg `toml:"encode"`
}

var DefaultConfig = Config{
	LogLevel: "info",
	Color:    "auto",
	Encode: EncodeCfg{
		Codec: "spx-zstd",
		Kind:  "ycbcr",
		Type:  "i16",
		Edge:  "replicate",
	},
}

// LoadConfig reads path on top of DefaultConfig. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// parsedEncode is EncodeCfg with its names resolved.
type parsedEncode struct {
	kind pixel.Kind
	typ  pixel.ChannelType
	edge pyramid.EdgePolicy
	EncodeCfg
}

func (c EncodeCfg) parse() (p parsedEncode, err error) {
	p.EncodeCfg = c
	if p.kind, err = pixel.ParseKind(c.Kind); err != nil {
		return
	}
	if p.typ, err = pixel.ParseChannelType(c.Type); err != nil {
		return
	}
	if p.edge, err = pyramid.ParseEdgePolicy(c.Edge); err != nil {
		return
	}
	if c.Levels < 0 || c.Workers < 0 || c.MaxSize < 0 {
		err = fmt.Errorf("negative levels, workers or max_size")
	}
	return
}
