package pixel

import (
	"fmt"
	"strings"
)

// Kind names the meaning of a pixel's channels.
type Kind uint8

const (
	Luma Kind = iota + 1
	Cb
	Cr
	U
	V
	RGB
	RGBA
	YCbCr
	YUV
)

var kindInfo = map[Kind]struct {
	name     string
	channels int
}{
	Luma:  {"luma", 1},
	Cb:    {"cb", 1},
	Cr:    {"cr", 1},
	U:     {"u", 1},
	V:     {"v", 1},
	RGB:   {"rgb", 3},
	RGBA:  {"rgba", 4},
	YCbCr: {"ycbcr", 3},
	YUV:   {"yuv", 3},
}

func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is a known pixel kind.
func (k Kind) Valid() bool {
	_, ok := kindInfo[k]
	return ok
}

// Channels returns the number of channels of the kind, or 0 for unknown kinds.
func (k Kind) Channels() int {
	return kindInfo[k].channels
}

// Planes returns the single-channel kinds a multi-channel kind splits into.
// Kinds without named planes (RGB, RGBA) return nil.
func (k Kind) Planes() []Kind {
	switch k {
	case YCbCr:
		return []Kind{Luma, Cb, Cr}
	case YUV:
		return []Kind{Luma, U, V}
	case Luma, Cb, Cr, U, V:
		return []Kind{k}
	}
	return nil
}

// ParseKind parses the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, info := range kindInfo {
		if info.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel kind %q", s)
}
