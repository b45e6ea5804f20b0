package codec

import "github.com/cocosip/go-superpixel/pixel"

// Codec is the universal interface for all pyramid codecs
type Codec interface {
	// Encode decomposes pixel data and serializes the pyramid
	Encode(params EncodeParams) ([]byte, error)

	// Decode deserializes a pyramid and reconstructs the pixel data
	Decode(data []byte) (*DecodeResult, error)

	// UID returns the unique identifier (a private transfer syntax style UID)
	UID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte            // Raw little-endian interleaved samples
	Width      int               // Image width
	Height     int               // Image height
	Components int               // Number of channels per pixel
	SampleType pixel.ChannelType // Type of each sample
	Kind       pixel.Kind        // Meaning of the channels, 0 if unknown
	Options    Options           // Codec-specific options
}

// Validate checks the shape of the parameters against the pixel data.
func (p EncodeParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return pixel.ErrInvalidDimension
	}
	if p.Components <= 0 || p.Components > pixel.MaxChannels {
		return pixel.ErrInvalidChannelCount
	}
	if !p.SampleType.Valid() {
		return ErrUnsupportedFormat
	}
	if p.Kind != 0 && p.Kind.Channels() != p.Components {
		return pixel.ErrChannelCountMismatch
	}
	if len(p.PixelData) != p.Width*p.Height*p.Components*p.SampleType.Size() {
		return ErrInvalidParameter
	}
	if p.Options != nil {
		return p.Options.Validate()
	}
	return nil
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte            // Decoded little-endian samples
	Width      int               // Image width
	Height     int               // Image height
	Components int               // Number of channels per pixel
	SampleType pixel.ChannelType // Type of each sample
	Kind       pixel.Kind        // Meaning of the channels, 0 if unknown
	Levels     int               // Number of pyramid levels in the stream
}
