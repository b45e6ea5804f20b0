package pixel

import "errors"

// Errors shared by the pixel, raster, block and pyramid packages.
var (
	// ErrInvalidDimension is returned when an image is created with a zero or negative size
	ErrInvalidDimension = errors.New("invalid image dimension")

	// ErrOutOfBounds is returned when a coordinate lies outside the image
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrOddDimension is returned when a transform needs even width and height
	ErrOddDimension = errors.New("odd image dimension")

	// ErrOddAnchor is returned when a block is addressed from an odd coordinate
	ErrOddAnchor = errors.New("block anchor is not even")

	// ErrChannelCountMismatch is returned when pixels or planes disagree on channel count
	ErrChannelCountMismatch = errors.New("channel count mismatch")

	// ErrChannelIndexOutOfRange is returned when a channel index is >= the channel count
	ErrChannelIndexOutOfRange = errors.New("channel index out of range")

	// ErrInvalidChannelCount is returned for channel counts outside 1..MaxChannels
	ErrInvalidChannelCount = errors.New("invalid channel count")

	// ErrDimensionMismatch is returned when two images must share a size and do not
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrOverflow is returned when a value does not fit the target channel type
	ErrOverflow = errors.New("channel value overflow")

	// ErrChannelTypeMismatch is returned when stored data does not match the requested channel type
	ErrChannelTypeMismatch = errors.New("channel type mismatch")

	// ErrUnsupportedConversion is returned for pixel kind pairs without a conversion
	ErrUnsupportedConversion = errors.New("unsupported pixel kind conversion")
)
