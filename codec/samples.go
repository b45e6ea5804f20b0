package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-superpixel/pixel"
)

// DecodeSamples reinterprets little-endian pixel data as samples of type T.
func DecodeSamples[T pixel.Channel](data []byte) ([]T, error) {
	size := pixel.TypeOf[T]().Size()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%d bytes of %s samples: %w", len(data), pixel.TypeOf[T](), ErrInvalidParameter)
	}
	out := make([]T, len(data)/size)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeSamples serializes samples as little-endian pixel data.
func EncodeSamples[T pixel.Channel](samples []T) []byte {
	var buf bytes.Buffer
	buf.Grow(len(samples) * pixel.TypeOf[T]().Size())
	// Writes to a bytes.Buffer do not fail.
	_ = binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}
