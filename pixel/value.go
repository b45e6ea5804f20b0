package pixel

import "fmt"

// MaxChannels is the largest channel count a Value can hold.
const MaxChannels = 4

// Value is a fixed tuple of channels. It is passed by value and its channel
// count never changes after construction.
type Value[T Channel] struct {
	n  uint8
	ch [MaxChannels]T
}

// New builds a value from its channels.
func New[T Channel](channels ...T) (Value[T], error) {
	if len(channels) == 0 || len(channels) > MaxChannels {
		return Value[T]{}, fmt.Errorf("%d channels: %w", len(channels), ErrInvalidChannelCount)
	}
	v := Value[T]{n: uint8(len(channels))}
	copy(v.ch[:], channels)
	return v, nil
}

// Zero returns the all-zero value with n channels.
func Zero[T Channel](n int) (Value[T], error) {
	if n <= 0 || n > MaxChannels {
		return Value[T]{}, fmt.Errorf("%d channels: %w", n, ErrInvalidChannelCount)
	}
	return Value[T]{n: uint8(n)}, nil
}

// Len returns the channel count.
func (v Value[T]) Len() int {
	return int(v.n)
}

// Channel returns channel i.
func (v Value[T]) Channel(i int) (T, error) {
	if i < 0 || i >= int(v.n) {
		return 0, fmt.Errorf("channel %d of %d: %w", i, v.n, ErrChannelIndexOutOfRange)
	}
	return v.ch[i], nil
}

// At returns channel i without a range check against the channel count.
// Indices past the count read as zero.
func (v Value[T]) At(i int) T {
	return v.ch[i]
}

// Channels returns a copy of the channels.
func (v Value[T]) Channels() []T {
	out := make([]T, v.n)
	copy(out, v.ch[:v.n])
	return out
}

// Equal compares channel count and every channel.
func (v Value[T]) Equal(o Value[T]) bool {
	if v.n != o.n {
		return false
	}
	for i := 0; i < int(v.n); i++ {
		if v.ch[i] != o.ch[i] {
			return false
		}
	}
	return true
}

// with returns a copy of v with channel i replaced. Callers guarantee i < Len.
func (v Value[T]) with(i int, c T) Value[T] {
	v.ch[i] = c
	return v
}

// With returns a copy of v with channel i set to c.
func (v Value[T]) With(i int, c T) (Value[T], error) {
	if i < 0 || i >= int(v.n) {
		return v, fmt.Errorf("channel %d of %d: %w", i, v.n, ErrChannelIndexOutOfRange)
	}
	return v.with(i, c), nil
}

func (v Value[T]) String() string {
	return fmt.Sprint(v.ch[:v.n])
}
