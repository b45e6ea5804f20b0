package pixel

// Convert changes the channel type of v. Integer targets receive floats
// rounded half away from zero; any result outside the target range fails
// with ErrOverflow. Integer to integer and integer to float conversions of
// in-range values are exact.
func Convert[S, D Channel](v Value[S]) (Value[D], error) {
	out := Value[D]{n: v.n}
	for i := 0; i < int(v.n); i++ {
		c, err := checkedFloat[D](float64(v.ch[i]))
		if err != nil {
			return Value[D]{}, err
		}
		out.ch[i] = c
	}
	return out, nil
}

// Clamp changes the channel type of v like Convert but saturates values
// outside the target range instead of failing.
func Clamp[S, D Channel](v Value[S]) Value[D] {
	out := Value[D]{n: v.n}
	for i := 0; i < int(v.n); i++ {
		out.ch[i] = ClampFloat[D](float64(v.ch[i]))
	}
	return out
}
