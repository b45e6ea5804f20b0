package pyramid

// Band identifies one of the four quadrants of a decomposition level.
type Band int

const (
	Average Band = iota
	Vertical
	Horizontal
	Diagonal
)

var bandNames = [...]string{"average", "vertical", "horizontal", "diagonal"}

func (b Band) String() string {
	if b >= 0 && int(b) < len(bandNames) {
		return bandNames[b]
	}
	return "unknown"
}

// Bands lists every band in storage order.
func Bands() []Band {
	return []Band{Average, Vertical, Horizontal, Diagonal}
}

// Origin returns the top-left corner of the band inside a level of size
// width x height (both even): average top-left, vertical top-right,
// horizontal bottom-left, diagonal bottom-right.
func (b Band) Origin(width, height int) (x, y int) {
	hw, hh := width/2, height/2
	switch b {
	case Vertical:
		return hw, 0
	case Horizontal:
		return 0, hh
	case Diagonal:
		return hw, hh
	}
	return 0, 0
}

// halve returns the size of the average plane of a level built from a
// source dimension n, padding odd sizes up first.
func halve(n int) int {
	return (n + 1) / 2
}

// padded rounds n up to even.
func padded(n int) int {
	return n + n&1
}

// LevelDimensions returns the size of the average plane after the given
// number of levels, halving odd sizes upwards as EdgeReplicate does.
func LevelDimensions(width, height, levels int) (w, h int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	w, h = width, height
	for i := 0; i < levels; i++ {
		if w == 1 && h == 1 {
			break
		}
		w, h = halve(w), halve(h)
	}
	return w, h
}

// MaxDepth returns how many levels Build produces for a width x height image
// under the given policy when MaxLevels is 0.
func MaxDepth(width, height int, edge EdgePolicy) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	depth := 0
	w, h := width, height
	for w > 1 || h > 1 {
		if edge == EdgeReject && (w&1 != 0 || h&1 != 0) {
			break
		}
		w, h = halve(w), halve(h)
		depth++
	}
	return depth
}
