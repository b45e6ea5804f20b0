package colorspace

// BT.601 luma weights.
const (
	kr = 0.299
	kg = 0.587
	kb = 0.114
)

// YUV chroma scale factors.
const (
	uScale = 0.492
	vScale = 0.877
)

func luma(r, g, b float64) float64 {
	return kr*r + kg*g + kb*b
}

func rgbToYCbCr(in, out []float64, s scale) {
	r, g, b := in[0], in[1], in[2]
	out[0] = luma(r, g, b)
	out[1] = s.mid - 0.168736*r - 0.331264*g + 0.5*b
	out[2] = s.mid + 0.5*r - 0.418688*g - 0.081312*b
}

func yCbCrToRGB(in, out []float64, s scale) {
	y, cb, cr := in[0], in[1]-s.mid, in[2]-s.mid
	out[0] = y + 1.402*cr
	out[1] = y - 0.344136*cb - 0.714136*cr
	out[2] = y + 1.772*cb
}

func rgbToYUV(in, out []float64, s scale) {
	r, g, b := in[0], in[1], in[2]
	y := luma(r, g, b)
	out[0] = y
	out[1] = s.mid + uScale*(b-y)
	out[2] = s.mid + vScale*(r-y)
}

func yuvToRGB(in, out []float64, s scale) {
	y, u, v := in[0], in[1]-s.mid, in[2]-s.mid
	b := y + u/uScale
	r := y + v/vScale
	out[0] = r
	out[1] = (y - kr*r - kb*b) / kg
	out[2] = b
}

func rgbToRGBA(in, out []float64, s scale) {
	copy(out, in[:3])
	out[3] = s.opaque
}

func rgbaToRGB(in, out []float64, _ scale) {
	copy(out, in[:3])
}

func rgbToLuma(in, out []float64, _ scale) {
	out[0] = luma(in[0], in[1], in[2])
}

func lumaToRGB(in, out []float64, _ scale) {
	out[0], out[1], out[2] = in[0], in[0], in[0]
}

func firstChannel(in, out []float64, _ scale) {
	out[0] = in[0]
}
