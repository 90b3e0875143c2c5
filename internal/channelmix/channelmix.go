// Package channelmix implements channel remapping: mono duplication to
// stereo and a DPL 5.1-to-stereo downmix. The matrix is accumulated in
// float64 and only rounded to the sample's precision at the very end, so
// six near-full-scale channels cannot overflow an intermediate sum.
package channelmix

// downmix is the DPL 5.1 -> stereo coefficient matrix, indexed
// [outChannel][inChannel] in L, R, C, LFE, Ls, Rs order.
var downmix = [2][6]float64{
	{1.0, 0, 0.707, 0.707, -0.8165, -0.5774},
	{0, 1.0, 0.707, 0.707, 0.5774, 0.8165},
}

const normalization = 0.2626

// MonoToStereo duplicates every sample of a single-channel buffer into both
// output channels. bytesPerSample must match the encoding's BytesPerSample;
// MonoToStereo does not interpret sample contents.
func MonoToStereo(mono []byte, bytesPerSample int) []byte {
	n := len(mono) / bytesPerSample
	out := make([]byte, len(mono)*2)
	for i := 0; i < n; i++ {
		src := mono[i*bytesPerSample : (i+1)*bytesPerSample]
		copy(out[i*2*bytesPerSample:], src)
		copy(out[i*2*bytesPerSample+bytesPerSample:], src)
	}
	return out
}

// DownmixToStereo folds interleaved 5.1 float32 samples (L, R, C, LFE, Ls,
// Rs per frame) into interleaved stereo float32 samples using the DPL
// downmix matrix.
func DownmixToStereo(in []float32) []float32 {
	frames := len(in) / 6
	out := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		frame := in[i*6 : i*6+6]
		for j := 0; j < 2; j++ {
			var acc float64
			for k := 0; k < 6; k++ {
				acc += downmix[j][k] * float64(frame[k]) * normalization
			}
			out[i*2+j] = clampFloat32(acc)
		}
	}
	return out
}

func clampFloat32(v float64) float32 {
	switch {
	case v > 1.0:
		return 1.0
	case v < -1.0:
		return -1.0
	default:
		return float32(v)
	}
}
