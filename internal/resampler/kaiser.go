package resampler

import "math"

// besselI0 computes the modified Bessel function of the first kind, order
// zero, using the Abramowitz & Stegun polynomial approximations: a direct
// series for |x| <= 3.75 and an exponentially scaled asymptotic expansion
// above. Accuracy is far beyond what audio filter design needs.
func besselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < 3.75 {
		t := x / 3.75
		t *= t
		return 1.0 + t*(3.5156229+t*(3.0899424+t*(1.2067492+
			t*(0.2659732+t*(0.360768e-1+t*0.45813e-2)))))
	}

	t := 3.75 / ax
	p := 0.39894228 + t*(0.1328592e-1+t*(0.225319e-2+
		t*(-0.157565e-2+t*(0.916281e-2+t*(-0.2057706e-1+
			t*(0.2635537e-1+t*(-0.1647633e-1+t*0.392377e-2)))))))
	return math.Exp(ax) * p / math.Sqrt(ax)
}

// kaiserBeta derives the Kaiser window shape parameter from a stopband
// attenuation in dB, per the Kaiser & Schafer design formula.
func kaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > 50:
		return 0.1102 * (attenuation - 8.7)
	case attenuation >= 21:
		d := attenuation - 21
		return 0.5842*math.Pow(d, 0.4) + 0.07886*d
	default:
		return 0
	}
}

// kaiserWindow returns an n-point symmetric Kaiser window with shape beta.
func kaiserWindow(n int, beta float64) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	alpha := float64(n-1) / 2
	i0beta := besselI0(beta)
	for i := range w {
		x := (float64(i) - alpha) / alpha
		w[i] = besselI0(beta*math.Sqrt(1-x*x)) / i0beta
	}
	return w
}

// sinc is the normalized sinc function sin(pi x)/(pi x).
func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// designPhases builds the polyphase coefficient table for a windowed-sinc
// anti-aliasing filter. cutoff is the passband edge as a fraction of the
// input Nyquist frequency, half the one-sided tap count in input samples,
// and phases the number of fractional positions tabulated per input sample.
//
// The table has phases+1 rows so a lookup at fractional phase f can always
// interpolate linearly between row floor(f*phases) and the next one; row
// phases is the row-0 kernel shifted by one whole sample. Each row holds
// 2*half coefficients for input samples i0-half+1 .. i0+half around the
// output position, and is normalized to unit sum so DC passes at exactly
// unity gain regardless of cutoff.
func designPhases(cutoff, attenuation float64, half, phases int) [][]float64 {
	beta := kaiserBeta(attenuation)
	i0beta := besselI0(beta)
	span := float64(half)

	table := make([][]float64, phases+1)
	for q := range table {
		frac := float64(q) / float64(phases)
		row := make([]float64, 2*half)
		var sum float64
		for j := range row {
			// Offset from the output position to input sample
			// i0 - half + 1 + j, in input samples.
			u := frac - float64(j-half+1)
			var w float64
			if x := u / span; x > -1 && x < 1 {
				w = besselI0(beta*math.Sqrt(1-x*x)) / i0beta
			}
			row[j] = cutoff * sinc(cutoff*u) * w
			sum += row[j]
		}
		if sum != 0 {
			inv := 1 / sum
			for j := range row {
				row[j] *= inv
			}
		}
		table[q] = row
	}
	return table
}
