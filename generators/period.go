package generators

import (
	"math"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

// MaxLoopLength caps the loop at about 87 seconds of 48kHz audio.
const MaxLoopLength = 1 << 22

// Resolve returns the number of samples in one loop of the figure.
//
// X closes after round(sr/baseFreq) samples, and Y, running at an integer
// multiple of X, closes on the same boundary. The loop is never shorter than 2
// samples, and must leave Y below the nyquist limit after rounding.
func Resolve(baseFreq float64, ratio int, sr beep.SampleRate) (int, error) {
	if math.IsNaN(baseFreq) || math.IsInf(baseFreq, 0) || baseFreq <= 0 {
		return 0, errors.Wrapf(ErrInvalidParameters, "base frequency must be positive, got %g", baseFreq)
	}
	if ratio <= 0 {
		return 0, errors.Wrapf(ErrInvalidParameters, "ratio must be a positive integer, got %d", ratio)
	}
	if sr <= 0 {
		return 0, errors.Wrapf(ErrInvalidParameters, "sample rate must be positive, got %d", sr)
	}

	cycle := math.Round(float64(sr) / baseFreq)
	if cycle > MaxLoopLength {
		return 0, errors.Wrapf(ErrInvalidParameters, "base frequency %g is too low for sample rate %d: loop would need %.0f samples (max %d)", baseFreq, sr, cycle, MaxLoopLength)
	}

	length := int(cycle)
	if length < 2 {
		length = 2
	}
	if err := checkNyquist(length, ratio, sr); err != nil {
		return 0, err
	}
	return length, nil
}

// checkNyquist rejects loops where Y, at ratio*sr/length, lands at or above
// half the sample rate.
func checkNyquist(length, ratio int, sr beep.SampleRate) error {
	if length <= 2*ratio {
		return errors.Wrapf(ErrInvalidParameters, "loop of %d samples puts y at %g Hz (ratio %d), at or above the nyquist limit of %d", length, float64(ratio)*float64(sr)/float64(length), ratio, sr/2)
	}
	return nil
}
