package generators

import (
	"math"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

const (
	DefaultBaseFreq   = 1000.0
	DefaultRatio      = 1
	DefaultPhaseDeg   = 90.0
	DefaultSampleRate = beep.SampleRate(48000)
)

// ErrInvalidParameters is returned (wrapped) for every parameter that can not
// produce a figure. Match it with errors.Is.
var ErrInvalidParameters = errors.New("invalid parameters")

// Parameters describes a Lissajous figure. Y runs at Ratio times the frequency
// of X and is shifted by PhaseDeg degrees.
type Parameters struct {
	BaseFreq   float64
	Ratio      int
	PhaseDeg   float64
	SampleRate beep.SampleRate
}

// DefaultParameters draws a circle: 1:1 at 90 degrees.
func DefaultParameters() Parameters {
	return Parameters{
		BaseFreq:   DefaultBaseFreq,
		Ratio:      DefaultRatio,
		PhaseDeg:   DefaultPhaseDeg,
		SampleRate: DefaultSampleRate,
	}
}

// Validate checks p before anything is synthesized or opened.
func (p Parameters) Validate() error {
	if math.IsNaN(p.BaseFreq) || math.IsInf(p.BaseFreq, 0) || p.BaseFreq <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "base frequency must be positive, got %g", p.BaseFreq)
	}
	if p.Ratio <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "ratio must be a positive integer, got %d", p.Ratio)
	}
	if p.SampleRate <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "sample rate must be positive, got %d", p.SampleRate)
	}
	if math.IsNaN(p.PhaseDeg) || math.IsInf(p.PhaseDeg, 0) {
		return errors.Wrapf(ErrInvalidParameters, "phase must be finite, got %g", p.PhaseDeg)
	}

	sr := float64(p.SampleRate)
	if p.BaseFreq*2 >= sr {
		return errors.Wrapf(ErrInvalidParameters, "sample rate %d must be at least 2 times greater than base frequency %g", p.SampleRate, p.BaseFreq)
	}
	if float64(p.Ratio)*p.BaseFreq*2 >= sr {
		return errors.Wrapf(ErrInvalidParameters, "y frequency %g (ratio %d) is above the nyquist limit of %d", float64(p.Ratio)*p.BaseFreq, p.Ratio, p.SampleRate/2)
	}

	return nil
}

// Normalize returns a copy of p with PhaseDeg in [0, 360).
func (p Parameters) Normalize() Parameters {
	p.PhaseDeg = math.Mod(p.PhaseDeg, 360)
	if p.PhaseDeg < 0 {
		p.PhaseDeg += 360
	}
	// math.Mod(-1e-20, 360) + 360 rounds to 360
	if p.PhaseDeg >= 360 {
		p.PhaseDeg = 0
	}
	return p
}

// YFreq is the nominal frequency of the Y channel.
func (p Parameters) YFreq() float64 {
	return float64(p.Ratio) * p.BaseFreq
}

// MidiNoteToFreq converts a MIDI note number to hertz (A4 = 69 = 440 Hz).
func MidiNoteToFreq(note uint8) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12.0)
}
