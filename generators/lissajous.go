package generators

import (
	"math"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

// Buffer holds exactly one loop of a Lissajous figure. X is the left channel,
// Y the right one. A Buffer is never modified after Synthesize returns it, so
// it can be shared between a player and a renderer without locking.
type Buffer struct {
	params Parameters
	freq   float64
	x, y   []float64
}

// Generate validates p and synthesizes the shortest buffer that closes the
// figure.
func Generate(p Parameters) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	length, err := Resolve(p.BaseFreq, p.Ratio, p.SampleRate)
	if err != nil {
		return nil, err
	}

	return Synthesize(p, length)
}

// Synthesize renders length samples of both channels.
//
// X is generated at sr/length, the frequency that closes exactly once over
// length samples. This equals p.BaseFreq whenever it divides the sample rate;
// otherwise it is the nearest frequency whose cycle lands on the sample grid,
// which keeps the wrap point phase-continuous.
func Synthesize(p Parameters, length int) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if length < 2 || length > MaxLoopLength {
		return nil, errors.Wrapf(ErrInvalidParameters, "loop length must be in [2, %d], got %d", MaxLoopLength, length)
	}
	if err := checkNyquist(length, p.Ratio, p.SampleRate); err != nil {
		return nil, err
	}

	p = p.Normalize()
	b := &Buffer{
		params: p,
		freq:   float64(p.SampleRate) / float64(length),
		x:      make([]float64, length),
		y:      make([]float64, length),
	}
	for i := 0; i < length; i++ {
		b.x[i], b.y[i] = b.Eval(i)
	}

	return b, nil
}

// Eval computes the figure at sample index i, taken modulo Len().
func (b *Buffer) Eval(i int) (x, y float64) {
	n := len(b.x)
	k := i % n
	if k < 0 {
		k += n
	}
	turns := float64(k) / float64(n)

	phase := b.params.PhaseDeg * math.Pi / 180
	x = clamp(math.Sin(2 * math.Pi * turns))
	y = clamp(math.Sin(2*math.Pi*float64(b.params.Ratio)*turns + phase))
	return x, y
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func (b *Buffer) Len() int {
	return len(b.x)
}

func (b *Buffer) Params() Parameters {
	return b.params
}

// Frequency is sr/Len(), which may differ from Params().BaseFreq.
func (b *Buffer) Frequency() float64 {
	return b.freq
}

func (b *Buffer) Frame(i int) [2]float64 {
	return [2]float64{b.x[i], b.y[i]}
}

func (b *Buffer) X() []float64 {
	return append([]float64(nil), b.x...)
}

func (b *Buffer) Y() []float64 {
	return append([]float64(nil), b.y...)
}

// Frames returns a copy of the loop as interleaved stereo frames.
func (b *Buffer) Frames() [][2]float64 {
	frames := make([][2]float64, len(b.x))
	for i := range frames {
		frames[i] = b.Frame(i)
	}
	return frames
}

func (b *Buffer) SampleRate() beep.SampleRate {
	return b.params.SampleRate
}
