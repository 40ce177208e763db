package generators

import (
	"errors"
	"math"
	"testing"
)

func generate(t *testing.T, freq float64, ratio int, phase float64) *Buffer {
	t.Helper()

	p := DefaultParameters()
	p.BaseFreq = freq
	p.Ratio = ratio
	p.PhaseDeg = phase

	b, err := Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestGenerateShapeAndRange(t *testing.T) {
	for _, tt := range []struct {
		freq  float64
		ratio int
		phase float64
	}{
		{500, 3, 45},
		{700, 2, 0},
		{1000, 1, 90},
		{441.3, 5, -30},
		{20, 7, 720},
	} {
		b := generate(t, tt.freq, tt.ratio, tt.phase)

		x, y := b.X(), b.Y()
		if len(x) != len(y) || len(x) != b.Len() {
			t.Fatalf("Expected equal lengths %d, got x=%d y=%d", b.Len(), len(x), len(y))
		}

		for i := range x {
			if x[i] < -1 || x[i] > 1 || y[i] < -1 || y[i] > 1 {
				t.Fatalf("%+v: sample %d out of range: (%g, %g)", tt, i, x[i], y[i])
			}
		}
	}
}

func TestLoopContinuity(t *testing.T) {
	for _, tt := range []struct {
		freq  float64
		ratio int
	}{
		{1000, 1},
		{500, 3},
		{700, 2},
		{441.3, 4},
	} {
		b := generate(t, tt.freq, tt.ratio, 33)

		n := b.Len()
		f := b.Frequency()
		sr := float64(b.SampleRate())
		phase := b.Params().PhaseDeg * math.Pi / 180

		// every stored frame follows the unreduced waveform at b.Frequency()
		wave := func(i int) (float64, float64) {
			x := math.Sin(2 * math.Pi * f * float64(i) / sr)
			y := math.Sin(2*math.Pi*float64(tt.ratio)*f*float64(i)/sr + phase)
			return x, y
		}
		for i := 0; i < n; i++ {
			x, y := wave(i)
			if fr := b.Frame(i); math.Abs(fr[0]-x) > 1e-9 || math.Abs(fr[1]-y) > 1e-9 {
				t.Fatalf("%+v: frame %d: expected (%g, %g), got %v", tt, i, x, y, fr)
			}
		}

		// one sample past the end lands back on frame 0
		xn, yn := wave(n)
		first := b.Frame(0)
		if math.Abs(first[0]-xn) > 1e-6 || math.Abs(first[1]-yn) > 1e-6 {
			t.Errorf("%+v: expected %v at the wrap point, got (%g, %g)", tt, first, xn, yn)
		}
	}
}

func TestLoopContinuityDetectsOpenLoop(t *testing.T) {
	// 69 samples at the nominal 700 Hz do not close a cycle
	const n, f, sr = 69, 700.0, 48000.0

	x0 := math.Sin(0)
	xn := math.Sin(2 * math.Pi * f * n / sr)
	if math.Abs(xn-x0) < 1e-6 {
		t.Fatalf("Expected a phase jump at the wrap point, got %g", xn-x0)
	}

	// the synthesized loop snaps to 48000/69 Hz and closes
	b := generate(t, f, 1, 0)
	if b.Len() != n {
		t.Fatalf("Expected %d samples, got %d", n, b.Len())
	}
	if xs := math.Sin(2 * math.Pi * b.Frequency() * n / sr); math.Abs(xs-x0) > 1e-6 {
		t.Errorf("Expected the snapped loop to close, got %g", xs)
	}
}

// zero crossings going upwards, counted over one loop including the wrap
func risingCrossings(s []float64) int {
	n := 0
	for i := range s {
		prev := s[(i+len(s)-1)%len(s)]
		if prev < 0 && s[i] >= 0 {
			n++
		}
	}
	return n
}

func TestRatio(t *testing.T) {
	for ratio := 1; ratio <= 6; ratio++ {
		b := generate(t, 250, ratio, 10)

		cx := risingCrossings(b.X())
		cy := risingCrossings(b.Y())
		if cx != 1 {
			t.Errorf("ratio %d: expected 1 X cycle, got %d", ratio, cx)
		}
		if cy != ratio*cx {
			t.Errorf("ratio %d: expected %d Y cycles, got %d", ratio, ratio*cx, cy)
		}
	}
}

func TestCircle(t *testing.T) {
	b := generate(t, 1000, 1, 90)

	if b.Len() != 48 {
		t.Errorf("Expected 48 samples, got %d", b.Len())
	}
	if b.Frequency() != 1000 {
		t.Errorf("Expected 1000 Hz, got %g", b.Frequency())
	}

	for i := 0; i < b.Len(); i++ {
		f := b.Frame(i)
		if r := f[0]*f[0] + f[1]*f[1]; math.Abs(r-1) > 1e-9 {
			t.Errorf("sample %d: expected radius 1, got %g", i, r)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := generate(t, 441.3, 3, 17.5)
	b := generate(t, 441.3, 3, 17.5)

	ax, ay, bx, by := a.X(), a.Y(), b.X(), b.Y()
	if len(ax) != len(bx) {
		t.Fatalf("Expected equal lengths, got %d and %d", len(ax), len(bx))
	}
	for i := range ax {
		if math.Float64bits(ax[i]) != math.Float64bits(bx[i]) || math.Float64bits(ay[i]) != math.Float64bits(by[i]) {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestPhaseNormalized(t *testing.T) {
	a := generate(t, 1000, 2, -90)
	b := generate(t, 1000, 2, 270)

	if a.Params().PhaseDeg != 270 {
		t.Errorf("Expected phase 270, got %g", a.Params().PhaseDeg)
	}
	for i := 0; i < a.Len(); i++ {
		if a.Frame(i) != b.Frame(i) {
			t.Fatalf("sample %d: expected %v, got %v", i, b.Frame(i), a.Frame(i))
		}
	}
}

func TestGenerateRejects(t *testing.T) {
	for _, p := range []Parameters{
		{BaseFreq: 0, Ratio: 1, SampleRate: 48000},
		{BaseFreq: 1000, Ratio: 0, SampleRate: 48000},
		{BaseFreq: 1000, Ratio: 1, SampleRate: 0},
		{BaseFreq: 20000, Ratio: 1, PhaseDeg: 90, SampleRate: 48000},
		{BaseFreq: 11900, Ratio: 2, PhaseDeg: 90, SampleRate: 48000},
		{BaseFreq: 7700, Ratio: 3, PhaseDeg: 90, SampleRate: 48000},
	} {
		if _, err := Generate(p); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%+v: expected ErrInvalidParameters, got %v", p, err)
		}
	}
}

func TestSynthesizeRejectsLength(t *testing.T) {
	if _, err := Synthesize(DefaultParameters(), 1); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("Expected ErrInvalidParameters, got %v", err)
	}

	p := DefaultParameters()
	p.Ratio = 3
	if _, err := Synthesize(p, 6); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("Expected ErrInvalidParameters for y on nyquist, got %v", err)
	}
}

func TestFramesIsCopy(t *testing.T) {
	b := generate(t, 1000, 1, 90)

	frames := b.Frames()
	frames[0] = [2]float64{5, 5}
	if b.Frame(0) == frames[0] {
		t.Error("Expected Frames to return a copy")
	}
}
