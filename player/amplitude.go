package player

import "github.com/faiface/beep"

// amplitude scales both channels of the wrapped streamer.
type amplitude struct {
	streamer  beep.Streamer
	amplitude float64
}

func (g *amplitude) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= g.amplitude
		samples[i][1] *= g.amplitude
	}
	return n, ok
}

func (g *amplitude) Err() error {
	return g.streamer.Err()
}
