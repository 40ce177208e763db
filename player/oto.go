//go:build !headless

package player

import (
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/oto"
	"github.com/pkg/errors"
)

type otoBackend struct {
	latency time.Duration
}

// Oto returns a backend for the system's default output, with latency worth
// of audio buffered in the driver.
func Oto(latency time.Duration) Backend {
	return otoBackend{latency: latency}
}

func (b otoBackend) Open(sr beep.SampleRate, channels int) (Device, error) {
	bufferSize := sr.N(b.latency) * channels * bytesPerSample

	ctx, err := oto.NewContext(int(sr), channels, bytesPerSample, bufferSize)
	if err != nil {
		return nil, errors.Wrap(err, "oto: create context")
	}

	return &otoDevice{
		ctx:    ctx,
		player: ctx.NewPlayer(),
	}, nil
}

type otoDevice struct {
	ctx    *oto.Context
	player *oto.Player
	buf    []byte
}

func (d *otoDevice) Write(frames [][2]float64) error {
	d.buf = EncodeFrames(d.buf[:0], frames)

	_, err := d.player.Write(d.buf)
	return errors.Wrap(err, "oto: write")
}

func (d *otoDevice) Close() error {
	perr := d.player.Close()
	cerr := d.ctx.Close()
	if perr != nil {
		return errors.Wrap(perr, "oto: close player")
	}
	return errors.Wrap(cerr, "oto: close context")
}
