//go:build headless

package player

import (
	"time"

	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

type otoBackend struct{}

func Oto(latency time.Duration) Backend {
	return otoBackend{}
}

func (otoBackend) Open(sr beep.SampleRate, channels int) (Device, error) {
	return nil, errors.New("oto: built without audio support (headless)")
}
