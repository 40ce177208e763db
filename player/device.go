// Package player streams a generators.Buffer to an audio device in a gapless
// loop.
package player

import (
	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

// Channels is the number of output channels: X on the left, Y on the right.
const Channels = 2

type Backend interface {
	Open(sr beep.SampleRate, channels int) (Device, error)
}

// Device is an open audio output. Write blocks until the device has accepted
// every frame, which is where playback waits for the sound card.
type Device interface {
	Write(frames [][2]float64) error
	Close() error
}

var (
	ErrDeviceOpen   = errors.New("audio device open failed")
	ErrDeviceStream = errors.New("audio device stream failed")
	ErrSessionUsed  = errors.New("player: session already used")
)

// DeviceOpenError reports a backend that could not open its device. It matches
// ErrDeviceOpen and unwraps to the backend's error.
type DeviceOpenError struct {
	Err error
}

func (e *DeviceOpenError) Error() string {
	return ErrDeviceOpen.Error() + ": " + e.Err.Error()
}

func (e *DeviceOpenError) Unwrap() error {
	return e.Err
}

func (e *DeviceOpenError) Is(target error) bool {
	return target == ErrDeviceOpen
}

// DeviceStreamError reports a device that failed while playing or closing.
// It matches ErrDeviceStream and unwraps to the device's error.
type DeviceStreamError struct {
	Err error
}

func (e *DeviceStreamError) Error() string {
	return ErrDeviceStream.Error() + ": " + e.Err.Error()
}

func (e *DeviceStreamError) Unwrap() error {
	return e.Err
}

func (e *DeviceStreamError) Is(target error) bool {
	return target == ErrDeviceStream
}
