package player

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Alextopher/lisscope/generators"
	"github.com/faiface/beep"
	"github.com/pkg/errors"
)

type State int32

const (
	Idle State = iota
	Opening
	Streaming
	Stopping
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Opening:
		return "opening"
	case Streaming:
		return "streaming"
	case Stopping:
		return "stopping"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Options tunes a Session. The zero value is usable.
type Options struct {
	// ChunkFrames is the number of frames handed to the device per write.
	// Cancellation is noticed between writes. Defaults to 10ms of audio.
	ChunkFrames int

	// Duration stops playback after this much audio. Zero plays until the
	// context is cancelled.
	Duration time.Duration

	// Volume scales the output, in (0, 1]. Zero means full volume.
	Volume float64
}

func (o Options) withDefaults(sr beep.SampleRate) Options {
	if o.ChunkFrames <= 0 {
		o.ChunkFrames = sr.N(10 * time.Millisecond)
	}
	if o.ChunkFrames <= 0 {
		o.ChunkFrames = 1
	}
	if o.Volume <= 0 || o.Volume > 1 {
		o.Volume = 1
	}
	return o
}

// Session is one playback of a buffer on one device. A Session is used once:
// Open, Stream, then it is closed.
type Session struct {
	buf     *generators.Buffer
	dev     Device
	opts    Options
	state   int32
	written int64

	closeOnce sync.Once
	closeErr  error
}

// Open opens a device for buf. The returned session has not played anything
// yet; call Stream, or Close to give the device back.
func Open(backend Backend, buf *generators.Buffer, opts Options) (*Session, error) {
	if buf == nil {
		return nil, errors.Wrap(generators.ErrInvalidParameters, "player: nil buffer")
	}

	s := &Session{
		buf:  buf,
		opts: opts.withDefaults(buf.SampleRate()),
	}
	s.setState(Opening)

	dev, err := backend.Open(buf.SampleRate(), Channels)
	if err != nil {
		s.setState(Closed)
		return nil, &DeviceOpenError{Err: err}
	}
	s.dev = dev

	return s, nil
}

// Stream plays the buffer in a loop until ctx is done, the configured
// duration has played, or the device fails. Cancelling ctx is a normal stop
// and returns nil. The device is closed before Stream returns.
func (s *Session) Stream(ctx context.Context) (err error) {
	if !atomic.CompareAndSwapInt32(&s.state, int32(Opening), int32(Streaming)) {
		return ErrSessionUsed
	}

	defer func() {
		s.setState(Stopping)
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	var src beep.Streamer = generators.NewLoop(s.buf)
	if s.opts.Volume != 1 {
		src = &amplitude{streamer: src, amplitude: s.opts.Volume}
	}
	if s.opts.Duration > 0 {
		src = beep.Take(s.buf.SampleRate().N(s.opts.Duration), src)
	}

	chunk := make([][2]float64, s.opts.ChunkFrames)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, ok := src.Stream(chunk)
		if n > 0 {
			if err := s.dev.Write(chunk[:n]); err != nil {
				return &DeviceStreamError{Err: err}
			}
			atomic.AddInt64(&s.written, int64(n))
		}
		if !ok {
			return nil
		}
	}
}

// Close releases the device. It is safe to call more than once, but must not
// be called while Stream is running; cancel its context instead.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := s.dev.Close(); err != nil {
			s.closeErr = &DeviceStreamError{Err: errors.Wrap(err, "close")}
		}
		s.setState(Closed)
	})
	return s.closeErr
}

func (s *Session) State() State {
	return State(atomic.LoadInt32(&s.state))
}

func (s *Session) Written() int64 {
	return atomic.LoadInt64(&s.written)
}

func (s *Session) setState(st State) {
	atomic.StoreInt32(&s.state, int32(st))
}

// Play generates the figure for p and streams it on a device from backend
// until ctx is done. Invalid parameters are reported before the backend is
// touched.
func Play(ctx context.Context, backend Backend, p generators.Parameters, opts Options) error {
	buf, err := generators.Generate(p)
	if err != nil {
		return err
	}

	s, err := Open(backend, buf, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Stream(ctx)
}
