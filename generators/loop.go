package generators

import "github.com/faiface/beep"

// Loop streams a Buffer forever. The cursor wraps modulo the buffer length,
// so the sample after the last one is always sample 0.
type Loop struct {
	buf *Buffer
	pos int
}

func NewLoop(buf *Buffer) *Loop {
	return &Loop{buf: buf}
}

var _ beep.Streamer = (*Loop)(nil)

func (l *Loop) Stream(samples [][2]float64) (n int, ok bool) {
	n = len(l.buf.x)
	for i := range samples {
		samples[i][0] = l.buf.x[l.pos]
		samples[i][1] = l.buf.y[l.pos]
		l.pos++
		if l.pos == n {
			l.pos = 0
		}
	}

	return len(samples), true
}

func (*Loop) Err() error {
	return nil
}

func (l *Loop) Position() int {
	return l.pos
}
