package player

const bytesPerSample = 2

// EncodeFrames appends frames to dst as interleaved signed 16-bit little-endian
// PCM. Samples outside [-1, 1] are clipped.
func EncodeFrames(dst []byte, frames [][2]float64) []byte {
	for _, f := range frames {
		for _, v := range f {
			if v < -1 {
				v = -1
			}
			if v > +1 {
				v = +1
			}
			s := int16(v * (1<<15 - 1))
			dst = append(dst, byte(s), byte(s>>8))
		}
	}
	return dst
}
