package ddraw

// fill writes color over buf for a pixel format of bitCount bits. The byte
// pattern of color is tiled little-endian, so byte i takes bits
// [(i*8) mod bitCount, +8). fill reports false for bit depths that are not a
// multiple of eight and leaves buf untouched.
func fill(buf []byte, bitCount int, color uint32) bool {
	if bitCount == 8 || color == 0 {
		b := byte(color)
		for i := range buf {
			buf[i] = b
		}
		return true
	}

	if bitCount <= 0 || bitCount%8 != 0 {
		return false
	}

	bpp := bitCount / 8
	if bpp > 4 {
		return false
	}
	var pattern [4]byte
	for i := 0; i < bpp; i++ {
		pattern[i] = byte(color >> (i * 8))
	}
	for i := range buf {
		buf[i] = pattern[i%bpp]
	}
	return true
}
