package bits

// Extract returns width bits of v starting at bit shift (LSB = 0).
// Multi-byte fields must be assembled big-endian first (see Uint16, Uint24).
// Bits above the width of v are silently dropped: width+shift must fit in v.
func Extract(v uint32, width, shift byte) uint32 {
	return v >> shift & (1<<width - 1)
}

// Uint16 assembles two bytes big-endian.
func Uint16(b []byte) uint32 {
	_ = b[1] // bounds
	return uint32(b[0])<<8 | uint32(b[1])
}

// Uint24 assembles three bytes big-endian.
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
