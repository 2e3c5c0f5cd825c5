package ogg

// CRC-32 with polynomial 0x04C11DB7, no reflection, zero init.
// Not the same as hash/crc32 IEEE.
var crcTable [256]uint32

func init() {
	const poly = 0x04C11DB7
	for i := range crcTable {
		crc := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		crcTable[i] = crc
	}
}

func crcUpdate(crc uint32, b []byte) uint32 {
	for _, v := range b {
		crc = crc<<8 ^ crcTable[byte(crc>>24)^v]
	}
	return crc
}

// Checksum computes the page CRC with the checksum field taken as zero
func Checksum(page []byte) uint32 {
	if len(page) < HeaderSize {
		return 0
	}
	crc := crcUpdate(0, page[:22])
	crc = crcUpdate(crc, []byte{0, 0, 0, 0})
	return crcUpdate(crc, page[26:])
}

// Verify checks the stored checksum. Truncated pages never verify.
func (p PageHeader) Verify(b []byte) bool {
	if p.Truncated(b) {
		return false
	}
	return Checksum(b[p.Offset:p.Span().End()]) == p.Checksum
}
