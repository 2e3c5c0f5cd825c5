package mp3

const (
	xingOffset    = 36
	lameTagOffset = 39
	lameTagEnd    = 177
)

func IsXing(b []byte, offset int) bool {
	return hasMarker(b, offset+xingOffset, "Xing")
}

func IsInfo(b []byte, offset int) bool {
	return hasMarker(b, offset+xingOffset, "Info")
}

func hasMarker(b []byte, offset int, marker string) bool {
	if offset < 0 || offset+len(marker) > len(b) {
		return false
	}
	return string(b[offset:offset+len(marker)]) == marker
}

// LameTag returns the raw LAME extension of a Xing/Info frame, clipped to the buffer
func LameTag(b []byte, offset int) []byte {
	i, j := offset+lameTagOffset, min(offset+lameTagEnd, len(b))
	if offset < 0 || i >= j {
		return nil
	}
	return b[i:j]
}

// FirstAudioFrame skips a leading Xing/Info frame
func FirstAudioFrame(b []byte, headers []Header) int {
	if len(headers) == 0 {
		return 0
	}
	if offset := headers[0].Offset; IsXing(b, offset) || IsInfo(b, offset) {
		return 1
	}
	return 0
}
