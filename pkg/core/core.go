package core

const (
	CodecAAC  = "MPEG4-GENERIC"
	CodecOpus = "OPUS" // payloadType: 111
	CodecMP3  = "MPA"  // payload: 14, aka MPEG-1 Layer III
)

// Span is a located byte range inside a source buffer
type Span struct {
	Offset int
	Size   int
}

func (s Span) End() int {
	return s.Offset + s.Size
}

// Incomplete counts spans that do not start where the previous one ended.
// The first span is expected at offset 0.
func Incomplete(spans []Span) (n int) {
	var end int
	for _, s := range spans {
		if s.Offset != end {
			n++
		}
		end = s.End()
	}
	return
}

// Slice returns b[s.Offset:s.End()] clipped to the buffer
func Slice(b []byte, s Span) []byte {
	start, end := s.Offset, s.End()
	if start < 0 {
		start = 0
	}
	if end > len(b) {
		end = len(b)
	}
	if start >= end {
		return nil
	}
	return b[start:end]
}
