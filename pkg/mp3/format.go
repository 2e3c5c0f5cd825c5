package mp3

import (
	"fmt"
	"strings"
)

func (h Header) String() string {
	sb := &strings.Builder{}
	sb.WriteString("MP3 Frame\n")
	fmt.Fprintf(sb, "offset:       %d\n", h.Offset)
	fmt.Fprintf(sb, "version:      %s\n", h.Version)
	fmt.Fprintf(sb, "layer:        %s\n", h.Layer)
	fmt.Fprintf(sb, "protected:    %t\n", h.Protected)
	fmt.Fprintf(sb, "bitrate:      %d\n", h.Bitrate)
	fmt.Fprintf(sb, "sample rate:  %d\n", h.SampleRate)
	fmt.Fprintf(sb, "padding:      %t\n", h.Padding)
	fmt.Fprintf(sb, "channel mode: %s\n", h.ChannelMode)
	fmt.Fprintf(sb, "frame size:   %d\n", h.FrameSize)
	return sb.String()
}

// Format prints the header and an error line when the stream parameters
// differ from the first header.
func (h Header) Format(first Header) string {
	s := h.String()
	if h.Mismatch(first) {
		s += fmt.Sprintf(
			"---------- Error (%d-%d, %s-%s, %s-%s)\n",
			first.SampleRate, h.SampleRate, first.Version, h.Version, first.Layer, h.Layer,
		)
	}
	return s
}

func (h Header) Mismatch(first Header) bool {
	return h.SampleRate != first.SampleRate || h.Version != first.Version || h.Layer != first.Layer
}

type Summary struct {
	Frames     int
	Incomplete int
	Mismatched int

	ID3v2 TagRange
	ID3v1 TagRange

	Xing    bool
	Info    bool
	LameTag []byte
}

// Summarize counts frames against the first header. A frame is incomplete
// when it does not start at the end of the previous one, with one byte of
// tolerance for padding.
func Summarize(b []byte, tag TagRange, headers []Header) Summary {
	s := Summary{Frames: len(headers), ID3v2: tag, ID3v1: FindID3v1(b)}
	if len(headers) == 0 {
		return s
	}

	first := headers[0]
	s.Xing = IsXing(b, first.Offset)
	s.Info = IsInfo(b, first.Offset)
	if s.Xing || s.Info {
		s.LameTag = LameTag(b, first.Offset)
	}

	expected := 0
	if tag.Found() {
		expected = tag.End()
	}

	for _, h := range headers {
		if h.Offset != expected && h.Offset != expected+1 {
			s.Incomplete++
		}
		if h.Mismatch(first) {
			s.Mismatched++
		}
		expected = h.Offset + h.FrameSize
	}
	return s
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Frames: %d\n", s.Frames)
	fmt.Fprintf(&sb, "incomplete frames: %d\n", s.Incomplete)
	fmt.Fprintf(&sb, "mismatched frames: %d\n", s.Mismatched)
	if s.ID3v2.Found() {
		fmt.Fprintf(&sb, "ID3v2: offset %d, size %d\n", s.ID3v2.Offset, s.ID3v2.Size)
	} else {
		sb.WriteString("ID3v2: none\n")
	}
	fmt.Fprintf(&sb, "ID3v1: %t\n", s.ID3v1.Found())
	switch {
	case s.Xing:
		fmt.Fprintf(&sb, "Xing frame, lame tag: %d bytes\n", len(s.LameTag))
	case s.Info:
		fmt.Fprintf(&sb, "Info frame, lame tag: %d bytes\n", len(s.LameTag))
	}
	return sb.String()
}
