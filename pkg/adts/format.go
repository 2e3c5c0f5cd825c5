package adts

import (
	"fmt"
	"strings"

	"github.com/AlexxIT/audiolens/pkg/core"
)

func (h Header) String() string {
	sb := &strings.Builder{}
	sb.WriteString("ADTS Frames\n")
	fmt.Fprintf(sb, "offset:      %d\n", h.Offset)
	fmt.Fprintf(sb, "profile:     %s\n", h.Profile())
	fmt.Fprintf(sb, "version:     %d\n", h.Version)
	fmt.Fprintf(sb, "layer:       %d\n", h.Layer)
	fmt.Fprintf(sb, "frame size:  %d\n", h.FrameSize)
	fmt.Fprintf(sb, "data size:   %d\n", h.DataSize())
	fmt.Fprintf(sb, "sample rate: %d\n", h.SampleRate())
	fmt.Fprintf(sb, "channels:    %s\n", h.Channels())
	fmt.Fprintf(sb, "aac frames:  %d\n", h.AACFrames)
	fmt.Fprintf(sb, "crc:         %d\n", h.CRC)
	return sb.String()
}

type Summary struct {
	Frames       int
	MultipleAAC  int // frames with more than one RDB
	LayerNotZero int
	Incomplete   int // frames not starting where the previous one ended
}

func Summarize(headers []Header) Summary {
	s := Summary{Frames: len(headers), Incomplete: core.Incomplete(Spans(headers))}
	for _, h := range headers {
		if h.AACFrames > 1 {
			s.MultipleAAC++
		}
		if h.Layer != 0 {
			s.LayerNotZero++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"Frame headers: %d\nmultiple aac frames: %d\nlayer != 0: %d\nincomplete frames: %d\n",
		s.Frames, s.MultipleAAC, s.LayerNotZero, s.Incomplete,
	)
}
