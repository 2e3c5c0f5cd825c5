package opus

import (
	"time"

	"github.com/AlexxIT/audiolens/pkg/ogg"
)

// Stream is an Ogg encapsulated Opus stream
type Stream struct {
	Head    IDHeader
	Tags    bool // second page starts with OpusTags
	Packets [][]byte
}

// ReadStream reassembles the logical stream of the first page. The first
// packet must be OpusHead, an OpusTags packet after it is skipped.
func ReadStream(b []byte, pages []ogg.PageHeader) (Stream, bool) {
	if len(pages) == 0 {
		return Stream{}, false
	}

	packets := ogg.Packets(b, pages, pages[0].Serial)
	if len(packets) == 0 {
		return Stream{}, false
	}

	head, ok := ReadHeader(packets[0], 0)
	if !ok {
		return Stream{}, false
	}
	head.Offset = pages[0].DataOffset()
	packets = packets[1:]

	s := Stream{Head: head}

	if len(pages) > 1 {
		s.Tags = IsTags(b, pages[1].DataOffset())
	}
	if len(packets) > 0 && IsTags(packets[0], 0) {
		packets = packets[1:]
	}

	for _, packet := range packets {
		if len(packet) == 0 {
			continue // DTX
		}
		if s.Head.TOC == nil {
			toc := ParseTOC(packet[0])
			s.Head.TOC = &toc
		}
		s.Packets = append(s.Packets, packet)
	}

	return s, true
}

func (s Stream) Duration() (d time.Duration) {
	for _, packet := range s.Packets {
		d += PacketDuration(packet)
	}
	return
}
