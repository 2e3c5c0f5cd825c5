package ogg

import (
	"fmt"
	"strings"

	"github.com/AlexxIT/audiolens/pkg/core"
)

func (p PageHeader) String() string {
	sb := &strings.Builder{}
	sb.WriteString("Ogg Page\n")
	fmt.Fprintf(sb, "offset:      %d\n", p.Offset)
	fmt.Fprintf(sb, "size:        %d\n", p.PageSize)
	fmt.Fprintf(sb, "fresh:       %t\n", p.Fresh)
	fmt.Fprintf(sb, "bos:         %t\n", p.BOS)
	fmt.Fprintf(sb, "eos:         %t\n", p.EOS)
	fmt.Fprintf(sb, "pos:         %d\n", p.Granule)
	fmt.Fprintf(sb, "serial:      %d\n", p.Serial)
	fmt.Fprintf(sb, "page:        %d\n", p.PageNum)
	fmt.Fprintf(sb, "chsum:       %08x\n", p.Checksum)
	fmt.Fprintf(sb, "segments:    %d %v\n", p.Segments, p.SegmentTable)
	return sb.String()
}

type Summary struct {
	Pages int
	Fresh int
	BOS   int
	EOS   int

	FirstMissingPage int  // -1 if page numbers run from 0 without holes
	Increasing       bool // page numbers never decrease

	Incomplete int // pages not starting at the end of the previous one
	Truncated  int
	BadCRC     int

	Codec string // from the first packet of the first page
}

func Summarize(b []byte, pages []PageHeader) Summary {
	s := Summary{
		Pages:            len(pages),
		FirstMissingPage: FirstMissingPage(pages),
		Increasing:       Increasing(pages),
		Incomplete:       core.Incomplete(Spans(pages)),
	}

	for _, p := range pages {
		if p.Fresh {
			s.Fresh++
		}
		if p.BOS {
			s.BOS++
		}
		if p.EOS {
			s.EOS++
		}
		if p.Truncated(b) {
			s.Truncated++
		} else if !p.Verify(b) {
			s.BadCRC++
		}
	}

	if len(pages) > 0 {
		s.Codec = Codec(b, pages[0])
	}

	return s
}

// FirstMissingPage returns the first number missing from the sequence
// 0, 1, 2... or -1 if there is no hole.
func FirstMissingPage(pages []PageHeader) int {
	current := -1
	for _, p := range pages {
		if int(p.PageNum) != current+1 {
			return current + 1
		}
		current = int(p.PageNum)
	}
	return -1
}

func Increasing(pages []PageHeader) bool {
	for i := 1; i < len(pages); i++ {
		if pages[i].PageNum < pages[i-1].PageNum {
			return false
		}
	}
	return true
}

// Codec identifies the stream by the magic of the first packet on the page
func Codec(b []byte, page PageHeader) string {
	payload := page.Payload(b)
	for _, c := range codecs {
		if len(payload) >= len(c.magic) && string(payload[:len(c.magic)]) == c.magic {
			return c.name
		}
	}
	return ""
}

var codecs = []struct {
	name  string
	magic string
}{
	{"opus", "OpusHead"},
	{"vorbis", "\x01vorbis"},
	{"flac", "\x7fFLAC"},
	{"speex", "Speex   "},
	{"theora", "\x80theora"},
}

func (s Summary) String() string {
	var sb strings.Builder
	if s.Codec != "" {
		fmt.Fprintf(&sb, "Codec: %s\n", s.Codec)
	}
	fmt.Fprintf(&sb, "Page headers: %d\n", s.Pages)
	fmt.Fprintf(&sb, "fresh headers: %d\n", s.Fresh)
	fmt.Fprintf(&sb, "bos headers: %d\n", s.BOS)
	fmt.Fprintf(&sb, "eos headers: %d\n", s.EOS)
	fmt.Fprintf(&sb, "First missing page number: %d\n", s.FirstMissingPage)
	fmt.Fprintf(&sb, "Page numbers increasing: %t\n", s.Increasing)
	fmt.Fprintf(&sb, "incomplete pages: %d\n", s.Incomplete)
	fmt.Fprintf(&sb, "truncated pages: %d\n", s.Truncated)
	fmt.Fprintf(&sb, "bad checksum: %d\n", s.BadCRC)
	return sb.String()
}
