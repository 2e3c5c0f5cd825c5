// Package ogg locates Ogg pages inside a byte buffer.
//
// https://xiph.org/ogg/doc/framing.html
//
//	 0  4 capture pattern "OggS"
//	 4  1 version, 0
//	 5  1 header type flags
//	 6  8 absolute granule position, LE
//	14  4 stream serial number, LE
//	18  4 page sequence number, LE
//	22  4 page checksum
//	26  1 page segments
//	27  n segment table
package ogg

import (
	"encoding/binary"

	"github.com/AlexxIT/audiolens/pkg/core"
)

const (
	HeaderSize = 27
	Magic      = "OggS\x00"
)

const (
	FlagFresh = 0x01 // page continues a packet from the previous page
	FlagBOS   = 0x02
	FlagEOS   = 0x04
)

type PageHeader struct {
	Offset int // offset in source buffer

	Fresh bool
	BOS   bool
	EOS   bool

	Granule  uint64
	Serial   uint32
	PageNum  uint32
	Checksum uint32

	Segments     int
	SegmentTable []byte // lacing values, shares memory with source buffer

	PageSize int // header + segment table + body
}

func IsMagic(b []byte, offset int) bool {
	if offset < 0 || offset+len(Magic) > len(b) {
		return false
	}
	return string(b[offset:offset+len(Magic)]) == Magic
}

// ReadPage decodes the page header at offset. The segment table must fit
// into the buffer, the page body may be truncated.
func ReadPage(b []byte, offset int) (PageHeader, bool) {
	if offset < 0 || offset+HeaderSize > len(b) {
		return PageHeader{}, false
	}

	h := b[offset:]
	segments := int(h[26])
	if HeaderSize+segments > len(h) {
		return PageHeader{}, false
	}

	page := PageHeader{
		Offset:       offset,
		Fresh:        h[5]&FlagFresh != 0,
		BOS:          h[5]&FlagBOS != 0,
		EOS:          h[5]&FlagEOS != 0,
		Granule:      binary.LittleEndian.Uint64(h[6:]),
		Serial:       binary.LittleEndian.Uint32(h[14:]),
		PageNum:      binary.LittleEndian.Uint32(h[18:]),
		Checksum:     binary.LittleEndian.Uint32(h[22:]),
		Segments:     segments,
		SegmentTable: h[HeaderSize : HeaderSize+segments],
	}

	page.PageSize = HeaderSize + segments
	for _, lace := range page.SegmentTable {
		page.PageSize += int(lace)
	}

	return page, true
}

// Scan returns all pages. After a page the search continues at the end of
// the page, otherwise at the next byte.
func Scan(b []byte) (pages []PageHeader) {
	for offset := 0; offset+HeaderSize <= len(b); {
		if IsMagic(b, offset) {
			if page, ok := ReadPage(b, offset); ok {
				pages = append(pages, page)
				offset += page.PageSize
				continue
			}
		}
		offset++
	}
	return
}

// DataOffset is the offset of the first segment
func (p PageHeader) DataOffset() int {
	return p.Offset + HeaderSize + p.Segments
}

func (p PageHeader) DataSize() int {
	return p.PageSize - HeaderSize - p.Segments
}

func (p PageHeader) Span() core.Span {
	return core.Span{Offset: p.Offset, Size: p.PageSize}
}

// Payload returns page body, clipped if the buffer ends inside the page
func (p PageHeader) Payload(b []byte) []byte {
	return core.Slice(b, core.Span{Offset: p.DataOffset(), Size: p.DataSize()})
}

// Truncated reports whether the buffer ends inside the page
func (p PageHeader) Truncated(b []byte) bool {
	return p.Span().End() > len(b)
}

func Spans(pages []PageHeader) []core.Span {
	spans := make([]core.Span, len(pages))
	for i, p := range pages {
		spans[i] = p.Span()
	}
	return spans
}
