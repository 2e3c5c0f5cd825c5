package opus

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc7845#section-5.1
const (
	HeadMagic = "OpusHead"
	TagsMagic = "OpusTags"
	HeadSize  = 19
)

// IDHeader is the OpusHead packet
type IDHeader struct {
	Offset int // offset in source buffer

	Version       byte
	Channels      byte
	PreSkip       uint16
	SampleRate    uint32 // input sample rate, informational
	Gain          int16  // Q7.8 dB
	MappingFamily byte

	TOC *TOC // TOC of the first audio packet, nil if unknown
}

func IsHead(b []byte, offset int) bool {
	return hasMagic(b, offset, HeadMagic)
}

func IsTags(b []byte, offset int) bool {
	return hasMagic(b, offset, TagsMagic)
}

func hasMagic(b []byte, offset int, magic string) bool {
	if offset < 0 || offset+len(magic) > len(b) {
		return false
	}
	return string(b[offset:offset+len(magic)]) == magic
}

func ReadHeader(b []byte, offset int) (IDHeader, bool) {
	if !IsHead(b, offset) || offset+HeadSize > len(b) {
		return IDHeader{}, false
	}

	h := b[offset:]
	return IDHeader{
		Offset:        offset,
		Version:       h[8],
		Channels:      h[9],
		PreSkip:       binary.LittleEndian.Uint16(h[10:]),
		SampleRate:    binary.LittleEndian.Uint32(h[12:]),
		Gain:          int16(binary.LittleEndian.Uint16(h[16:])),
		MappingFamily: h[18],
	}, true
}

// FindHeader returns the first OpusHead in the buffer
func FindHeader(b []byte) (IDHeader, bool) {
	for offset := 0; offset+HeadSize <= len(b); offset++ {
		if h, ok := ReadHeader(b, offset); ok {
			return h, true
		}
	}
	return IDHeader{}, false
}

// Headers returns every OpusHead in the buffer
func Headers(b []byte) (headers []IDHeader) {
	for offset := 0; offset+HeadSize <= len(b); {
		if h, ok := ReadHeader(b, offset); ok {
			headers = append(headers, h)
			offset += HeadSize
			continue
		}
		offset++
	}
	return
}

func (h IDHeader) GainDB() float64 {
	return float64(h.Gain) / 256
}

func (h IDHeader) String() string {
	sb := &strings.Builder{}
	sb.WriteString("Opus\n")
	fmt.Fprintf(sb, "offset:      %d\n", h.Offset)
	fmt.Fprintf(sb, "version:     %d\n", h.Version)
	fmt.Fprintf(sb, "sample rate: %d\n", h.SampleRate)
	fmt.Fprintf(sb, "channels:    %d\n", h.Channels)
	fmt.Fprintf(sb, "gain:        %d\n", h.Gain)
	fmt.Fprintf(sb, "pre-skip:    %d\n", h.PreSkip)
	fmt.Fprintf(sb, "mapping:     %d\n", h.MappingFamily)
	if h.TOC != nil {
		sb.WriteString(h.TOC.String())
	}
	return sb.String()
}
