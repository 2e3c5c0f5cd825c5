// Package mp3 locates MPEG audio frames, ID3 tags and Xing/Info frames.
//
//	AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM
//
//	A 11 frame sync, all bits set
//	B  2 version: 00 = 2.5, 01 = reserved, 10 = 2, 11 = 1
//	C  2 layer: 00 = reserved, 01 = III, 10 = II, 11 = I
//	D  1 protection, 0 = CRC follows the header
//	E  4 bitrate index
//	F  2 sample rate index
//	G  1 padding
//	H  1 private
//	I  2 channel mode
//	J  2 mode extension
//	K  1 copyright
//	L  1 original
//	M  2 emphasis
package mp3

import (
	"github.com/AlexxIT/audiolens/pkg/bits"
	"github.com/AlexxIT/audiolens/pkg/core"
)

const HeaderSize = 4

type Version byte

const (
	VersionInvalid Version = iota
	Version1
	Version2
	Version25
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "V1"
	case Version2:
		return "V2"
	case Version25:
		return "V2.5"
	}
	return "Invalid"
}

type Layer byte

const (
	LayerInvalid Layer = iota
	Layer1
	Layer2
	Layer3
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "L1"
	case Layer2:
		return "L2"
	case Layer3:
		return "L3"
	}
	return "Invalid"
}

type ChannelMode byte

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "Stereo"
	case JointStereo:
		return "Joint"
	case DualChannel:
		return "Dual"
	}
	return "Mono"
}

type Header struct {
	Offset int // offset in source buffer

	Version     Version
	Layer       Layer
	Protected   bool // CRC follows the header
	Bitrate     int  // bits/s, -1 if invalid
	SampleRate  int  // Hz, -1 if invalid
	Padding     bool
	ChannelMode ChannelMode

	FrameSize int // derived from bitrate and sample rate, may be <= 0
}

// IsSync checks the 11-bit frame sync at offset
func IsSync(b []byte, offset int) bool {
	if offset < 0 || offset+2 > len(b) {
		return false
	}
	return b[offset] == 0xFF && b[offset+1]&0xE0 == 0xE0
}

// ReadHeader decodes the 4-byte header at offset. It does not check the frame sync.
func ReadHeader(b []byte, offset int) (Header, bool) {
	if offset < 0 || offset+HeaderSize > len(b) {
		return Header{}, false
	}

	rd := bits.NewReader(b[offset : offset+HeaderSize])
	rd.Skip(11) // frame sync

	h := Header{Offset: offset}
	h.Version = parseVersion(rd.ReadBits8(2))
	h.Layer = parseLayer(rd.ReadBits8(2))
	h.Protected = rd.ReadBit() == 0
	h.Bitrate = Bitrate(h.Version, h.Layer, int(rd.ReadBits8(4)))
	h.SampleRate = SampleRate(h.Version, int(rd.ReadBits8(2)))
	h.Padding = rd.ReadBit() == 1
	_ = rd.ReadBit() // private
	h.ChannelMode = ChannelMode(rd.ReadBits8(2))
	h.FrameSize = FrameSize(h.Bitrate, h.SampleRate)
	return h, true
}

func parseVersion(id byte) Version {
	switch id {
	case 0:
		return Version25
	case 2:
		return Version2
	case 3:
		return Version1
	}
	return VersionInvalid
}

func parseLayer(id byte) Layer {
	switch id {
	case 1:
		return Layer3
	case 2:
		return Layer2
	case 3:
		return Layer1
	}
	return LayerInvalid
}

// FrameSize uses one formula for every layer. Invalid (-1) inputs give
// zero or negative sizes which the scanner treats as a one byte step.
func FrameSize(bitrate, sampleRate int) int {
	return 144 * bitrate / (sampleRate + 8)
}

// ScanFrameOffsets returns offsets of frames with a positive frame size,
// starting the search at start. Headers with an invalid bitrate or sample
// rate are stepped over by one byte.
func ScanFrameOffsets(b []byte, start int) (offsets []int) {
	for offset := max(start, 0); offset < len(b); {
		if offset = nextSync(b, offset); offset < 0 {
			break
		}

		// reserved sample rate gives a huge size and would skip real frames
		var size int
		if h, ok := ReadHeader(b, offset); ok && h.Bitrate > 0 && h.SampleRate > 0 {
			size = h.FrameSize
		}

		if size > 0 {
			offsets = append(offsets, offset)
		} else {
			size = 1
		}

		offset += size
	}
	return
}

func nextSync(b []byte, offset int) int {
	for ; offset < len(b); offset++ {
		if IsSync(b, offset) {
			return offset
		}
	}
	return -1
}

func Headers(b []byte, offsets []int) []Header {
	headers := make([]Header, 0, len(offsets))
	for _, offset := range offsets {
		if h, ok := ReadHeader(b, offset); ok {
			headers = append(headers, h)
		}
	}
	return headers
}

// Scan finds the ID3v2 tag and decodes all frame headers after it
func Scan(b []byte) (TagRange, []Header) {
	tag := FindID3v2(b)

	var start int
	if tag.Size > 0 {
		start = tag.End()
	}

	return tag, Headers(b, ScanFrameOffsets(b, start))
}

// Spans cuts the buffer at header offsets: every frame runs to the next
// header and the last one runs to end.
func Spans(headers []Header, end int) []core.Span {
	spans := make([]core.Span, len(headers))
	for i, h := range headers {
		next := end
		if i+1 < len(headers) {
			next = headers[i+1].Offset
		}
		spans[i] = core.Span{Offset: h.Offset, Size: next - h.Offset}
	}
	return spans
}

// SamplesPerFrame for the version and layer, 0 if invalid
func SamplesPerFrame(v Version, l Layer) int {
	switch {
	case l == Layer1 && v != VersionInvalid:
		return 384
	case l == Layer2 && v != VersionInvalid:
		return 1152
	case l == Layer3 && v == Version1:
		return 1152
	case l == Layer3 && v != VersionInvalid:
		return 576
	}
	return 0
}
