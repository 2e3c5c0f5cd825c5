// Package adts locates and decodes ADTS (AAC) frame headers.
//
// https://wiki.multimedia.cx/index.php/ADTS
//
//	AAAAAAAA AAAABCCD EEFFFFGH HHIJKLMM MMMMMMMM MMMOOOOO OOOOOOPP (QQQQQQQQ QQQQQQQQ)
//
//	A 12 syncword 0xFFF, all bits must be 1
//	B  1 MPEG Version: 0 for MPEG-4, 1 for MPEG-2
//	C  2 Layer: always 0
//	D  1 protection absent, 1 if there is no CRC and 0 if there is CRC
//	E  2 profile, the MPEG-4 Audio Object Type minus 1
//	F  4 MPEG-4 Sampling Frequency Index (15 is forbidden)
//	G  1 private bit
//	H  3 MPEG-4 Channel Configuration (0 = inband PCE)
//	I  1 originality
//	J  1 home
//	K  1 copyrighted id bit
//	L  1 copyright id start
//	M 13 frame length, including 7 or 9 bytes of header
//	O 11 buffer fullness
//	P  2 number of AAC frames (RDBs) in ADTS frame minus 1
//	Q 16 CRC if protection absent is 0
package adts

import (
	"github.com/AlexxIT/audiolens/pkg/bits"
	"github.com/AlexxIT/audiolens/pkg/core"
)

const (
	MinHeaderSize = 7 // without CRC
	CRCHeaderSize = 9 // with CRC

	// minDecodeSize is the number of trailing bytes a candidate offset needs
	// before its header is decoded. Shorter tails are skipped.
	minDecodeSize = 19
)

// Sync mask and magic. Matches the 12-bit syncword plus layer 0 and ignores the
// version and protection bits. This is looser than a full fixed-header check
// (nothing validates the profile, rate or length fields) and is kept as is.
const (
	syncMask  = 0xFFF6
	syncMagic = 0xFFF0
)

type Header struct {
	Offset int // offset in source buffer

	Version          byte // 0 = MPEG-4, 1 = MPEG-2
	Layer            byte // must be 0
	ProtectionAbsent bool

	ProfileIndex       byte
	SampleRateIndex    byte
	PrivateBit         byte
	ChannelConfigIndex byte

	Originality      byte
	Home             byte
	CopyrightIDBit   byte
	CopyrightIDStart byte

	FrameSize      int // including header bytes
	BufferFullness int
	AACFrames      int // RDB count, raw value + 1
	CRC            int // -1 if protection absent
}

func IsSync(b []byte, offset int) bool {
	if offset < 0 || offset+2 > len(b) {
		return false
	}
	return bits.Uint16(b[offset:])&syncMask == syncMagic
}

// ReadHeader decodes the header at offset. It does not check the syncword.
func ReadHeader(b []byte, offset int) (Header, bool) {
	if offset < 0 || len(b)-offset < minDecodeSize {
		return Header{}, false
	}

	b = b[offset:]

	h := Header{
		Offset:             offset,
		Version:            byte(bits.Extract(uint32(b[1]), 1, 3)),
		Layer:              byte(bits.Extract(uint32(b[1]), 2, 1)),
		ProtectionAbsent:   bits.Extract(uint32(b[1]), 1, 0) == 1,
		ProfileIndex:       byte(bits.Extract(uint32(b[2]), 2, 6)),
		SampleRateIndex:    byte(bits.Extract(uint32(b[2]), 4, 2)),
		PrivateBit:         byte(bits.Extract(uint32(b[2]), 1, 1)),
		ChannelConfigIndex: byte(bits.Extract(bits.Uint16(b[2:]), 3, 6)),
		Originality:        byte(bits.Extract(uint32(b[3]), 1, 5)),
		Home:               byte(bits.Extract(uint32(b[3]), 1, 4)),
		CopyrightIDBit:     byte(bits.Extract(uint32(b[3]), 1, 3)),
		CopyrightIDStart:   byte(bits.Extract(uint32(b[3]), 1, 2)),
		FrameSize:          int(bits.Extract(bits.Uint24(b[3:]), 13, 5)),
		BufferFullness:     int(bits.Extract(bits.Uint16(b[5:]), 11, 2)),
		AACFrames:          int(bits.Extract(uint32(b[6]), 2, 0)) + 1,
		CRC:                -1,
	}

	if !h.ProtectionAbsent {
		h.CRC = int(bits.Uint16(b[7:]))
	}

	return h, true
}

// Scan walks the whole buffer and returns every decodable frame header in order.
// Unmatched bytes and undecodable candidates advance the scan by one byte.
func Scan(b []byte) (headers []Header) {
	for offset := 0; offset < len(b)-MinHeaderSize; {
		if IsSync(b, offset) {
			if h, ok := ReadHeader(b, offset); ok && h.FrameSize >= h.HeaderSize() {
				headers = append(headers, h)
				offset += h.FrameSize
				continue
			}
		}
		offset++
	}
	return
}

func (h Header) HeaderSize() int {
	if h.ProtectionAbsent {
		return MinHeaderSize
	}
	return CRCHeaderSize
}

// DataSize is the payload size without header bytes
func (h Header) DataSize() int {
	return h.FrameSize - h.HeaderSize()
}

func (h Header) Span() core.Span {
	return core.Span{Offset: h.Offset, Size: h.FrameSize}
}

func (h Header) Profile() string {
	return ProfileName(int(h.ProfileIndex))
}

func (h Header) SampleRate() int {
	return SampleRate(int(h.SampleRateIndex))
}

func (h Header) Channels() string {
	return ChannelConfig(int(h.ChannelConfigIndex))
}

func (h Header) ChannelCount() int {
	return ChannelCount(int(h.ChannelConfigIndex))
}

// Payload returns the raw data blocks of the frame, clipped to the buffer
func (h Header) Payload(b []byte) []byte {
	return core.Slice(b, core.Span{Offset: h.Offset + h.HeaderSize(), Size: h.DataSize()})
}

func Spans(headers []Header) []core.Span {
	spans := make([]core.Span, len(headers))
	for i, h := range headers {
		spans[i] = h.Span()
	}
	return spans
}
