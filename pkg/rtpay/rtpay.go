// Package rtpay packetizes located audio frames into RTP.
package rtpay

import (
	"encoding/hex"
	"math/rand"

	"github.com/AlexxIT/audiolens/pkg/adts"
	"github.com/AlexxIT/audiolens/pkg/bits"
	"github.com/AlexxIT/audiolens/pkg/core"
	"github.com/AlexxIT/audiolens/pkg/mp3"
	"github.com/AlexxIT/audiolens/pkg/opus"
	"github.com/pion/rtp"
)

const PacketSize = 1436

const (
	PayloadTypeMPA  = 14
	PayloadTypeAAC  = 96
	PayloadTypeOpus = 111

	ClockRateMPA  = 90000
	ClockRateOpus = 48000
)

// FMTP for AAC-hbr, config is appended per stream
const FMTP = "streamtype=5;profile-level-id=1;mode=AAC-hbr;sizelength=13;indexlength=3;indexdeltalength=3;config="

type Stream struct {
	core.Codec
	Packets []*rtp.Packet
}

type packetizer struct {
	Stream
	ssrc      uint32
	sequencer rtp.Sequencer
}

func newPacketizer(codec core.Codec) *packetizer {
	return &packetizer{
		Stream:    Stream{Codec: codec},
		ssrc:      rand.Uint32(),
		sequencer: rtp.NewRandomSequencer(),
	}
}

func (p *packetizer) push(ts uint32, marker bool, payload []byte) {
	p.Packets = append(p.Packets, &rtp.Packet{
		Header: rtp.Header{
			Version:        2,
			Marker:         marker,
			PayloadType:    p.PayloadType,
			SequenceNumber: p.sequencer.NextSequenceNumber(),
			Timestamp:      ts,
			SSRC:           p.ssrc,
		},
		Payload: payload,
	})
}

// ADTS strips ADTS headers and sends every frame as one AU (RFC 3640, AAC-hbr)
// streamtype=5;mode=AAC-hbr;sizelength=13;indexlength=3;indexdeltalength=3
//
// Frames with several raw data blocks are skipped, an AU holds one block.
// Their time is kept so the following frames stay in sync.
func ADTS(b []byte, headers []adts.Header) Stream {
	if len(headers) == 0 || headers[0].SampleRate() <= 0 {
		return Stream{Codec: core.Codec{Name: core.CodecAAC, PayloadType: PayloadTypeAAC}}
	}

	h := headers[0]
	p := newPacketizer(core.Codec{
		Name:        core.CodecAAC,
		ClockRate:   uint32(h.SampleRate()),
		Channels:    uint16(h.ChannelCount()),
		FmtpLine:    FMTP + hex.EncodeToString(AudioSpecificConfig(h)),
		PayloadType: PayloadTypeAAC,
	})

	var ts uint32
	for _, h := range headers {
		if h.AACFrames > 1 {
			ts += 1024 * uint32(h.AACFrames)
			continue
		}

		data := h.Payload(b)
		if data == nil {
			continue
		}

		wr := bits.NewWriter()
		wr.WriteBits16(16, 16) // AU-headers-length in bits
		wr.WriteBits16(uint16(len(data)), 13)
		wr.WriteBits8(0, 3) // AU-index
		payload := append(wr.Bytes(), data...)

		p.push(ts, true, payload)
		ts += 1024 * uint32(h.AACFrames)
	}

	return p.Stream
}

// AudioSpecificConfig rebuilds the two byte MPEG-4 config from an ADTS header
func AudioSpecificConfig(h adts.Header) []byte {
	wr := bits.NewWriter()
	wr.WriteBits8(h.ProfileIndex+1, 5) // ADTS profile is object type minus one
	wr.WriteBits8(h.SampleRateIndex, 4)
	wr.WriteBits8(h.ChannelConfigIndex, 4)
	wr.WriteBits8(0, 3) // frame length flag, depends on core coder, extension flag
	return wr.Bytes()
}

// MP3 sends frames after a leading Xing/Info frame (RFC 2250). Frames
// bigger than a packet are fragmented with the same timestamp.
func MP3(b []byte, headers []mp3.Header) Stream {
	p := newPacketizer(core.Codec{Name: core.CodecMP3, ClockRate: ClockRateMPA, PayloadType: PayloadTypeMPA})

	end := len(b)
	if tag := mp3.FindID3v1(b); tag.Found() {
		end = tag.Offset
	}

	spans := mp3.Spans(headers, end)

	var ts uint32
	for i := mp3.FirstAudioFrame(b, headers); i < len(headers); i++ {
		h := headers[i]
		if h.SampleRate <= 0 {
			continue
		}

		data := core.Slice(b, spans[i])
		for offset := 0; offset < len(data); offset += PacketSize - 4 {
			chunk := data[offset:min(offset+PacketSize-4, len(data))]

			payload := make([]byte, 4+len(chunk))
			payload[2] = byte(offset >> 8) // Frag_offset, MBZ stays zero
			payload[3] = byte(offset)
			copy(payload[4:], chunk)

			p.push(ts, offset == 0, payload)
		}

		samples := uint32(mp3.SamplesPerFrame(h.Version, h.Layer))
		ts += samples * ClockRateMPA / uint32(h.SampleRate)
	}

	return p.Stream
}

// Opus sends one Ogg packet per RTP packet (RFC 7587)
func Opus(s opus.Stream) Stream {
	// RFC 7587 always signals two channels
	p := newPacketizer(core.Codec{Name: core.CodecOpus, ClockRate: ClockRateOpus, Channels: 2, PayloadType: PayloadTypeOpus})
	if s.Head.Channels == 2 {
		p.FmtpLine = "sprop-stereo=1"
	}

	var ts uint32
	for _, packet := range s.Packets {
		p.push(ts, true, packet)
		ts += uint32(opus.PacketDuration(packet).Microseconds() * ClockRateOpus / 1e6)
	}

	return p.Stream
}
