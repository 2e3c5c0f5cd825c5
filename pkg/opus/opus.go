package opus

import (
	"fmt"
	"strings"
	"time"
)

type Mode byte

const (
	ModeSILK Mode = iota
	ModeHybrid
	ModeCELT
)

func (m Mode) String() string {
	switch m {
	case ModeSILK:
		return "SILK"
	case ModeHybrid:
		return "HYBRID"
	}
	return "CELT"
}

type Bandwidth byte

const (
	NarrowBand Bandwidth = iota
	MediumBand
	WideBand
	SuperWideBand
	FullBand
)

func (b Bandwidth) String() string {
	switch b {
	case NarrowBand:
		return "NB"
	case MediumBand:
		return "MB"
	case WideBand:
		return "WB"
	case SuperWideBand:
		return "SWB"
	}
	return "FB"
}

// SampleRate is the audio bandwidth expressed as an effective sample rate
func (b Bandwidth) SampleRate() int {
	switch b {
	case NarrowBand:
		return 8000
	case MediumBand:
		return 12000
	case WideBand:
		return 16000
	case SuperWideBand:
		return 24000
	}
	return 48000
}

// TOC is the first byte of every Opus packet
type TOC struct {
	Config    byte
	Mode      Mode
	Bandwidth Bandwidth
	Duration  float64 // frame duration in ms
	Stereo    bool
	Channels  byte
	FrameCode byte
	Frames    byte // 0xFF if the count is stored in the next byte
}

func ParseTOC(b byte) TOC {
	// https://datatracker.ietf.org/doc/html/rfc6716#section-3.1
	config := b >> 3
	stereo := b>>2&0b1 == 1
	return TOC{
		Config:    config,
		Mode:      parseMode(config),
		Bandwidth: parseBandwidth(config),
		Duration:  parseDuration(config),
		Stereo:    stereo,
		Channels:  parseChannels(stereo),
		FrameCode: b & 0b11,
		Frames:    parseFrames(b & 0b11),
	}
}

func parseMode(config byte) Mode {
	if config < 12 {
		return ModeSILK
	}
	if config < 16 {
		return ModeHybrid
	}
	return ModeCELT
}

func parseBandwidth(config byte) Bandwidth {
	switch {
	case config < 4:
		return NarrowBand
	case config < 8:
		return MediumBand
	case config < 12:
		return WideBand
	case config < 14:
		return SuperWideBand
	case config < 16:
		return FullBand
	case config < 20:
		return NarrowBand
	case config < 24:
		return WideBand
	case config < 28:
		return SuperWideBand
	}
	return FullBand
}

func parseDuration(config byte) float64 {
	switch parseMode(config) {
	case ModeSILK:
		return [4]float64{10, 20, 40, 60}[config%4]
	case ModeHybrid:
		return [2]float64{10, 20}[config%2]
	}
	return [4]float64{2.5, 5, 10, 20}[config%4]
}

func parseChannels(stereo bool) byte {
	if stereo {
		return 2
	}
	return 1
}

func parseFrames(c byte) byte {
	switch c {
	case 0:
		return 1
	case 1, 2:
		return 2
	}
	return 0xFF
}

func (t TOC) FrameDuration() time.Duration {
	return time.Duration(t.Duration * float64(time.Millisecond))
}

// PacketDuration reads the frame count of code 3 packets from the second byte
func PacketDuration(packet []byte) time.Duration {
	if len(packet) == 0 {
		return 0
	}

	toc := ParseTOC(packet[0])
	frames := int(toc.Frames)
	if toc.Frames == 0xFF {
		if len(packet) < 2 {
			return 0
		}
		frames = int(packet[1] & 0x3F)
	}

	return time.Duration(frames) * toc.FrameDuration()
}

func (t TOC) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "mode:        %s\n", t.Mode)
	fmt.Fprintf(sb, "band:        %s\n", t.Bandwidth)
	fmt.Fprintf(sb, "duration:    %g\n", t.Duration)
	fmt.Fprintf(sb, "channels:    %d\n", t.Channels)
	fmt.Fprintf(sb, "stereo:      %t\n", t.Stereo)
	fmt.Fprintf(sb, "frames:      %d\n", t.Frames)
	return sb.String()
}
