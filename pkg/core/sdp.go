package core

import (
	"github.com/pion/sdp/v3"
)

// Codec of a packetized audio stream
type Codec struct {
	Name        string // MPEG4-GENERIC, OPUS, MPA
	ClockRate   uint32
	Channels    uint16
	FmtpLine    string
	PayloadType uint8
}

// MarshalSDP describes one audio stream sent to address:port, enough for
// ffplay -protocol_whitelist file,udp,rtp -i stream.sdp
func MarshalSDP(name, address string, port int, codec *Codec) ([]byte, error) {
	sd := &sdp.SessionDescription{
		Origin: sdp.Origin{
			Username: "-", SessionID: 1, SessionVersion: 1,
			NetworkType: "IN", AddressType: "IP4", UnicastAddress: "0.0.0.0",
		},
		SessionName: sdp.SessionName(name),
		ConnectionInformation: &sdp.ConnectionInformation{
			NetworkType: "IN", AddressType: "IP4", Address: &sdp.Address{
				Address: address,
			},
		},
		TimeDescriptions: []sdp.TimeDescription{
			{Timing: sdp.Timing{}},
		},
	}

	md := &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:  "audio",
			Port:   sdp.RangedPort{Value: port},
			Protos: []string{"RTP", "AVP"},
		},
	}
	md.WithCodec(codec.PayloadType, codec.Name, codec.ClockRate, codec.Channels, codec.FmtpLine)

	sd.MediaDescriptions = append(sd.MediaDescriptions, md)

	return sd.Marshal()
}
