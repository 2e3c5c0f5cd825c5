// Package push relays located frames to a UDP target as RTP.
package push

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexxIT/audiolens/internal/app"
	"github.com/AlexxIT/audiolens/pkg/core"
	"github.com/AlexxIT/audiolens/pkg/rtpay"
	"github.com/AlexxIT/audiolens/pkg/udp"
	"github.com/rs/zerolog"
)

type Config struct {
	Target   string `yaml:"target"`
	Realtime bool   `yaml:"realtime"`
	SDP      string `yaml:"sdp"`
}

var cfg = Config{Realtime: true}

var log zerolog.Logger

func Init() {
	var conf struct {
		Mod Config `yaml:"push"`
	}

	conf.Mod = cfg

	app.LoadConfig(&conf)

	cfg = conf.Mod

	log = app.GetLogger("push")
}

func Enabled() bool {
	return cfg.Target != ""
}

// Send writes all packets of the stream to the configured target
func Send(ctx context.Context, name string, stream rtpay.Stream) error {
	addr, err := udp.Resolve(cfg.Target)
	if err != nil {
		return fmt.Errorf("push: target: %w", err)
	}

	if cfg.SDP != "" {
		if err = writeSDP(cfg.SDP, name, addr, &stream.Codec); err != nil {
			return err
		}
	}

	conn, err := udp.Listen(":0")
	if err != nil {
		return fmt.Errorf("push: listen: %w", err)
	}
	defer conn.Close()

	log.Debug().Str("name", name).Str("codec", stream.Name).Str("target", addr.String()).
		Int("packets", len(stream.Packets)).Msg("[push] start")

	n, err := sendPackets(ctx, conn, addr, stream, cfg.Realtime)

	log.Info().Str("name", name).Int("packets", n).Msg("[push] done")

	return err
}

func sendPackets(ctx context.Context, conn *udp.Conn, addr *net.UDPAddr, stream rtpay.Stream, realtime bool) (int, error) {
	if len(stream.Packets) == 0 {
		return 0, nil
	}

	start := time.Now()
	ts0 := stream.Packets[0].Timestamp

	for i, packet := range stream.Packets {
		if realtime && stream.ClockRate != 0 {
			// unsigned difference survives timestamp wraparound
			elapsed := time.Duration(packet.Timestamp-ts0) * time.Second / time.Duration(stream.ClockRate)
			if d := time.Until(start.Add(elapsed)); d > 0 {
				timer := time.NewTimer(d)
				select {
				case <-ctx.Done():
					timer.Stop()
					return i, ctx.Err()
				case <-timer.C:
				}
			}
		}

		if err := ctx.Err(); err != nil {
			return i, err
		}

		if err := conn.WriteRTP(packet, addr); err != nil {
			return i, fmt.Errorf("push: write: %w", err)
		}
	}

	return len(stream.Packets), nil
}

func writeSDP(dir, name string, addr *net.UDPAddr, codec *core.Codec) error {
	b, err := core.MarshalSDP(name, addr.IP.String(), addr.Port, codec)
	if err != nil {
		return fmt.Errorf("push: sdp: %w", err)
	}

	if err = os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("push: sdp: %w", err)
	}

	path := filepath.Join(dir, name+".sdp")
	if err = os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("push: sdp: %w", err)
	}

	log.Debug().Str("path", path).Msg("[push] sdp")

	return nil
}
