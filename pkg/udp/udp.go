// Package udp is a thin IPv4 socket for sending and receiving RTP.
package udp

import (
	"net"
	"time"

	"github.com/pion/rtp"
)

type Conn struct {
	conn *net.UDPConn
	addr *net.UDPAddr
}

// Listen on address, ":0" picks a free port
func Listen(address string) (*Conn, error) {
	addr, err := net.ResolveUDPAddr("udp4", address)
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return nil, err
	}

	return &Conn{
		conn: conn,
		addr: conn.LocalAddr().(*net.UDPAddr),
	}, nil
}

// Resolve target address like 127.0.0.1:5004
func Resolve(address string) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp4", address)
}

func (c *Conn) Port() int {
	return c.addr.Port
}

func (c *Conn) Addr() string {
	return c.addr.String()
}

func (c *Conn) ReadFrom(buffer []byte) (int, *net.UDPAddr, error) {
	return c.conn.ReadFromUDP(buffer)
}

// ReadRTP waits for one packet no longer than timeout
func (c *Conn) ReadRTP(timeout time.Duration) (*rtp.Packet, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	buf := make([]byte, 2048)
	n, _, err := c.ReadFrom(buf)
	if err != nil {
		return nil, err
	}

	packet := &rtp.Packet{}
	if err = packet.Unmarshal(buf[:n]); err != nil {
		return nil, err
	}
	return packet, nil
}

func (c *Conn) WriteTo(data []byte, addr *net.UDPAddr) (int, error) {
	return c.conn.WriteToUDP(data, addr)
}

func (c *Conn) WriteRTP(packet *rtp.Packet, addr *net.UDPAddr) error {
	b, err := packet.Marshal()
	if err != nil {
		return err
	}
	_, err = c.WriteTo(b, addr)
	return err
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
