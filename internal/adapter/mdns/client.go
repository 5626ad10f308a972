package mdns

import (
	"fmt"
	"net"

	"github.com/pion/mdns/v2"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

type Config struct {
	UseIPv4     bool
	UseIPv6     bool
	IPv4Addr    string
	IPv6Addr    string
	Concurrency int
}

func openConn(cfg Config) (*mdns.Conn, error) {
	var (
		conn4 *ipv4.PacketConn
		conn6 *ipv6.PacketConn
	)

	if cfg.UseIPv4 {
		addr, err := net.ResolveUDPAddr("udp4", cfg.IPv4Addr)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve IPv4 address: %w", err)
		}

		l, err := net.ListenUDP("udp4", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to bind UDP IPv4 listener: %w", err)
		}

		conn4 = ipv4.NewPacketConn(l)
	}

	if cfg.UseIPv6 {
		addr, err := net.ResolveUDPAddr("udp6", cfg.IPv6Addr)
		if err != nil {
			closeV4(conn4)
			return nil, fmt.Errorf("failed to resolve IPv6 address: %w", err)
		}

		l, err := net.ListenUDP("udp6", addr)
		if err != nil {
			closeV4(conn4)
			return nil, fmt.Errorf("failed to bind UDP IPv6 listener: %w", err)
		}

		conn6 = ipv6.NewPacketConn(l)
	}

	// Query-only: this process answers no names.
	conn, err := mdns.Server(conn4, conn6, &mdns.Config{})
	if err != nil {
		closeV4(conn4)
		if conn6 != nil {
			_ = conn6.Close()
		}

		return nil, fmt.Errorf("failed to init mdns conn: %w", err)
	}

	return conn, nil
}

func closeV4(c *ipv4.PacketConn) {
	if c != nil {
		_ = c.Close()
	}
}
