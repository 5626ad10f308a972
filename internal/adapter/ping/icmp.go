package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	protocolICMP     = 1
	protocolICMPv6   = 58
	maxPacketSize    = 1500
	echoPayloadBytes = 16
)

// ErrSocketUnavailable means the process may not open ICMP sockets.
var ErrSocketUnavailable = errors.New("icmp socket unavailable")

// ICMPPinger sends a single ICMP echo request and waits for the matching reply.
// Unprivileged mode uses datagram ICMP sockets (net.ipv4.ping_group_range on
// Linux); privileged mode uses raw sockets.
type ICMPPinger struct {
	privileged bool
	id         int
	seq        atomic.Uint32
}

func NewICMPPinger(privileged bool) *ICMPPinger {
	return &ICMPPinger{
		privileged: privileged,
		id:         os.Getpid() & 0xffff,
	}
}

func (p *ICMPPinger) Ping(ctx context.Context, addr netip.Addr, timeout time.Duration) (time.Duration, error) {
	addr = addr.Unmap()

	network, listenAddr, proto := p.endpoint(addr)

	conn, err := icmp.ListenPacket(network, listenAddr)
	if err != nil {
		if isPermissionError(err) {
			return 0, fmt.Errorf("%w: %w", ErrSocketUnavailable, err)
		}

		return 0, fmt.Errorf("failed to open icmp socket: %w", err)
	}

	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := conn.SetDeadline(deadline); err != nil {
		return 0, fmt.Errorf("failed to set icmp deadline: %w", err)
	}

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	seq := int(p.seq.Add(1) & 0xffff)
	payload := make([]byte, echoPayloadBytes)
	copy(payload, fmt.Sprintf("ping-monitor%04x", seq))

	request, err := p.echoRequest(addr, seq, payload)
	if err != nil {
		return 0, err
	}

	start := time.Now()

	if _, err := conn.WriteTo(request, p.destination(addr)); err != nil {
		return 0, fmt.Errorf("failed to send echo request: %w", err)
	}

	buf := make([]byte, maxPacketSize)

	for {
		n, peer, err := conn.ReadFrom(buf)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, ctxErr
			}

			return 0, fmt.Errorf("no echo reply from %s: %w", addr, err)
		}

		rtt := time.Since(start)

		if !samePeer(peer, addr) {
			continue
		}

		msg, err := icmp.ParseMessage(proto, buf[:n])
		if err != nil {
			continue
		}

		if p.isReply(msg, seq, payload) {
			return rtt, nil
		}
	}
}

func (p *ICMPPinger) endpoint(addr netip.Addr) (network, listenAddr string, proto int) {
	switch {
	case addr.Is4() && p.privileged:
		return "ip4:icmp", "0.0.0.0", protocolICMP
	case addr.Is4():
		return "udp4", "0.0.0.0", protocolICMP
	case p.privileged:
		return "ip6:ipv6-icmp", "::", protocolICMPv6
	default:
		return "udp6", "::", protocolICMPv6
	}
}

func (p *ICMPPinger) destination(addr netip.Addr) net.Addr {
	ip := net.IP(addr.AsSlice())

	if p.privileged {
		return &net.IPAddr{IP: ip, Zone: addr.Zone()}
	}

	return &net.UDPAddr{IP: ip, Zone: addr.Zone()}
}

func (p *ICMPPinger) echoRequest(addr netip.Addr, seq int, payload []byte) ([]byte, error) {
	var typ icmp.Type = ipv4.ICMPTypeEcho
	if addr.Is6() {
		typ = ipv6.ICMPTypeEchoRequest
	}

	msg := icmp.Message{
		Type: typ,
		Code: 0,
		Body: &icmp.Echo{
			ID:   p.id,
			Seq:  seq,
			Data: payload,
		},
	}

	b, err := msg.Marshal(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal echo request: %w", err)
	}

	return b, nil
}

// isReply matches on sequence and payload. The echo id is only compared on
// raw sockets; datagram sockets have it rewritten by the kernel.
func (p *ICMPPinger) isReply(msg *icmp.Message, seq int, payload []byte) bool {
	if msg.Type != ipv4.ICMPTypeEchoReply && msg.Type != ipv6.ICMPTypeEchoReply {
		return false
	}

	echo, ok := msg.Body.(*icmp.Echo)
	if !ok || echo.Seq != seq || string(echo.Data) != string(payload) {
		return false
	}

	return !p.privileged || echo.ID == p.id
}

func samePeer(peer net.Addr, addr netip.Addr) bool {
	var ip net.IP

	switch a := peer.(type) {
	case *net.UDPAddr:
		ip = a.IP
	case *net.IPAddr:
		ip = a.IP
	default:
		return false
	}

	got, ok := netip.AddrFromSlice(ip)

	return ok && got.Unmap() == addr.WithZone("")
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) ||
		errors.Is(err, syscall.EPERM) ||
		errors.Is(err, syscall.EACCES) ||
		errors.Is(err, syscall.EPROTONOSUPPORT)
}
