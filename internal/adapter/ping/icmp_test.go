package ping

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

func TestICMPPinger_MatchesOwnReply(t *testing.T) {
	p := NewICMPPinger(true)
	addr := netip.MustParseAddr("192.0.2.10")
	payload := []byte("ping-monitor0001")

	raw, err := p.echoRequest(addr, 1, payload)
	require.NoError(t, err)

	req, err := icmp.ParseMessage(protocolICMP, raw)
	require.NoError(t, err)
	require.Equal(t, ipv4.ICMPTypeEcho, req.Type)
	require.False(t, p.isReply(req, 1, payload))

	reply := &icmp.Message{Type: ipv4.ICMPTypeEchoReply, Body: req.Body}
	require.True(t, p.isReply(reply, 1, payload))
	require.False(t, p.isReply(reply, 2, payload))

	foreign := &icmp.Message{Type: ipv4.ICMPTypeEchoReply, Body: &icmp.Echo{ID: p.id + 1, Seq: 1, Data: payload}}
	require.False(t, p.isReply(foreign, 1, payload))
	require.True(t, NewICMPPinger(false).isReply(foreign, 1, payload))
}

func TestICMPPinger_Endpoint(t *testing.T) {
	v4 := netip.MustParseAddr("192.0.2.1")
	v6 := netip.MustParseAddr("2001:db8::1")

	network, _, proto := NewICMPPinger(false).endpoint(v4)
	require.Equal(t, "udp4", network)
	require.Equal(t, protocolICMP, proto)

	network, _, proto = NewICMPPinger(true).endpoint(v6)
	require.Equal(t, "ip6:ipv6-icmp", network)
	require.Equal(t, protocolICMPv6, proto)

	require.IsType(t, &net.UDPAddr{}, NewICMPPinger(false).destination(v4))
	require.IsType(t, &net.IPAddr{}, NewICMPPinger(true).destination(v4))
}

func TestSamePeer(t *testing.T) {
	addr := netip.MustParseAddr("192.0.2.1")

	require.True(t, samePeer(&net.UDPAddr{IP: net.ParseIP("192.0.2.1")}, addr))
	require.True(t, samePeer(&net.IPAddr{IP: net.IPv4(192, 0, 2, 1)}, addr))
	require.False(t, samePeer(&net.IPAddr{IP: net.ParseIP("192.0.2.2")}, addr))
	require.False(t, samePeer(&net.TCPAddr{IP: net.ParseIP("192.0.2.1")}, addr))
}

func TestIsPermissionError(t *testing.T) {
	wrapped := &net.OpError{Op: "listen", Net: "udp4", Err: os.NewSyscallError("socket", syscall.EACCES)}

	require.True(t, isPermissionError(wrapped))
	require.True(t, isPermissionError(fmt.Errorf("open: %w", os.ErrPermission)))
	require.False(t, isPermissionError(errors.New("address in use")))
}
