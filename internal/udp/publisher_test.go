package udp

import (
	"encoding/json"
	"errors"
	"net"
	"strings"
	"testing"

	"nmea-hub/internal/nmea"
)

type fakeConn struct {
	writes    [][]byte
	writeErr  error
	closed    bool
	closeErr  error
	writeHits int
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.writeHits++
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	cp := append([]byte(nil), p...)
	c.writes = append(c.writes, cp)
	return len(p), nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return c.closeErr
}

func TestNewPublisher_DialsResolvedAddr(t *testing.T) {
	var gotNetwork string
	var gotRaddr *net.UDPAddr
	fc := &fakeConn{}

	resolve := func(network, address string) (*net.UDPAddr, error) {
		return net.ResolveUDPAddr(network, address)
	}
	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		gotNetwork = network
		gotRaddr = raddr
		return fc, nil
	}

	p, err := newPublisher("127.0.0.1:4100", resolve, dial)
	if err != nil {
		t.Fatalf("newPublisher() error: %v", err)
	}
	defer p.Close()

	if gotNetwork != "udp" {
		t.Fatalf("network=%q want %q", gotNetwork, "udp")
	}
	if gotRaddr == nil || gotRaddr.Port != 4100 || !gotRaddr.IP.Equal(net.IPv4(127, 0, 0, 1)) {
		t.Fatalf("raddr=%v want 127.0.0.1:4100", gotRaddr)
	}
}

func TestNewPublisher_ResolveFailure(t *testing.T) {
	resolveErr := errors.New("nope")
	resolve := func(network, address string) (*net.UDPAddr, error) {
		return nil, resolveErr
	}
	dial := func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return &fakeConn{}, nil
	}

	_, err := newPublisher("bad:addr", resolve, dial)
	if !errors.Is(err, resolveErr) {
		t.Fatalf("err=%v want %v", err, resolveErr)
	}
}

func TestPublisher_Publish_WritesNDJSON(t *testing.T) {
	fc := &fakeConn{}
	p := &Publisher{dest: "x", conn: fc}

	track := 54.7
	if err := p.Publish(&nmea.VTG{Header: nmea.Header{Type: nmea.TypeVTG}, TrackTrueDeg: &track}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if fc.writeHits != 1 || len(fc.writes) != 1 {
		t.Fatalf("expected 1 write, got %d", fc.writeHits)
	}

	line := string(fc.writes[0])
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("expected trailing newline, got %q", line)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["type"] != "VTG" {
		t.Fatalf("type=%v want VTG", decoded["type"])
	}
}

func TestPublisher_Publish_NilNoWrite(t *testing.T) {
	fc := &fakeConn{}
	p := &Publisher{dest: "x", conn: fc}

	if err := p.Publish(nil); err != nil {
		t.Fatalf("Publish(nil) error: %v", err)
	}
	if fc.writeHits != 0 {
		t.Fatalf("expected no writes, got %d", fc.writeHits)
	}
}

func TestPublisher_Publish_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	fc := &fakeConn{writeErr: wantErr}
	p := &Publisher{dest: "x", conn: fc}

	err := p.Publish(&nmea.GGA{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v want %v", err, wantErr)
	}
}

func TestPublisher_Close_NilConnNoPanic(t *testing.T) {
	p := &Publisher{}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}
