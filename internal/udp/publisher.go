package udp

import (
	"encoding/json"
	"fmt"
	"net"
)

// udpConn is the subset of *net.UDPConn the publisher needs; tests swap in
// a fake.
type udpConn interface {
	Write(p []byte) (int, error)
	Close() error
}

// Publisher sends decoded records as newline-delimited JSON datagrams to a
// fixed destination.
type Publisher struct {
	dest string
	conn udpConn
}

func NewPublisher(dest string) (*Publisher, error) {
	return newPublisher(dest, net.ResolveUDPAddr, func(network string, laddr, raddr *net.UDPAddr) (udpConn, error) {
		return net.DialUDP(network, laddr, raddr)
	})
}

func newPublisher(
	dest string,
	resolve func(network, address string) (*net.UDPAddr, error),
	dial func(network string, laddr, raddr *net.UDPAddr) (udpConn, error),
) (*Publisher, error) {
	addr, err := resolve("udp", dest)
	if err != nil {
		return nil, fmt.Errorf("resolve dest: %w", err)
	}

	// DialUDP selects a suitable local address automatically.
	conn, err := dial("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp: %w", err)
	}

	return &Publisher{
		dest: dest,
		conn: conn,
	}, nil
}

// Publish marshals rec and sends it as a single datagram with a trailing
// newline so consumers can treat the stream as NDJSON.
func (p *Publisher) Publish(rec any) error {
	if rec == nil {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	b = append(b, '\n')
	_, err = p.conn.Write(b)
	return err
}

func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
