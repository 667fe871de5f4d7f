package link

import (
	"bytes"
	"errors"
	"net"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/serframe/transport"
)

func tcpPair(t *testing.T) (*TCP, *TCP) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	dialed, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	server, ok := <-accepted
	if !ok {
		t.Fatal("accept failed")
	}

	a := NewTCP(dialed, 1024, zerolog.Nop())
	b := NewTCP(server, 1024, zerolog.Nop())
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})
	return a, b
}

func TestTCPLinkFrameRoundTrip(t *testing.T) {
	a, b := tcpPair(t)

	tx := transport.NewTransmitter(a.TxQueue())
	rx := transport.NewReceiver(b.RxQueue(), 64)

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := tx.Transmit(0x0511, payload); err != nil {
		t.Fatalf("transmit: %v", err)
	}

	for attempt := 0; attempt < 200; attempt++ {
		if err := a.Pump(); err != nil {
			t.Fatalf("pump a: %v", err)
		}
		if err := b.Pump(); err != nil {
			t.Fatalf("pump b: %v", err)
		}
		f, err := rx.Receive()
		if errors.Is(err, transport.ErrWouldBlock) {
			continue
		}
		if err != nil {
			t.Fatalf("receive: %v", err)
		}
		if f.ID() != 0x0511 || !bytes.Equal(f.Bytes(), payload) {
			t.Fatalf("frame mismatch: id=%#x payload=%v", f.ID(), f.Bytes())
		}
		return
	}
	t.Fatal("frame never arrived")
}

func TestTCPLinkReportsPeerClose(t *testing.T) {
	a, b := tcpPair(t)
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// The read side eventually surfaces the closed peer as a pump error.
	for attempt := 0; attempt < 200; attempt++ {
		if err := a.Pump(); err != nil {
			return
		}
	}
	t.Fatal("pump never reported the closed peer")
}
