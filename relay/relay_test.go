package relay

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heronarts/opc2serial/ledwire"
)

// captureConn records every frame written to it.
type captureConn struct {
	frames chan []byte
}

func newCaptureConn() *captureConn {
	return &captureConn{frames: make(chan []byte, 16)}
}

func (c *captureConn) Read(p []byte) (int, error) { return 0, io.EOF }

func (c *captureConn) Write(p []byte) (int, error) {
	c.frames <- append([]byte(nil), p...)
	return len(p), nil
}

func (c *captureConn) Close() error { return nil }

type failingConn struct {
	captureConn
}

func (c *failingConn) Write(p []byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestForward(t *testing.T) {
	conn := newCaptureConn()
	r := New(Config{Protocol: ledwire.Adalight}, nil, conn)

	datagram := []byte{0x00, 0x00, 0x00, 0x06, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60}
	require.NoError(t, r.forward(datagram))

	out := <-conn.frames
	assert.Equal(t, []byte{'A', 'd', 'a', 0x00, 0x01, 0x54, 0x10, 0x20, 0x30, 0x40, 0x50, 0x60}, out)
}

func TestForwardTpm2(t *testing.T) {
	conn := newCaptureConn()
	r := New(Config{Protocol: ledwire.Tpm2}, nil, conn)

	require.NoError(t, r.forward([]byte{0x00, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03}))

	out := <-conn.frames
	assert.Equal(t, []byte{0xC9, 0xDA, 0x00, 0x03, 0x01, 0x02, 0x03, 0x36}, out)
}

func TestForwardDropsMalformed(t *testing.T) {
	conn := newCaptureConn()
	r := New(Config{Channel: 2, Protocol: ledwire.Adalight}, nil, conn)

	// Too short, wrong channel, unknown command, truncated payload:
	// all dropped without a write and without ending the loop.
	for _, datagram := range [][]byte{
		{0x00, 0x00},
		{0x05, 0x00, 0x00, 0x00},
		{0x02, 0xFF, 0x00, 0x00},
		{0x02, 0x00, 0x00, 0x09, 0x01, 0x02, 0x03},
	} {
		assert.NoError(t, r.forward(datagram))
	}
	assert.Empty(t, conn.frames)
}

func TestForwardWriteError(t *testing.T) {
	conn := &failingConn{*newCaptureConn()}
	r := New(Config{Protocol: ledwire.Adalight}, nil, conn)

	err := r.forward([]byte{0x00, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	sock, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer sock.Close()

	conn := newCaptureConn()
	r := New(Config{Protocol: ledwire.Awa}, sock, conn)

	done := make(chan error, 1)
	go func() { done <- r.Run() }()

	client, err := net.Dial("udp", sock.LocalAddr().String())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Write([]byte{0x00, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03})
	require.NoError(t, err)

	select {
	case out := <-conn.frames:
		assert.Equal(t, []byte{'A', 'w', 'a', 0x00, 0x00, 0x55, 0x01, 0x02, 0x03, 0x06, 0x0A}, out)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame forwarded")
	}

	sock.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, net.ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on socket close")
	}
}
