package relay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"
)

// HandshakeTimeout is how long an Adalight controller gets to announce
// itself after the port opens.
const HandshakeTimeout = 5000 * time.Millisecond

var (
	handshakeMagic = []byte{'A', 'd', 'a', '\n'}

	// ErrHandshakeTimeout means the controller never announced itself.
	ErrHandshakeTimeout = errors.New("timeout waiting for Ada\\n handshake")
	// ErrHandshakeMismatch means the controller sent something other
	// than the Ada\n sequence.
	ErrHandshakeMismatch = errors.New("invalid Ada\\n handshake")
)

// Handshake waits for the controller's 4-byte Ada\n announcement, which
// must arrive within timeout before any frame is written. A non-nil return
// is terminal for the session: a controller that fails the handshake is
// unsynchronized, and streaming at it blind corrupts its output. Callers
// close conn and abort rather than retry.
func Handshake(conn Connection, timeout time.Duration) error {
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		buf := make([]byte, len(handshakeMagic))
		_, err := io.ReadFull(conn, buf)
		ch <- result{buf, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("%w: %v", ErrHandshakeMismatch, r.err)
		}
		if !bytes.Equal(r.data, handshakeMagic) {
			return fmt.Errorf("%w: received % X", ErrHandshakeMismatch, r.data)
		}
		return nil
	case <-time.After(timeout):
		// The reader goroutine stays blocked on conn; the caller
		// closing conn on this error path unblocks it.
		return ErrHandshakeTimeout
	}
}
