package relay

import (
	"errors"
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"

	"github.com/heronarts/opc2serial/ledwire"
	"github.com/heronarts/opc2serial/opc"
)

// ReceiveBufLen caps the inbound datagram size and, through the decoder's
// capacity guard, the largest payload a single frame may carry.
const ReceiveBufLen = 4096

// Config carries the relay settings fixed before the loop starts.
type Config struct {
	// Channel is the OPC channel to listen for; broadcast messages
	// always pass.
	Channel byte
	// Protocol selects the output framing.
	Protocol ledwire.Protocol
	// Debug enables the per-frame forwarding counter.
	Debug bool
}

// Relay forwards OPC frames from a datagram socket to an LED controller.
// It runs a single blocking receive → decode → encode → write loop; there
// is no internal queueing, so datagrams arriving faster than the serial
// link drains are dropped by the transport, never buffered here.
type Relay struct {
	cfg  Config
	sock net.PacketConn
	conn Connection

	frameCount uint64
}

// New wires a relay to an already-bound socket and an already-opened (and,
// for Adalight, already-handshaken) connection. The relay owns neither;
// the caller closes both.
func New(cfg Config, sock net.PacketConn, conn Connection) *Relay {
	return &Relay{cfg: cfg, sock: sock, conn: conn}
}

// Run receives datagrams until the socket fails or is closed. Malformed
// datagrams are logged and dropped; the loop continues. The first socket
// or serial error is returned and ends the session. A socket closed by the
// caller surfaces as net.ErrClosed.
func (r *Relay) Run() error {
	buf := make([]byte, ReceiveBufLen)
	for {
		n, _, err := r.sock.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			return fmt.Errorf("receive: %w", err)
		}
		if err := r.forward(buf[:n]); err != nil {
			return err
		}
	}
}

func (r *Relay) forward(datagram []byte) error {
	frame, err := opc.Decode(datagram, r.cfg.Channel, ReceiveBufLen)
	if err != nil {
		log.Warnf("dropping datagram: %v", err)
		return nil
	}
	if r.cfg.Protocol != ledwire.Tpm2 && !frame.IsRGB() {
		log.Warnf("payload length %d is not a whole number of RGB triplets", len(frame.Payload))
	}
	out, err := ledwire.Encode(r.cfg.Protocol, frame.Payload)
	if err != nil {
		log.Warnf("dropping frame: %v", err)
		return nil
	}
	if _, err := r.conn.Write(out); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if r.cfg.Debug {
		r.frameCount++
		log.Debugf("[%d] forwarded payload of %d bytes", r.frameCount, len(frame.Payload))
	}
	return nil
}
