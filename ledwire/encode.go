package ledwire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	adaChecksumMagic = 0x55

	tpm2StartByte byte = 0xC9
	tpm2DataFrame byte = 0xDA
	tpm2EndByte   byte = 0x36

	// Every protocol header encodes the payload length (or the LED count
	// derived from it) in a 16-bit field.
	maxPayloadLen = 0xFFFF
)

// ErrPayloadTooLong means the payload cannot be represented in the
// protocol's 16-bit length field.
var ErrPayloadTooLong = errors.New("payload does not fit 16-bit frame length field")

// Encode frames payload for protocol p, returning the exact byte sequence
// to write to the controller. The result is always
// headerLen + len(payload) + footerLen bytes and is freshly allocated, so
// payload may alias a reused receive buffer.
func Encode(p Protocol, payload []byte) ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("cannot encode for %s", p)
	}
	if len(payload) > maxPayloadLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(payload))
	}
	sp := specs[p]
	out := make([]byte, sp.headerLen+len(payload)+sp.footerLen)

	switch p {
	case Adalight, Awa:
		out[0] = 'A'
		if p == Awa {
			out[1] = 'w'
		} else {
			out[1] = 'd'
		}
		out[2] = 'a'

		// The wire field holds ledCount-1: a value of 0x0001 means two
		// LEDs. Adalight has always encoded it this way, quirky as it
		// is, and an empty payload wraps to 0xFFFF.
		ledCount := len(payload) / 3
		out[3] = byte((ledCount - 1) >> 8)
		out[4] = byte(ledCount - 1)

		cs := &xorChecksum{sum: adaChecksumMagic}
		cs.WriteByte(out[3])
		cs.WriteByte(out[4])
		out[5] = cs.Sum8()
	case Tpm2:
		out[0] = tpm2StartByte
		out[1] = tpm2DataFrame
		binary.BigEndian.PutUint16(out[2:4], uint16(len(payload)))
		out[len(out)-1] = tpm2EndByte
	}

	copy(out[sp.headerLen:], payload)

	if p == Awa {
		cs := &fletcherChecksum{}
		cs.Write(payload)
		out[len(out)-2], out[len(out)-1] = cs.Sum()
	}
	return out, nil
}
