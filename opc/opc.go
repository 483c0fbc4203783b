// Package opc decodes Open Pixel Control datagrams.
//
// OPC messages carry a 4-byte header (channel, command, 16-bit big-endian
// data length) followed by raw RGB payload bytes. See
// http://openpixelcontrol.org for the wire format.
package opc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderLen is the fixed size of the OPC message header.
	HeaderLen = 4

	// CmdSetPixelColors is the only OPC command the decoder accepts.
	CmdSetPixelColors byte = 0

	// ChannelBroadcast addresses every channel and is always accepted.
	ChannelBroadcast byte = 0
)

var (
	// ErrTooShort means the datagram cannot even hold the header.
	ErrTooShort = errors.New("datagram shorter than OPC header")
	// ErrChannelMismatch means the message addresses a channel the
	// caller is not listening on. Callers log and move on.
	ErrChannelMismatch = errors.New("OPC channel mismatch")
	// ErrUnsupportedCommand means the command byte is not SET_PIXEL_COLORS.
	ErrUnsupportedCommand = errors.New("unsupported OPC command")
	// ErrPayloadTooLarge means the declared length exceeds the caller's
	// receive capacity.
	ErrPayloadTooLarge = errors.New("OPC payload exceeds receive capacity")
	// ErrTruncatedPayload means the declared length exceeds the bytes
	// actually received.
	ErrTruncatedPayload = errors.New("OPC payload truncated")
)

// Frame is a single decoded OPC message.
type Frame struct {
	Channel byte
	Command byte
	// Payload aliases the datagram it was decoded from. It is only valid
	// until the receive buffer is reused for the next datagram.
	Payload []byte
}

// LEDCount returns how many whole RGB triplets the payload holds.
func (f Frame) LEDCount() int { return len(f.Payload) / 3 }

// IsRGB reports whether the payload is a whole number of RGB triplets.
func (f Frame) IsRGB() bool { return len(f.Payload)%3 == 0 }

// Decode validates datagram and extracts its payload. expectedChannel is
// the channel the caller listens on; channel 0 messages are broadcast and
// always pass. maxDatagram is the caller's receive buffer capacity, used to
// reject messages a reused fixed-size buffer could never hold in full.
//
// Decode never inspects payload contents. A payload that is not a whole
// number of RGB triplets still decodes; use Frame.IsRGB to warn about it.
func Decode(datagram []byte, expectedChannel byte, maxDatagram int) (Frame, error) {
	if len(datagram) < HeaderLen {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrTooShort, len(datagram))
	}
	channel := datagram[0]
	if channel != ChannelBroadcast && channel != expectedChannel {
		return Frame{}, fmt.Errorf("%w: channel %d", ErrChannelMismatch, channel)
	}
	command := datagram[1]
	if command != CmdSetPixelColors {
		return Frame{}, fmt.Errorf("%w: 0x%X", ErrUnsupportedCommand, command)
	}
	dataLen := int(binary.BigEndian.Uint16(datagram[2:HeaderLen]))
	if HeaderLen+dataLen > maxDatagram {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, dataLen)
	}
	if HeaderLen+dataLen > len(datagram) {
		return Frame{}, fmt.Errorf("%w: declared %d bytes, received %d",
			ErrTruncatedPayload, dataLen, len(datagram)-HeaderLen)
	}
	return Frame{
		Channel: channel,
		Command: command,
		Payload: datagram[HeaderLen : HeaderLen+dataLen],
	}, nil
}
