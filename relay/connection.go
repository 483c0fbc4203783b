// Package relay moves OPC frames from a datagram socket to an LED
// controller attached over a serial link.
package relay

import (
	"io"
	"net"
	"strings"

	"go.bug.st/serial"
)

const tcpPrefix = "tcp:"

// Connection is the downstream byte stream framed output is written to.
type Connection interface {
	io.Reader
	io.Writer
	io.Closer
}

// Open opens the output transport. name is a serial device (8 data bits,
// no parity, one stop bit at baudRate) or, with a "tcp:" prefix, a TCP
// address for running against a controller emulator.
func Open(name string, baudRate int) (Connection, error) {
	if strings.HasPrefix(name, tcpPrefix) {
		return net.Dial("tcp", name[len(tcpPrefix):])
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	return serial.Open(name, mode)
}

// AvailablePorts returns the serial ports usable as relay outputs.
func AvailablePorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		if pe, ok := err.(*serial.PortError); ok {
			if pe.Code() == serial.ErrorEnumeratingPorts {
				// This happens on Windows when there are
				// no serial ports
				return nil, nil
			}
		}
		return nil, err
	}
	return filterPorts(ports), nil
}
