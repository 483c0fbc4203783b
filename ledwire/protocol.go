// Package ledwire frames RGB payloads in the byte-oriented serial protocols
// spoken by common LED controllers.
package ledwire

import (
	"fmt"
	"strings"
)

// Protocol selects one of the supported serial framings.
type Protocol int

const (
	// Adalight is the classic 'A','d','a' framing used by Adalight
	// controllers. The controller announces itself with an Ada\n
	// handshake before streaming may begin.
	Adalight Protocol = iota
	// Awa is the Adalight dialect used by HyperSerial-style controllers,
	// with a Fletcher-16 footer over the payload.
	Awa
	// Tpm2 is the TPM2 data-frame protocol.
	Tpm2
)

type spec struct {
	name            string
	defaultBaudRate int
	headerLen       int
	footerLen       int
}

var specs = [...]spec{
	Adalight: {"ADALIGHT", 115200, 6, 0},
	Awa:      {"AWA", 2000000, 6, 2},
	Tpm2:     {"TPM2", 115200, 4, 1},
}

func (p Protocol) valid() bool { return p >= Adalight && p <= Tpm2 }

func (p Protocol) String() string {
	if !p.valid() {
		return fmt.Sprintf("unknown protocol %d", int(p))
	}
	return specs[p].name
}

// DefaultBaudRate returns the baud rate the protocol's controllers
// conventionally run at.
func (p Protocol) DefaultBaudRate() int { return specs[p].defaultBaudRate }

// NeedsHandshake reports whether the controller must announce itself
// before the first frame is written.
func (p Protocol) NeedsHandshake() bool { return p == Adalight }

// Names returns the accepted protocol names, for CLI help text.
func Names() string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.name
	}
	return strings.Join(names, ",")
}

// ParseProtocol matches s against the protocol names, case-insensitively.
func ParseProtocol(s string) (Protocol, error) {
	for i, sp := range specs {
		if strings.EqualFold(s, sp.name) {
			return Protocol(i), nil
		}
	}
	return 0, fmt.Errorf("unknown serial protocol %q (available: %s)", s, Names())
}
