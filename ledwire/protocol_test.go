package ledwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProtocol(t *testing.T) {
	for _, p := range []Protocol{Adalight, Awa, Tpm2} {
		parsed, err := ParseProtocol(p.String())
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	parsed, err := ParseProtocol("adalight")
	assert.NoError(t, err)
	assert.Equal(t, Adalight, parsed)

	_, err = ParseProtocol("ws2812")
	assert.Error(t, err)
}

func TestProtocolProperties(t *testing.T) {
	assert.Equal(t, 115200, Adalight.DefaultBaudRate())
	assert.Equal(t, 2000000, Awa.DefaultBaudRate())
	assert.Equal(t, 115200, Tpm2.DefaultBaudRate())

	assert.True(t, Adalight.NeedsHandshake())
	assert.False(t, Awa.NeedsHandshake())
	assert.False(t, Tpm2.NeedsHandshake())

	assert.Equal(t, "ADALIGHT,AWA,TPM2", Names())
}
