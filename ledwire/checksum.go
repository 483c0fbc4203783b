package ledwire

type xorChecksum struct {
	sum uint8
}

func (c *xorChecksum) WriteByte(b byte) {
	c.sum ^= b
}

func (c *xorChecksum) Sum8() uint8 {
	return c.sum
}

// fletcherChecksum accumulates the mod-255 sum-of-sums the Awa footer
// carries. Accumulation is unsigned throughout; sign-extending a payload
// byte would corrupt both running sums.
type fletcherChecksum struct {
	f1, f2 uint32
}

func (c *fletcherChecksum) WriteByte(b byte) {
	c.f1 = (c.f1 + uint32(b)) % 255
	c.f2 = (c.f2 + c.f1) % 255
}

func (c *fletcherChecksum) Write(p []byte) {
	for _, b := range p {
		c.WriteByte(b)
	}
}

func (c *fletcherChecksum) Sum() (byte, byte) {
	return byte(c.f1), byte(c.f2)
}
