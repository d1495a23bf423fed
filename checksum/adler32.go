package checksum

const adlerMod = 65521

// Adler32 is a streaming Adler32 accumulator, kept as the packed
// (b<<16)|a form between updates. Start with NewAdler32.
type Adler32 uint32

func NewAdler32() Adler32 {
	return Adler32(1)
}

// Update returns the accumulator advanced over p.
func (s Adler32) Update(p []byte) Adler32 {
	a := uint32(s) & 0xFFFF
	b := uint32(s) >> 16
	for _, c := range p {
		a = (a + uint32(c)) % adlerMod
		b = (b + a) % adlerMod
	}
	return Adler32(b<<16 | a)
}

// Sum returns the packed checksum.
func (s Adler32) Sum() uint32 {
	return uint32(s)
}
