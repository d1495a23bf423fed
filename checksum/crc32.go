package checksum

// The image container uses the reflected CRC32 with polynomial
// 0xEDB88320. The table is filled in at startup so there is no
// lazy-init race between the capture worker and anything else that
// checksums bytes.
var crcTable [256]uint32

func init() {
	for i := range crcTable {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crcTable[i] = c
	}
}

// CRC32 is a streaming CRC32 accumulator. The zero value is not
// valid; start with NewCRC32.
type CRC32 uint32

func NewCRC32() CRC32 {
	return CRC32(0xFFFFFFFF)
}

// Update returns the accumulator advanced over p.
func (c CRC32) Update(p []byte) CRC32 {
	acc := uint32(c)
	for _, b := range p {
		acc = crcTable[(acc^uint32(b))&0xFF] ^ (acc >> 8)
	}
	return CRC32(acc)
}

// Sum finalises the accumulator by inverting all bits.
func (c CRC32) Sum() uint32 {
	return uint32(c) ^ 0xFFFFFFFF
}

// Checksum returns the CRC32 of p in one call.
func Checksum(p []byte) uint32 {
	return NewCRC32().Update(p).Sum()
}
