package checksum

import (
	refadler "hash/adler32"
	refcrc "hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRC32Vectors(t *testing.T) {
	assert.Equal(t, uint32(0x00000000), Checksum(nil))
	assert.Equal(t, uint32(0xE8B7BE43), Checksum([]byte("a")))
	assert.Equal(t, uint32(0xCBF43926), Checksum([]byte("123456789")))
}

func TestCRC32Streaming(t *testing.T) {
	whole := Checksum([]byte("123456789"))

	crc := NewCRC32()
	crc = crc.Update([]byte("1234"))
	crc = crc.Update(nil)
	crc = crc.Update([]byte("56789"))
	assert.Equal(t, whole, crc.Sum())
}

func TestAdler32Vectors(t *testing.T) {
	assert.Equal(t, uint32(0x00000001), NewAdler32().Sum())
	assert.Equal(t, uint32(0x00620062), NewAdler32().Update([]byte("a")).Sum())
	assert.Equal(t, uint32(0x091E01DE), NewAdler32().Update([]byte("123456789")).Sum())
}

func TestAdler32Streaming(t *testing.T) {
	whole := NewAdler32().Update([]byte("123456789")).Sum()

	sum := NewAdler32()
	sum = sum.Update([]byte("12345"))
	sum = sum.Update([]byte("6789"))
	assert.Equal(t, whole, sum.Sum())
}

func TestLongInputAgainstReference(t *testing.T) {
	// Enough bytes to wrap both Adler accumulators past the modulus.
	buf := make([]byte, 8192)
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	assert.Equal(t, refadler.Checksum(buf), NewAdler32().Update(buf).Sum())
	assert.Equal(t, refcrc.ChecksumIEEE(buf), Checksum(buf))
}
