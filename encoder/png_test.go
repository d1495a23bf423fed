package encoder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veea-project/snapcam/checksum"
	"github.com/veea-project/snapcam/frames"
	"github.com/veea-project/snapcam/pixel"
)

// patternSource fills rows with a deterministic pattern:
// R=x, G=y, B=x^y (all mod 256).
type patternSource struct {
	width, height int
}

func (p *patternSource) Width() int  { return p.width }
func (p *patternSource) Height() int { return p.height }

func (p *patternSource) Row(y int, dst []byte) error {
	for x := 0; x < p.width; x++ {
		dst[3*x] = byte(x)
		dst[3*x+1] = byte(y)
		dst[3*x+2] = byte(x ^ y)
	}
	return nil
}

type chunk struct {
	tag     string
	payload []byte
}

func parseChunks(t *testing.T, data []byte) []chunk {
	require.True(t, len(data) > 8)
	require.Equal(t, pngSignature, data[:8])
	rest := data[8:]
	var chunks []chunk
	for len(rest) > 0 {
		require.True(t, len(rest) >= 12)
		length := int(binary.BigEndian.Uint32(rest[0:4]))
		tag := string(rest[4:8])
		require.True(t, len(rest) >= 12+length, "truncated %s chunk", tag)
		payload := rest[8 : 8+length]
		crc := binary.BigEndian.Uint32(rest[8+length : 12+length])
		require.Equal(t, checksum.NewCRC32().Update(rest[4:8]).Update(payload).Sum(), crc,
			"%s chunk crc", tag)
		chunks = append(chunks, chunk{tag: tag, payload: payload})
		rest = rest[12+length:]
	}
	return chunks
}

func findChunk(t *testing.T, chunks []chunk, tag string) chunk {
	for _, c := range chunks {
		if c.tag == tag {
			return c
		}
	}
	t.Fatalf("no %s chunk", tag)
	return chunk{}
}

func TestPNGRoundTrip(t *testing.T) {
	src := &patternSource{width: 33, height: 17}
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, src))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 33, 17), img.Bounds())

	for y := 0; y < 17; y++ {
		for x := 0; x < 33; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			require.Equal(t, uint32(x), r>>8, "red at %d,%d", x, y)
			require.Equal(t, uint32(y), g>>8, "green at %d,%d", x, y)
			require.Equal(t, uint32(x^y), b>>8, "blue at %d,%d", x, y)
		}
	}
}

func TestPNGStructure(t *testing.T) {
	src := &patternSource{width: 5, height: 3}
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, src))

	chunks := parseChunks(t, buf.Bytes())
	require.Len(t, chunks, 3)
	assert.Equal(t, "IHDR", chunks[0].tag)
	assert.Equal(t, "IDAT", chunks[1].tag)
	assert.Equal(t, "IEND", chunks[2].tag)

	ihdr := chunks[0].payload
	require.Len(t, ihdr, 13)
	assert.Equal(t, uint32(5), binary.BigEndian.Uint32(ihdr[0:]))
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(ihdr[4:]))
	assert.Equal(t, byte(8), ihdr[8])  // bit depth
	assert.Equal(t, byte(2), ihdr[9])  // truecolour
	assert.Equal(t, byte(0), ihdr[12]) // no interlace

	assert.Empty(t, chunks[2].payload)
}

// walkStoredBlocks checks the zlib framing inside an IDAT payload and
// returns the number of stored blocks.
func walkStoredBlocks(t *testing.T, payload []byte) int {
	require.True(t, len(payload) >= 6)
	body := payload[2 : len(payload)-4]
	blocks := 0
	off := 0
	for {
		require.True(t, off+5 <= len(body))
		final := body[off]&1 == 1
		length := binary.LittleEndian.Uint16(body[off+1:])
		nlength := binary.LittleEndian.Uint16(body[off+3:])
		require.Equal(t, ^length, nlength, "block %d length complement", blocks)
		off += 5 + int(length)
		blocks++
		if final {
			break
		}
	}
	require.Equal(t, len(body), off, "bytes after final block")
	return blocks
}

func TestStoredBlockBoundaries(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		wantBlocks    int
	}{
		{"one byte under", 2, 9362, 1}, // 7*9362 = 65534
		{"exact multiple", 28, 771, 1}, // 85*771 = 65535
		{"one byte over", 1, 16384, 2}, // 4*16384 = 65536
		{"well over", 28, 1600, 3},     // 85*1600 = 136000
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodePNG(&buf, &patternSource{width: c.width, height: c.height}))

			idat := findChunk(t, parseChunks(t, buf.Bytes()), "IDAT")
			dataLen := c.height * (c.width*3 + 1)
			wantWrapped := 2 + dataLen + 5*c.wantBlocks + 4
			require.Len(t, idat.payload, wantWrapped)
			assert.Equal(t, c.wantBlocks, walkStoredBlocks(t, idat.payload))

			// The reference decoder must still accept the stream.
			img, err := png.Decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, c.width, c.height), img.Bounds())
		})
	}
}

func TestOddWidthYUYVFrameEncodes(t *testing.T) {
	// An odd-width YUYV frame carries complete trailing chroma groups,
	// so every row conversion stays within its own row's bytes all the
	// way through the encoder, last row included.
	source := frames.NewTestSource()
	require.NoError(t, source.Configure(pixel.YUYV422, 3, 2))
	frame, err := source.Acquire(0)
	require.NoError(t, err)
	require.Equal(t, pixel.YUYV422.RowBytes(3), frame.Stride)
	require.NoError(t, frame.Check())

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, Rows(frame)))

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

type failWriter struct {
	budget int
}

func (w *failWriter) Write(p []byte) (int, error) {
	w.budget -= len(p)
	if w.budget < 0 {
		return 0, errors.New("sink full")
	}
	return len(p), nil
}

func TestPNGSinkErrorPropagates(t *testing.T) {
	src := &patternSource{width: 16, height: 16}
	for _, budget := range []int{0, 8, 30, 100} {
		err := EncodePNG(&failWriter{budget: budget}, src)
		require.EqualError(t, err, "sink full")
	}
}

type failingRows struct {
	patternSource
	failAt int
}

func (p *failingRows) Row(y int, dst []byte) error {
	if y == p.failAt {
		return errors.New("sensor row fault")
	}
	return p.patternSource.Row(y, dst)
}

func TestPNGRowErrorPropagates(t *testing.T) {
	src := &failingRows{patternSource: patternSource{width: 4, height: 4}, failAt: 2}
	var buf bytes.Buffer
	err := EncodePNG(&buf, src)
	require.EqualError(t, err, "sensor row fault")
}

func TestEmptyImageRejected(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, EncodePNG(&buf, &patternSource{width: 0, height: 10}))
	assert.Error(t, EncodePNG(&buf, &patternSource{width: 10, height: 0}))
	assert.Error(t, EncodeBMP(&buf, &patternSource{width: 0, height: 0}))
	assert.Error(t, EncodeRaw(&buf, &patternSource{width: 0, height: 1}))
}
