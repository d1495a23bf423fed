package encoder

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veea-project/snapcam/frames"
	"github.com/veea-project/snapcam/pixel"
)

func TestBMPLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBMP(&buf, &patternSource{width: 2, height: 2}))
	data := buf.Bytes()

	// rowBytes=6, pad=2, image 16 bytes, file 70.
	require.Len(t, data, 70)
	assert.Equal(t, byte('B'), data[0])
	assert.Equal(t, byte('M'), data[1])
	assert.Equal(t, uint32(70), binary.LittleEndian.Uint32(data[2:]))
	assert.Equal(t, uint32(54), binary.LittleEndian.Uint32(data[10:]))
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(data[14:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[18:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[22:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[26:]))
	assert.Equal(t, uint16(24), binary.LittleEndian.Uint16(data[28:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[30:]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(data[34:]))

	// Bottom-up, BGR, zero padded. Pattern: R=x G=y B=x^y.
	assert.Equal(t, []byte{1, 1, 0, 0, 1, 1, 0, 0}, data[54:62]) // y=1
	assert.Equal(t, []byte{0, 0, 0, 1, 0, 1, 0, 0}, data[62:70]) // y=0
}

func TestBMPRowPadding(t *testing.T) {
	// width 4: rowBytes 12, no padding.
	var buf bytes.Buffer
	require.NoError(t, EncodeBMP(&buf, &patternSource{width: 4, height: 3}))
	assert.Len(t, buf.Bytes(), 54+12*3)

	// width 3: rowBytes 9, padded to 12.
	buf.Reset()
	require.NoError(t, EncodeBMP(&buf, &patternSource{width: 3, height: 3}))
	assert.Len(t, buf.Bytes(), 54+12*3)
}

func TestRawOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeRaw(&buf, &patternSource{width: 2, height: 2}))
	assert.Equal(t, []byte{
		0, 0, 0, 1, 0, 1, // y=0
		0, 1, 1, 1, 1, 0, // y=1
	}, buf.Bytes())
}

func TestRowsAdapter(t *testing.T) {
	// One RGB565 row: full red, full green.
	frame := &frames.Frame{
		Format: pixel.RGB565BE,
		Width:  2,
		Height: 1,
		Stride: 4,
		Pix:    []byte{0xF8, 0x00, 0x07, 0xE0},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Raw, Rows(frame)))
	assert.Equal(t, []byte{255, 0, 0, 0, 255, 0}, buf.Bytes())
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, [4]byte{'P', 'N', 'G', ' '}, PNG.Tag())
	assert.Equal(t, [4]byte{'B', 'M', 'P', ' '}, BMP.Tag())
	assert.Equal(t, [4]byte{'R', 'A', 'W', ' '}, Raw.Tag())
}

func TestParseContainerFormat(t *testing.T) {
	for _, c := range []struct {
		name string
		want Format
	}{
		{"png", PNG}, {"bmp", BMP}, {"raw", Raw},
	} {
		got, err := ParseFormat(c.name)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
	_, err := ParseFormat("jpeg")
	assert.Error(t, err)
}
