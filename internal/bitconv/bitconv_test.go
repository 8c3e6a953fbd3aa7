package bitconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitConv(t *testing.T) {
	test := []struct {
		data []byte
		exp  []byte
	}{
		{data: []byte{0b10101010}, exp: []byte{0b10101010}},
		{data: []byte{0b11110000, 0b00001111}, exp: []byte{0b11110000, 0b00001111}},
		{data: []byte("Hello"), exp: []byte("Hello")},
		{data: []byte("こんにちは"), exp: []byte("こんにちは")},
		{data: []byte{}, exp: []byte{}},
	}
	for _, tt := range test {
		bits := BytesToBools(tt.data)
		assert.Len(t, bits, len(tt.data)*8)
		out := BoolsToBytes(bits)
		assert.Equal(t, tt.exp, out)
	}

	assert.Equal(t, []byte{0b10110000}, BoolsToBytes([]bool{true, false, true, true}))
	assert.Equal(t, []bool{false, true, false, false, false, false, false, true}, BytesToBools([]byte{0x41}))
}

func TestBitAt(t *testing.T) {
	buf := []byte{0b10000001, 0b01000000}
	assert.True(t, BitAt(buf, 0))
	assert.False(t, BitAt(buf, 1))
	assert.True(t, BitAt(buf, 7))
	assert.False(t, BitAt(buf, 8))
	assert.True(t, BitAt(buf, 9))
}

func TestSetBitAt(t *testing.T) {
	buf := []byte{0x00, 0xff}
	SetBitAt(buf, 1, true)
	SetBitAt(buf, 7, true)
	SetBitAt(buf, 8, false)
	SetBitAt(buf, 15, false)
	assert.Equal(t, []byte{0b01000001, 0b01111110}, buf)

	// writing the value already present changes nothing
	SetBitAt(buf, 1, true)
	SetBitAt(buf, 8, false)
	assert.Equal(t, []byte{0b01000001, 0b01111110}, buf)
}
