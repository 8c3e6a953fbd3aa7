package stego

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	test := []struct {
		name    string
		opts    []Option
		exp     Params
		wantErr error
	}{
		{"defaults", nil, Params{StartBit: 0, Stride: DefaultStride, Mode: Simple}, nil},
		{"all", []Option{WithStartBit(9), WithStride(3), WithMode(Enhanced)}, Params{StartBit: 9, Stride: 3, Mode: Enhanced}, nil},
		{"params", []Option{WithParams(Params{StartBit: 1, Stride: 1, Mode: Enhanced})}, Params{StartBit: 1, Stride: 1, Mode: Enhanced}, nil},
		{"negative start", []Option{WithStartBit(-1)}, Params{}, ErrInvalidParameters},
		{"zero stride", []Option{WithStride(0)}, Params{}, ErrInvalidParameters},
		{"bad mode", []Option{WithMode(Mode(3))}, Params{}, ErrInvalidParameters},
		{"bad params", []Option{WithParams(Params{Stride: 0})}, Params{}, ErrInvalidParameters},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.opts...)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "error should wrap expected")
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, s.Params())
		})
	}
}

func TestEmbedExtractBytes(t *testing.T) {
	test := []struct {
		name    string
		opts    []Option
		payload []byte
	}{
		{"default", nil, []byte("secret")},
		{"simple stride 1", []Option{WithStride(1)}, []byte{0x41}},
		{"enhanced", []Option{WithStartBit(13), WithStride(5), WithMode(Enhanced)}, []byte("enhanced mode payload")},
		{"empty", []Option{WithStride(1)}, []byte{}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			carrier := bytes.Repeat([]byte{0x5a}, 2048)
			require.NoError(t, EmbedBytes(carrier, tt.payload, tt.opts...))
			assert.Len(t, carrier, 2048)
			got, err := ExtractBytes(carrier, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, got)
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("capacity", func(t *testing.T) {
		carrier := make([]byte, 8)
		err := EmbedBytes(carrier, []byte("too long for this carrier"))
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, make([]byte, 8), carrier)
	})
	t.Run("sentinel", func(t *testing.T) {
		_, err := ExtractBytes(bytes.Repeat([]byte{0xff}, 16), WithStride(1))
		assert.ErrorIs(t, err, ErrSentinelNotFound)
	})
	t.Run("start bit outside carrier", func(t *testing.T) {
		err := EmbedBytes(make([]byte, 2), nil, WithStartBit(16))
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
	t.Run("bad option", func(t *testing.T) {
		_, err := ExtractBytes(make([]byte, 2), WithStride(-4))
		assert.ErrorIs(t, err, ErrInvalidParameters)
		assert.ErrorIs(t, Embed(make([]byte, 2), bytesMark{}, WithStride(-4)), ErrInvalidParameters)
		_, err = Extract(make([]byte, 2), nil, WithStride(-4))
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("enhanced")
	require.NoError(t, err)
	assert.Equal(t, Enhanced, m)

	_, err = ParseMode("fast")
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestCapacity(t *testing.T) {
	s, err := New(WithStride(1))
	require.NoError(t, err)
	assert.Equal(t, 63, s.Capacity(64))
	assert.NoError(t, s.Enable(64, 63*8))
	assert.ErrorIs(t, s.Enable(64, 63*8+1), ErrCapacityExceeded)
}
