package mark

import (
	"errors"
	"fmt"

	stego "github.com/yyyoichi/stride_stego"
)

const (
	escapeByte byte = 0x1b
	escapeMask byte = 0x20
)

var ErrMalformedEscape = errors.New("malformed escape sequence")

var _ framer = (*raw)(nil)

type raw struct{}

func (raw) encode(data []byte) []byte {
	return data
}

func (raw) decode(data []byte) ([]byte, error) {
	return data, nil
}

var _ framer = (*escaped)(nil)

type escaped struct{}

func (escaped) encode(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b == stego.Sentinel || b == escapeByte {
			out = append(out, escapeByte, b^escapeMask)
			continue
		}
		out = append(out, b)
	}
	return out
}

func (escaped) decode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != escapeByte {
			out = append(out, b)
			continue
		}
		if i+1 == len(data) {
			return nil, fmt.Errorf("%w: trailing escape byte at %d", ErrMalformedEscape, i)
		}
		i++
		out = append(out, data[i]^escapeMask)
	}
	return out, nil
}
