package stego

import "github.com/yyyoichi/stride_stego/internal/bitconv"

// EmbedMark supplies the payload bits to hide, MSB-first.
type EmbedMark interface {
	GetBit(at int) bool
	Len() int
}

// ExtractMark turns the bytes recovered before the sentinel into a MarkDecoder.
type ExtractMark interface {
	NewDecoder(payload []byte) (MarkDecoder, error)
}

type MarkDecoder interface {
	DecodeToBytes() []byte
	DecodeToString() string
	DecodeToBools() []bool
}

var _ EmbedMark = bytesMark(nil)

type bytesMark []byte

func (m bytesMark) GetBit(at int) bool {
	return bitconv.BitAt(m, at)
}

func (m bytesMark) Len() int {
	return len(m) * 8
}
