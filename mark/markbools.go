package mark

import "github.com/yyyoichi/stride_stego/internal/bitconv"

// NewBools packs bits MSB-first into bytes; a trailing partial byte is zero padded.
func NewBools(data []bool, opts ...Option) *Mark64 {
	return newMark64(bitconv.BoolsToBytes(data), newMarkFactory(opts...))
}
