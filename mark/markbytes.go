package mark

import "bytes"

func NewBytes(data []byte, opts ...Option) *Mark64 {
	return newMark64(bytes.Clone(data), newMarkFactory(opts...))
}

func NewString(data string, opts ...Option) *Mark64 {
	return newMark64([]byte(data), newMarkFactory(opts...))
}
