package stego

import (
	"fmt"

	"github.com/yyyoichi/stride_stego/internal/sequencer"
	"github.com/yyyoichi/stride_stego/internal/stego"
)

const (
	DefaultStride = 8
	// Sentinel is the byte that terminates a hidden payload.
	Sentinel = stego.Sentinel
)

type (
	// Params are the values both sides must share: embedding and extraction
	// with different Params read unrelated bits.
	Params = stego.Params
	Mode   = sequencer.Mode
)

const (
	Simple   = sequencer.Simple
	Enhanced = sequencer.Enhanced
)

var (
	ErrInvalidParameters = stego.ErrInvalidParameters
	ErrCapacityExceeded  = stego.ErrCapacityExceeded
	ErrSentinelNotFound  = stego.ErrSentinelNotFound
)

// ParseMode parses "simple" or "enhanced". An empty string selects Simple.
func ParseMode(s string) (Mode, error) {
	m, err := sequencer.ParseMode(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	return m, nil
}

// Embed hides mark in carrier with the specified options.
// This is a convenience function that creates a Stego instance and calls its Embed method.
func Embed(carrier []byte, mark EmbedMark, opts ...Option) error {
	s, err := New(opts...)
	if err != nil {
		return err
	}
	return s.Embed(carrier, mark)
}

// Extract recovers a payload from carrier with the specified options.
// This is a convenience function that creates a Stego instance and calls its Extract method.
func Extract(carrier []byte, mark ExtractMark, opts ...Option) (MarkDecoder, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Extract(carrier, mark)
}

// EmbedBytes hides payload in carrier as is.
func EmbedBytes(carrier, payload []byte, opts ...Option) error {
	s, err := New(opts...)
	if err != nil {
		return err
	}
	return s.EmbedBytes(carrier, payload)
}

// ExtractBytes returns the raw bytes hidden before the sentinel.
func ExtractBytes(carrier []byte, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.ExtractBytes(carrier)
}

type Stego struct {
	params stego.Params
}

// New initializes a codec. The start bit, stride and mode can be optionally
// specified; by default embedding starts at bit 0 with a constant stride of 8.
func New(opts ...Option) (*Stego, error) {
	s := new(Stego)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stego) Params() Params {
	return s.params
}

// Embed overwrites one carrier bit per mark bit, then writes the sentinel
// byte 0x03 along the same sequence of positions.
//
// Returns ErrCapacityExceeded if the positions run out first, and
// ErrInvalidParameters if the start bit lies outside the carrier. On error
// the carrier is not modified.
func (s *Stego) Embed(carrier []byte, mark EmbedMark) error {
	return stego.Embed(carrier, mark, s.params)
}

// Extract reads the carrier bits along the same positions used by Embed
// until the sentinel byte and hands the preceding bytes to mark.
//
// Returns ErrSentinelNotFound if the carrier ends before the sentinel, which
// usually means the parameters differ from the ones used to embed.
func (s *Stego) Extract(carrier []byte, mark ExtractMark) (MarkDecoder, error) {
	payload, err := stego.Extract(carrier, s.params)
	if err != nil {
		return nil, err
	}
	return mark.NewDecoder(payload)
}

func (s *Stego) EmbedBytes(carrier, payload []byte) error {
	return stego.Embed(carrier, bytesMark(payload), s.params)
}

// ExtractBytes recovers the bytes before the sentinel. A payload that itself
// contains 0x03 on a byte boundary is cut short there; use mark.WithEscape
// for arbitrary binary payloads.
func (s *Stego) ExtractBytes(carrier []byte) ([]byte, error) {
	return stego.Extract(carrier, s.params)
}

// Capacity returns the number of whole payload bytes a carrier of
// carrierLen bytes can hold with these parameters.
func (s *Stego) Capacity(carrierLen int) int {
	return stego.Capacity(carrierLen, s.params)
}

// Enable reports whether a mark of markLen bits fits in a carrier of carrierLen bytes.
func (s *Stego) Enable(carrierLen, markLen int) error {
	return stego.Enable(carrierLen, markLen, s.params)
}

func (s *Stego) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.params.Stride == 0 {
		s.params.Stride = DefaultStride
	}
	return nil
}
