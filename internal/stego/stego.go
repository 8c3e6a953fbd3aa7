package stego

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/stride_stego/internal/bitconv"
)

var (
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrSentinelNotFound  = errors.New("sentinel not found")
)

const (
	// Sentinel terminates the hidden payload (ASCII End of Text).
	Sentinel     byte = 0x03
	SentinelBits      = 8
)

type EmbedMark interface {
	GetBit(at int) bool
	Len() int
}

// Capacity returns how many whole payload bytes fit in a carrier of
// carrierLen bytes, leaving room for the sentinel.
func Capacity(carrierLen int, p Params) int {
	if err := p.Validate(carrierLen); err != nil {
		return 0
	}
	n := p.Positions(carrierLen) - SentinelBits
	if n < 0 {
		return 0
	}
	return n / 8
}

// Enable reports whether markLen payload bits plus the sentinel fit in the carrier.
func Enable(carrierLen int, markLen int, p Params) error {
	if err := p.Validate(carrierLen); err != nil {
		return err
	}
	need := markLen + SentinelBits
	if total := p.Positions(carrierLen); total < need {
		return fmt.Errorf("%w: need %d bit positions, carrier offers %d", ErrCapacityExceeded, need, total)
	}
	return nil
}

// Embed writes the mark bits followed by the sentinel into carrier.
// The sequence is walked once without writing to check that it is long
// enough, so a failed call leaves carrier untouched.
func Embed(carrier []byte, mark EmbedMark, p Params) error {
	if err := p.Validate(len(carrier)); err != nil {
		return err
	}
	var (
		markLen = mark.Len()
		need    = markLen + SentinelBits
	)
	if n := p.sequencer(len(carrier)).Skip(need); n < need {
		return fmt.Errorf("%w: need %d bit positions, carrier offers %d", ErrCapacityExceeded, need, n)
	}
	seq := p.sequencer(len(carrier))
	for at := range markLen {
		pos, _ := seq.Next()
		bitconv.SetBitAt(carrier, pos, mark.GetBit(at))
	}
	for i := range SentinelBits {
		pos, _ := seq.Next()
		bitconv.SetBitAt(carrier, pos, (Sentinel>>uint(7-i))&1 == 1)
	}
	return nil
}

// Extract reads bytes along the sequence until the sentinel byte and returns
// the bytes before it.
func Extract(carrier []byte, p Params) ([]byte, error) {
	if err := p.Validate(len(carrier)); err != nil {
		return nil, err
	}
	var (
		seq     = p.sequencer(len(carrier))
		payload = []byte{}
		cur     byte
		n       int
	)
	for {
		pos, ok := seq.Next()
		if !ok {
			return nil, fmt.Errorf("%w: carrier exhausted after %d bytes", ErrSentinelNotFound, len(payload))
		}
		cur <<= 1
		if bitconv.BitAt(carrier, pos) {
			cur |= 1
		}
		n++
		if n < 8 {
			continue
		}
		if cur == Sentinel {
			return payload, nil
		}
		payload = append(payload, cur)
		cur, n = 0, 0
	}
}
