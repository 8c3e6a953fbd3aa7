package sequencer

import (
	"fmt"
	"math"
)

type Mode int

const (
	// Simple keeps the stride constant.
	Simple Mode = iota
	// Enhanced evolves the stride after every step with NextStride.
	Enhanced
)

func (m Mode) String() string {
	switch m {
	case Simple:
		return "simple"
	case Enhanced:
		return "enhanced"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool {
	return m == Simple || m == Enhanced
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "simple", "":
		return Simple, nil
	case "enhanced":
		return Enhanced, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// NextStride returns the stride that follows current.
// In Enhanced mode the result always lies in [8, 39].
func NextStride(current int, mode Mode) int {
	if mode == Enhanced {
		return ((current%32)*2)%32 + 8
	}
	return current
}

// Sequencer walks the bit positions of a carrier of totalBits bits.
// stride must be at least 1.
type Sequencer struct {
	pos       int
	stride    int
	mode      Mode
	totalBits int
}

func New(startBit, stride int, mode Mode, totalBits int) *Sequencer {
	return &Sequencer{
		pos:       startBit,
		stride:    stride,
		mode:      mode,
		totalBits: totalBits,
	}
}

// Next returns the next bit position. ok is false once the position
// would fall outside the carrier; the sequencer stays exhausted afterwards.
func (s *Sequencer) Next() (pos int, ok bool) {
	if s.pos < 0 || s.pos >= s.totalBits {
		return 0, false
	}
	pos = s.pos
	if s.stride > s.totalBits-s.pos {
		s.pos = s.totalBits
	} else {
		s.pos += s.stride
	}
	s.stride = NextStride(s.stride, s.mode)
	return pos, true
}

// Skip advances over up to n positions and returns how many it passed.
// A result below n means the carrier ran out.
func (s *Sequencer) Skip(n int) int {
	var skipped int
	for skipped < n {
		if _, ok := s.Next(); !ok {
			break
		}
		skipped++
	}
	return skipped
}

// Count returns the number of positions a carrier of totalBits bits offers.
func Count(startBit, stride int, mode Mode, totalBits int) int {
	if stride < 1 {
		return 0
	}
	return New(startBit, stride, mode, totalBits).Skip(math.MaxInt)
}
