package stego

import (
	"fmt"

	"github.com/yyyoichi/stride_stego/internal/sequencer"
)

type Params struct {
	StartBit int
	Stride   int
	Mode     sequencer.Mode
}

// Validate checks p against a carrier of carrierLen bytes.
func (p Params) Validate(carrierLen int) error {
	totalBits := carrierLen * 8
	if carrierLen <= 0 {
		return fmt.Errorf("%w: empty carrier", ErrInvalidParameters)
	}
	if p.StartBit < 0 || p.StartBit >= totalBits {
		return fmt.Errorf("%w: start bit %d outside [0, %d)", ErrInvalidParameters, p.StartBit, totalBits)
	}
	if p.Stride < 1 {
		return fmt.Errorf("%w: stride %d < 1", ErrInvalidParameters, p.Stride)
	}
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidParameters, p.Mode)
	}
	return nil
}

func (p Params) sequencer(carrierLen int) *sequencer.Sequencer {
	return sequencer.New(p.StartBit, p.Stride, p.Mode, carrierLen*8)
}

// Positions returns how many bit positions p addresses in a carrier of carrierLen bytes.
func (p Params) Positions(carrierLen int) int {
	return sequencer.Count(p.StartBit, p.Stride, p.Mode, carrierLen*8)
}
