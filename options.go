package stego

import "fmt"

type Option func(*Stego) error

// WithStartBit sets the first carrier bit to write. Bit 0 is the
// most-significant bit of the first carrier byte.
func WithStartBit(startBit int) Option {
	return func(s *Stego) error {
		if startBit < 0 {
			return fmt.Errorf("%w: start bit %d < 0", ErrInvalidParameters, startBit)
		}
		s.params.StartBit = startBit
		return nil
	}
}

// WithStride sets the distance in bits between two embedded bits.
// In Enhanced mode it is only the seed of the stride sequence.
func WithStride(stride int) Option {
	return func(s *Stego) error {
		if stride < 1 {
			return fmt.Errorf("%w: stride %d < 1", ErrInvalidParameters, stride)
		}
		s.params.Stride = stride
		return nil
	}
}

// WithMode selects how the stride evolves between steps.
func WithMode(mode Mode) Option {
	return func(s *Stego) error {
		if !mode.Valid() {
			return fmt.Errorf("%w: unknown mode %v", ErrInvalidParameters, mode)
		}
		s.params.Mode = mode
		return nil
	}
}

// WithParams applies all codec parameters at once.
func WithParams(p Params) Option {
	return func(s *Stego) error {
		for _, opt := range []Option{
			WithStartBit(p.StartBit),
			WithStride(p.Stride),
			WithMode(p.Mode),
		} {
			if err := opt(s); err != nil {
				return err
			}
		}
		return nil
	}
}
