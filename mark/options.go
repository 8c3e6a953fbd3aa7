package mark

type (
	// Option selects how the payload is framed before it is embedded.
	// Embedding and extraction must use the same framing.
	Option      func(*markFactory)
	markFactory struct {
		f framer
	}
	framer interface {
		encode(data []byte) []byte
		decode(data []byte) ([]byte, error)
	}
)

// WithoutEscape embeds the payload as-is.
// A payload byte equal to the sentinel 0x03 ends the extracted payload early.
func WithoutEscape() Option {
	return func(mf *markFactory) {
		mf.f = raw{}
	}
}

// WithEscape byte-stuffs the payload so that the embedded stream never
// contains the sentinel, at the cost of one extra byte for every 0x03 or
// 0x1B in the payload.
func WithEscape() Option {
	return func(mf *markFactory) {
		mf.f = escaped{}
	}
}

func newMarkFactory(opts ...Option) markFactory {
	if len(opts) == 0 {
		opts = append(opts, WithoutEscape())
	}
	var mf markFactory
	for _, opt := range opts {
		opt(&mf)
	}
	if mf.f == nil {
		mf.f = raw{}
	}
	return mf
}
