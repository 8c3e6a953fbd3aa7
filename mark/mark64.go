package mark

import (
	"bytes"

	"github.com/yyyoichi/bitstream-go"
	stego "github.com/yyyoichi/stride_stego"
	"github.com/yyyoichi/stride_stego/internal/bitconv"
)

type (
	// EmbedMark is the interface required for hiding a payload.
	EmbedMark = stego.EmbedMark
	// ExtractMark is the interface required for decoding a recovered payload.
	ExtractMark = stego.ExtractMark
)

var _ stego.EmbedMark = (*Mark64)(nil)
var _ stego.ExtractMark = (*Mark64)(nil)
var _ stego.MarkDecoder = (*Mark64)(nil)

// Mark64 keeps the framed payload bits in a uint64 based bit stream.
type Mark64 struct {
	data   []byte
	reader *bitstream.BitReader[uint64]
	mf     markFactory
}

func newMark64(data []byte, mf markFactory) *Mark64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range mf.f.encode(data) {
		for i := 7; i >= 0; i-- {
			w.WriteBool((b>>uint(i))&1 == 1)
		}
	}
	reader := bitstream.NewBitReader(w.Data(), 0, 0)
	reader.SetBits(w.Bits())
	return &Mark64{
		data:   data,
		reader: reader,
		mf:     mf,
	}
}

// NewExtract returns a mark that only decodes extracted payloads.
// opts must match the ones used to create the embedded mark.
func NewExtract(opts ...Option) *Mark64 {
	return newMark64(nil, newMarkFactory(opts...))
}

// GetBit returns the framed payload bit at the specified position.
// Positions outside [0, Len()) read as false.
func (m *Mark64) GetBit(at int) bool {
	if at < 0 || at >= m.Len() {
		return false
	}
	bit, _ := m.reader.ReadBitAt(at)
	return bit
}

// Len returns the number of framed payload bits, without the sentinel.
func (m *Mark64) Len() int {
	return m.reader.Bits()
}

// Size returns the payload length in bytes before framing.
func (m *Mark64) Size() int {
	return len(m.data)
}

func (m *Mark64) NewDecoder(payload []byte) (stego.MarkDecoder, error) {
	data, err := m.mf.f.decode(payload)
	if err != nil {
		return nil, err
	}
	return newMark64(bytes.Clone(data), m.mf), nil
}

func (m *Mark64) DecodeToBytes() []byte {
	return bytes.Clone(m.data)
}

func (m *Mark64) DecodeToString() string {
	return string(m.data)
}

func (m *Mark64) DecodeToBools() []bool {
	return bitconv.BytesToBools(m.data)
}
