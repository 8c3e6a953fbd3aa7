package bitconv

// Bit index 0 is the most-significant bit of byte 0.

func BitAt(buf []byte, i int) bool {
	return (buf[i/8]>>uint(7-i%8))&1 == 1
}

// SetBitAt overwrites bit i of buf and leaves the other 7 bits of the byte untouched.
func SetBitAt(buf []byte, i int, v bool) {
	mask := byte(1) << uint(7-i%8)
	if v {
		buf[i/8] |= mask
	} else {
		buf[i/8] &^= mask
	}
}

func BytesToBools(b []byte) []bool {
	bits := make([]bool, len(b)*8)
	for i := range bits {
		bits[i] = BitAt(b, i)
	}
	return bits
}

// BoolsToBytes packs bits MSB-first. A trailing partial byte is zero padded.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
