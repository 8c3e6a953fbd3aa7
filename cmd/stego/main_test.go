package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stego "github.com/yyyoichi/stride_stego"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand("test", "none")
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func writeCarrier(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestHideExtract(t *testing.T) {
	test := []struct {
		name  string
		flags []string
	}{
		{"defaults", nil},
		{"simple stride 3", []string{"--start-bit", "5", "--stride", "3"}},
		{"enhanced", []string{"--stride", "2", "--mode", "enhanced"}},
		{"escaped", []string{"--escape", "--stride", "1"}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			in := writeCarrier(t, "cover.bin", bytes.Repeat([]byte{0x5a}, 1024))
			out := filepath.Join(t.TempDir(), "stego.bin")

			_, err := runCommand(t, append([]string{"hide", "--carrier", in, "--text", "meet\x03at dawn", "--out", out}, tt.flags...)...)
			require.NoError(t, err)

			got, err := runCommand(t, append([]string{"extract", "--carrier", out}, tt.flags...)...)
			require.NoError(t, err)
			if tt.name == "escaped" {
				assert.Equal(t, "meet\x03at dawn", got)
			} else {
				// the raw format stops at the first 0x03
				assert.Equal(t, "meet", got)
			}
		})
	}
}

func TestHideMessageFile(t *testing.T) {
	in := writeCarrier(t, "cover.txt", make([]byte, 256))
	msg := writeCarrier(t, "secret.bin", []byte{0xde, 0xad, 0xbe, 0xef})
	out := filepath.Join(t.TempDir(), "stego.txt")

	_, err := runCommand(t, "hide", "--carrier", in, "--message", msg, "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, data, 256)

	got, err := runCommand(t, "extract", "--carrier", out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, []byte(got))
}

func TestCapacity(t *testing.T) {
	in := writeCarrier(t, "cover.bin", make([]byte, 64))

	got, err := runCommand(t, "capacity", in)
	require.NoError(t, err)
	assert.Equal(t, "7", strings.TrimSpace(got))

	got, err = runCommand(t, "capacity", in, "--stride", "1")
	require.NoError(t, err)
	assert.Equal(t, "63", strings.TrimSpace(got))
}

func TestErrors(t *testing.T) {
	full := writeCarrier(t, "full.bin", bytes.Repeat([]byte{0xff}, 64))
	small := writeCarrier(t, "small.bin", make([]byte, 4))
	out := filepath.Join(t.TempDir(), "out.bin")

	_, err := runCommand(t, "extract", "--carrier", full)
	assert.ErrorIs(t, err, stego.ErrSentinelNotFound)

	_, err = runCommand(t, "hide", "--carrier", small, "--text", "too long", "--out", out)
	assert.ErrorIs(t, err, stego.ErrCapacityExceeded)
	assert.NoFileExists(t, out)

	_, err = runCommand(t, "hide", "--carrier", small, "--out", out)
	assert.EqualError(t, err, "exactly one of --message or --text is required")

	_, err = runCommand(t, "extract", "--carrier", full, "--mode", "turbo")
	assert.ErrorIs(t, err, stego.ErrInvalidParameters)

	_, err = runCommand(t, "extract", "--carrier", full, "--stride", "0")
	assert.ErrorIs(t, err, stego.ErrInvalidParameters)
}
