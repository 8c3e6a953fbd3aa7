package carrier

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Kind int

const (
	Image Kind = iota + 1
	Video
	Audio
	Document
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Document:
		return "document"
	}
	return "unknown"
}

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidSignature  = errors.New("invalid file signature")
	ErrTooLarge          = errors.New("file size exceeds the maximum limit")
)

var kinds = map[string]Kind{
	"jpeg": Image, "jpg": Image, "png": Image, "webp": Image, "gif": Image,
	"mp4": Video, "avi": Video, "mov": Video,
	"mp3": Audio, "wav": Audio, "ogg": Audio,
	"txt": Document, "doc": Document, "docx": Document, "pdf": Document,
}

// Extensions without an entry are accepted without a signature check.
var signatures = map[string][][]byte{
	"jpeg": {{0xff, 0xd8, 0xff}},
	"jpg":  {{0xff, 0xd8, 0xff}},
	"png":  {{0x89, 0x50, 0x4e, 0x47}},
	"gif":  {{0x47, 0x49, 0x46, 0x38}},
	"pdf":  {{0x25, 0x50, 0x44, 0x46}},
}

// Ext returns the lower-cased extension of name without the dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// KindOf returns the media kind of a whitelisted extension.
func KindOf(ext string) (Kind, error) {
	k, ok := kinds[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return k, nil
}

// Accept checks that name has a whitelisted extension and that data does not
// exceed limit bytes (limit <= 0 disables the check). It does not look at the
// content: carriers that already hold a payload may have their magic bytes
// overwritten.
func Accept(name string, data []byte, limit int64) (Kind, error) {
	kind, err := KindOf(Ext(name))
	if err != nil {
		return 0, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return 0, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), limit)
	}
	return kind, nil
}

// Validate checks a fresh carrier before it reaches the codec: on top of
// Accept, data must start with the magic bytes of its extension.
func Validate(name string, data []byte, limit int64) (Kind, error) {
	kind, err := Accept(name, data, limit)
	if err != nil {
		return 0, err
	}
	ext := Ext(name)
	sigs, ok := signatures[ext]
	if !ok {
		return kind, nil
	}
	for _, sig := range sigs {
		if bytes.HasPrefix(data, sig) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q does not look like %s", ErrInvalidSignature, name, ext)
}
