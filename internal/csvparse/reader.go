package csvparse

// reader.go prepares uploaded bytes for Parse.
//
// Exports come from spreadsheet tools and browsers with the usual baggage:
//
//   - a UTF-8 byte order mark written by Windows tools
//   - stray bytes that are not valid UTF-8
//   - files far larger than any invoice needs
//
// ReadText applies all three guards and returns a string ready for Parse.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrTooLarge is returned by ReadText when the input exceeds its limit.
var ErrTooLarge = errors.New("file too large")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkipper drops a leading UTF-8 byte order mark.
type BOMSkipper struct {
	br      *bufio.Reader
	checked bool
}

// NewBOMSkipper wraps r.
func NewBOMSkipper(r io.Reader) *BOMSkipper {
	return &BOMSkipper{br: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (b *BOMSkipper) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		if head, err := b.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := b.br.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.br.Read(p)
}

// UTF8Sanitizer replaces every byte that is not part of a valid UTF-8
// sequence with '?'. A multi-byte sequence split across two reads of the
// underlying reader is held back until it is complete.
type UTF8Sanitizer struct {
	r       io.Reader
	buf     []byte
	pending []byte
	out     []byte
	err     error
}

// NewUTF8Sanitizer wraps r.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{r: r, buf: make([]byte, 32*1024)}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.out) == 0 {
		if s.err != nil {
			return 0, s.err
		}

		n, err := s.r.Read(s.buf)
		data := append(s.pending, s.buf[:n]...)
		s.err = err

		end := len(data)
		if err == nil {
			end -= incompleteTail(data)
		}

		s.out = appendSanitized(s.out[:0], data[:end])
		s.pending = append([]byte(nil), data[end:]...)
	}

	n := copy(p, s.out)
	s.out = s.out[n:]
	return n, nil
}

// appendSanitized appends src to dst with invalid bytes replaced by '?'.
func appendSanitized(dst, src []byte) []byte {
	if utf8.Valid(src) {
		return append(dst, src...)
	}
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, '?')
			i++
			continue
		}
		dst = append(dst, src[i:i+size]...)
		i += size
	}
	return dst
}

// incompleteTail returns how many trailing bytes of data start a multi-byte
// sequence that has not been fully read yet.
func incompleteTail(data []byte) int {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b&0xC0 == 0x80 {
			continue // continuation byte
		}
		if b >= 0xC0 && sequenceLen(b) > i {
			return i
		}
		return 0
	}
	return 0
}

// sequenceLen returns the encoded length announced by a UTF-8 lead byte.
func sequenceLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}

// CountingReader tracks how many bytes were read through it.
type CountingReader struct {
	r     io.Reader
	Count int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

// Read implements io.Reader.
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.Count += int64(n)
	return n, err
}

// ReadText reads all of r and returns it as clean UTF-8 text with any BOM
// removed. A limit of 0 or less disables the size check; otherwise more than
// limit raw bytes yields ErrTooLarge.
func ReadText(r io.Reader, limit int64) (string, error) {
	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	counter := NewCountingReader(src)
	data, err := io.ReadAll(NewUTF8Sanitizer(NewBOMSkipper(counter)))
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	if limit > 0 && counter.Count > limit {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}

	return string(data), nil
}
