// Package hexstream reads hex-encoded text as a stream of bytes.
// ASCII whitespace between any two hex digits is ignored, so "6 0 01"
// and "6001" decode to the same bytes.
package hexstream

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidHex is returned when a non-whitespace character that is not a
// hex digit is found where a digit was expected.
var ErrInvalidHex = errors.New("invalid hex character")

// Reader decodes hex text from an underlying source on demand. It never
// materializes the whole input; the bufio read-ahead is the only buffering.
type Reader struct {
	src *bufio.Reader
	pos int64 // characters consumed, whitespace included
}

// NewReader returns a Reader over r. If r is already a *bufio.Reader it is
// used as is.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// ReadByte decodes the next byte. It returns io.EOF if the input ends before
// the first digit of the byte, and io.ErrUnexpectedEOF if it ends between the
// two digits.
func (r *Reader) ReadByte() (byte, error) {
	var pair [2]byte
	if err := r.digits(pair[:]); err != nil {
		return 0, err
	}
	return r.decode(pair[:])
}

// ReadFull decodes exactly len(p) bytes into p. Any end of input, even before
// the first digit, is reported as io.ErrUnexpectedEOF.
func (r *Reader) ReadFull(p []byte) error {
	for i := range p {
		b, err := r.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		p[i] = b
	}
	return nil
}

// digits fills buf with the next len(buf) non-whitespace characters.
func (r *Reader) digits(buf []byte) error {
	for i := range buf {
		c, err := r.nextDigit()
		if err == io.EOF && i > 0 {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}
		buf[i] = c
	}
	return nil
}

func (r *Reader) nextDigit() (byte, error) {
	for {
		c, err := r.src.ReadByte()
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, fmt.Errorf("read hex input: %w", err)
		}
		r.pos++
		if !isSpace(c) {
			return c, nil
		}
	}
}

func (r *Reader) decode(pair []byte) (byte, error) {
	var out [1]byte
	if _, err := hex.Decode(out[:], pair); err != nil {
		var bad hex.InvalidByteError
		if errors.As(err, &bad) {
			return 0, fmt.Errorf("%w %q near character %d", ErrInvalidHex, byte(bad), r.pos)
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return out[0], nil
}

// Offset reports how many characters of the source have been consumed.
func (r *Reader) Offset() int64 {
	return r.pos
}

// isSpace matches ASCII whitespace: space, tab, newline, form feed and
// carriage return. Vertical tab is not whitespace here.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
