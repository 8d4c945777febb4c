package layout

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidText  = errors.New("invalid text")
	ErrTextTooLong  = errors.New("text longer than field")
	ErrUnknownField = errors.New("unknown field")
	ErrWrongKind    = errors.New("field has a different kind")
)

// Record is a block of bytes viewed through a layout
type Record struct {
	layout *Layout
	data   []byte
}

// Decode copies the first l.Size bytes of data into a record
func (l *Layout) Decode(data []byte) (Record, error) {
	if err := l.CheckBlock(len(data)); err != nil {
		return Record{}, err
	}
	return Record{layout: l, data: bytes.Clone(data[:l.Size])}, nil
}

// NewRecord returns a zeroed record for encoding
func (l *Layout) NewRecord() Record {
	return Record{layout: l, data: make([]byte, l.Size)}
}

func (r Record) Layout() *Layout {
	return r.layout
}

// Bytes returns the encoded block
func (r Record) Bytes() []byte {
	return r.data
}

func (r Record) field(name string, kind Kind) (Field, error) {
	if r.layout == nil {
		return Field{}, fmt.Errorf("%w: %s on empty record", ErrUnknownField, name)
	}
	f, ok := r.layout.Lookup(name)
	if !ok {
		return Field{}, &DecodeError{Layout: r.layout.Name, Field: name, Err: ErrUnknownField}
	}
	if f.Kind != kind {
		return Field{}, &DecodeError{Layout: r.layout.Name, Field: name, Err: fmt.Errorf("%w: %s, not %s", ErrWrongKind, f.Kind, kind)}
	}
	return f, nil
}

func (r Record) Float32(name string) (float32, error) {
	f, err := r.field(name, Float32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.data[f.Offset:])), nil
}

func (r Record) Int32(name string) (int32, error) {
	f, err := r.field(name, Int32)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.data[f.Offset:])), nil
}

// Text reads the whole field, cuts it at the first NUL and requires the
// rest to be printable UTF-8.
func (r Record) Text(name string) (string, error) {
	f, err := r.field(name, Text)
	if err != nil {
		return "", err
	}
	raw := r.data[f.Offset:f.End()]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if !utf8.Valid(raw) {
		return "", &DecodeError{Layout: r.layout.Name, Field: name, Err: fmt.Errorf("%w: not utf-8 % x", ErrInvalidText, raw)}
	}
	s := string(raw)
	for _, c := range s {
		if unicode.IsControl(c) {
			return "", &DecodeError{Layout: r.layout.Name, Field: name, Err: fmt.Errorf("%w: control character %U", ErrInvalidText, c)}
		}
	}
	return s, nil
}

func (r Record) SetFloat32(name string, v float32) error {
	f, err := r.field(name, Float32)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(r.data[f.Offset:], math.Float32bits(v))
	return nil
}

func (r Record) SetInt32(name string, v int32) error {
	f, err := r.field(name, Int32)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(r.data[f.Offset:], uint32(v))
	return nil
}

// SetText writes s NUL padded. s must fit the field.
func (r Record) SetText(name, s string) error {
	f, err := r.field(name, Text)
	if err != nil {
		return err
	}
	if len(s) > f.Width {
		return &DecodeError{Layout: r.layout.Name, Field: name, Err: fmt.Errorf("%w: %d > %d", ErrTextTooLong, len(s), f.Width)}
	}
	dst := r.data[f.Offset:f.End()]
	clear(dst)
	copy(dst, s)
	return nil
}
