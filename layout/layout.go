package layout

import (
	"fmt"
)

// Kind is the semantic type of a field
type Kind int

const (
	Padding Kind = iota
	Float32
	Int32
	Text
)

func (k Kind) String() string {
	switch k {
	case Padding:
		return "padding"
	case Float32:
		return "float32"
	case Int32:
		return "int32"
	case Text:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is one (name, offset, width, kind) entry of a layout
type Field struct {
	Name   string
	Offset int
	Width  int
	Kind   Kind
}

func (f Field) End() int {
	return f.Offset + f.Width
}

func (f Field) String() string {
	return fmt.Sprintf("%s@0x%X[%d]%s", f.Name, f.Offset, f.Width, f.Kind)
}

// Layout describes a fixed size block. Build it with a Builder or call
// Validate after constructing one by hand.
type Layout struct {
	Name   string
	Size   int
	Fields []Field

	index map[string]int
}

// Lookup returns the named field
func (l *Layout) Lookup(name string) (Field, bool) {
	if l.index == nil {
		for _, f := range l.Fields {
			if f.Name == name && f.Kind != Padding {
				return f, true
			}
		}
		return Field{}, false
	}
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.Fields[i], true
}

// Validate checks that fields are named, sized for their kind, ordered,
// non-overlapping and inside Size.
func (l *Layout) Validate() error {
	if l.Size <= 0 {
		return &ValidationError{Layout: l.Name, Reason: fmt.Sprintf("size %d is not positive", l.Size)}
	}

	index := make(map[string]int, len(l.Fields))
	prevEnd := 0
	for i, f := range l.Fields {
		fail := func(reason string, args ...any) error {
			return &ValidationError{Layout: l.Name, Field: f.Name, Reason: fmt.Sprintf(reason, args...)}
		}

		if f.Offset < prevEnd {
			return fail("offset 0x%X overlaps previous field ending at 0x%X", f.Offset, prevEnd)
		}
		if f.Width <= 0 {
			return fail("width %d is not positive", f.Width)
		}
		if f.End() > l.Size {
			return fail("ends at 0x%X past block size 0x%X", f.End(), l.Size)
		}

		switch f.Kind {
		case Float32, Int32:
			if f.Width != 4 {
				return fail("%s needs width 4, got %d", f.Kind, f.Width)
			}
		case Text, Padding:
		default:
			return fail("unknown kind %s", f.Kind)
		}

		if f.Kind != Padding {
			if f.Name == "" {
				return fail("field at 0x%X has no name", f.Offset)
			}
			if _, dup := index[f.Name]; dup {
				return fail("duplicate field name")
			}
			index[f.Name] = i
		}
		prevEnd = f.End()
	}

	l.index = index
	return nil
}

// CheckBlock reports whether a block of n bytes can hold the layout
func (l *Layout) CheckBlock(n int) error {
	if n < l.Size {
		return &ValidationError{Layout: l.Name, Reason: fmt.Sprintf("declared size 0x%X exceeds block of 0x%X bytes", l.Size, n)}
	}
	return nil
}

// Builder lays fields out sequentially. Gaps are declared with Pad.
type Builder struct {
	name   string
	offset int
	fields []Field
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

func (b *Builder) add(name string, width int, kind Kind) *Builder {
	b.fields = append(b.fields, Field{Name: name, Offset: b.offset, Width: width, Kind: kind})
	b.offset += width
	return b
}

func (b *Builder) Pad(width int) *Builder {
	return b.add("", width, Padding)
}

func (b *Builder) Float32(name string) *Builder {
	return b.add(name, 4, Float32)
}

func (b *Builder) Int32(name string) *Builder {
	return b.add(name, 4, Int32)
}

func (b *Builder) Text(name string, width int) *Builder {
	return b.add(name, width, Text)
}

// Offset is the position the next field will be placed at
func (b *Builder) Offset() int {
	return b.offset
}

// Build validates and returns the layout. Size is the sum of all widths.
func (b *Builder) Build() (*Layout, error) {
	l := &Layout{
		Name:   b.name,
		Size:   b.offset,
		Fields: append([]Field(nil), b.fields...),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// MustBuild is Build for package level layouts
func (b *Builder) MustBuild() *Layout {
	l, err := b.Build()
	if err != nil {
		panic(err)
	}
	return l
}
