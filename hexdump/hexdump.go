package hexdump

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"acoverlay/layout"
	"acoverlay/pod"
)

// Options controls the dump format
type Options struct {
	// BytesPerLine is the number of bytes shown per line
	BytesPerLine int

	// StartAddress is printed as the address of the first byte
	StartAddress uint64

	// Color enables ANSI colours: zero bytes grey, named field bytes green
	Color bool

	// Layout, when set, names the fields starting on each line
	Layout *layout.Layout

	// CollapsePadding replaces runs of all-zero padding lines with "*"
	CollapsePadding bool
}

// Dump returns the dump as a string
func Dump(data []byte, options Options) string {
	var buffer bytes.Buffer
	DumpToWriter(&buffer, data, options)
	return buffer.String()
}

// DumpRecord dumps a decoded block annotated with its layout
func DumpRecord(writer io.Writer, rec layout.Record, addr uint64, color bool) {
	DumpToWriter(writer, rec.Bytes(), Options{
		BytesPerLine:    16,
		StartAddress:    addr,
		Color:           color,
		Layout:          rec.Layout(),
		CollapsePadding: true,
	})
}

func DumpToWriter(writer io.Writer, data []byte, options Options) {
	if options.BytesPerLine <= 0 {
		options.BytesPerLine = 16
	}

	collapsed := false
	for offset := 0; offset < len(data); offset += options.BytesPerLine {
		end := min(offset+options.BytesPerLine, len(data))
		line := data[offset:end]

		if options.CollapsePadding && options.Layout != nil && isPaddingLine(options.Layout, offset, end, line) {
			if !collapsed {
				fmt.Fprintln(writer, "*")
				collapsed = true
			}
			continue
		}
		collapsed = false
		formatLine(writer, line, offset, options)
	}
}

func formatLine(writer io.Writer, data []byte, offset int, options Options) {
	bpl := options.BytesPerLine
	half := bpl / 2
	split := bpl >= 8 && len(data) > half

	fmt.Fprintf(writer, "%08x  ", options.StartAddress+uint64(offset))

	for i, b := range data {
		if i > 0 {
			if split && i == half {
				fmt.Fprint(writer, " | ")
			} else {
				fmt.Fprint(writer, " ")
			}
		}
		fmt.Fprint(writer, colorByte(fmt.Sprintf("%02x", b), b, offset+i, options))
	}
	if pad := hexWidth(bpl, bpl) - hexWidth(len(data), bpl); pad > 0 {
		fmt.Fprint(writer, strings.Repeat(" ", pad))
	}

	fmt.Fprint(writer, " | ")
	for i, b := range data {
		if split && i == half {
			fmt.Fprint(writer, " ")
		}
		c := rune(b)
		s := "."
		if b != 0 && b < 0x7f && unicode.IsPrint(c) {
			s = string(c)
		}
		fmt.Fprint(writer, colorByte(s, b, offset+i, options))
	}

	if options.Layout != nil {
		if names := fieldsStarting(options.Layout, offset, offset+len(data)); len(names) > 0 {
			fmt.Fprint(writer, "  ", strings.Join(names, ","))
		}
	}

	fmt.Fprintln(writer)
}

// hexWidth is the printed width of n hex bytes on a line of bpl
func hexWidth(n, bpl int) int {
	if n == 0 {
		return 0
	}
	w := n*2 + n - 1
	if bpl >= 8 && n > bpl/2 {
		w += 2
	}
	return w
}

func colorByte(s string, b byte, pos int, options Options) string {
	if !options.Color {
		return s
	}
	if b == 0 {
		return pod.ColorGray(s)
	}
	if options.Layout != nil && inNamedField(options.Layout, pos) {
		return pod.ColorGreen(s)
	}
	return s
}

func inNamedField(l *layout.Layout, pos int) bool {
	for _, f := range l.Fields {
		if f.Kind != layout.Padding && pos >= f.Offset && pos < f.End() {
			return true
		}
	}
	return false
}

func fieldsStarting(l *layout.Layout, start, end int) []string {
	var names []string
	for _, f := range l.Fields {
		if f.Kind != layout.Padding && f.Offset >= start && f.Offset < end {
			names = append(names, f.Name)
		}
	}
	return names
}

func isPaddingLine(l *layout.Layout, start, end int, data []byte) bool {
	for pos := start; pos < end; pos++ {
		if inNamedField(l, pos) {
			return false
		}
	}
	return bytes.Count(data, []byte{0}) == len(data)
}
