package hexdump

import (
	"strings"
	"testing"

	"acoverlay/layout"
)

func TestDumpPlain(t *testing.T) {
	got := Dump([]byte("ABCDEFGHIJKLMNOPQR"), Options{BytesPerLine: 16, StartAddress: 0x1000})
	want := "00001000  41 42 43 44 45 46 47 48 | 49 4a 4b 4c 4d 4e 4f 50 | ABCDEFGH IJKLMNOP\n" +
		"00001010  51 52" + strings.Repeat(" ", 44) + " | QR\n"
	if got != want {
		t.Errorf("Dump =\n%q\nwant\n%q", got, want)
	}
}

func TestDumpNonPrintable(t *testing.T) {
	got := Dump([]byte{0, 0x07, 'a', 0xff}, Options{BytesPerLine: 4})
	if !strings.HasSuffix(got, " | ..a.\n") {
		t.Errorf("Dump = %q", got)
	}
}

func TestHexWidthAligned(t *testing.T) {
	for n := 1; n <= 16; n++ {
		line := Dump(make([]byte, n), Options{BytesPerLine: 16})
		if idx := strings.Index(line, " | ."); n <= 8 && idx != 10+hexWidth(16, 16) {
			t.Errorf("n=%d ascii column at %d", n, idx)
		}
	}
}

func TestDumpRecord(t *testing.T) {
	data, err := layout.EncodeEntity(layout.Entity{X: 1, Health: 100, Name: "bob", Team: 1})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := layout.EntityLayout.Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	DumpRecord(&sb, rec, 0x2000, false)
	out := sb.String()

	for _, want := range []string{"00002000  ", "x,y,z", "health", "name", "team", "*\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines >= layout.EntityLayout.Size/16 {
		t.Errorf("padding not collapsed: %d lines", lines)
	}
}

func TestDumpColor(t *testing.T) {
	out := Dump([]byte{0, 1}, Options{BytesPerLine: 16, Color: true})
	if !strings.Contains(out, "\033[") {
		t.Errorf("expected escapes in %q", out)
	}
}
