package memory_map

import (
	"strings"
	"testing"
)

const sampleMaps = `00400000-0052b000 r-xp 00000000 08:01 1234 /home/user/games/AssaultCube/bin_win32/ac_client.exe
0052b000-0053c000 rw-p 0012b000 08:01 1234 /home/user/games/AssaultCube/bin_win32/ac_client.exe
01000000-01200000 rw-p 00000000 00:00 0 [heap]
7f0000000000-7f0000001000 ---p 00000000 00:00 0
garbage line
7ffc00000000-7ffc00021000 rw-p 00000000 00:00 0 [stack]
`

func TestParseMaps(t *testing.T) {
	items, err := ParseMaps(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatalf("ParseMaps: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d regions, want 5", len(items))
	}
	if items[0].Address != 0x400000 || items[0].Size != 0x12b000 {
		t.Errorf("first region = %+v", items[0])
	}
	if !strings.HasSuffix(items[0].Path, "ac_client.exe") {
		t.Errorf("path = %q", items[0].Path)
	}
	if items[3].IsReadable() {
		t.Errorf("---p region reported readable")
	}
	if !items[2].IsReadable() {
		t.Errorf("heap should be readable")
	}
}

func TestIsValidAddress2(t *testing.T) {
	items, _ := ParseMaps(strings.NewReader(sampleMaps))

	tests := []struct {
		addr uint64
		want bool
	}{
		{0x400000, true},
		{0x52afff, true},
		{0x52b000, true},
		{0x53c000, false},
		{0x1100000, true},
		{0x3ff000, false},
	}
	for _, tt := range tests {
		got := IsValidAddress2(tt.addr, items) != nil
		if got != tt.want {
			t.Errorf("IsValidAddress2(%#x) = %v, want %v", tt.addr, got, tt.want)
		}
		if lin := IsValidAddress(tt.addr, items); lin != tt.want {
			t.Errorf("IsValidAddress(%#x) = %v, want %v", tt.addr, lin, tt.want)
		}
	}
}

func TestModuleBase(t *testing.T) {
	items, _ := ParseMaps(strings.NewReader(sampleMaps))

	base, ok := ModuleBase("AC_CLIENT.EXE", items)
	if !ok || base != 0x400000 {
		t.Fatalf("ModuleBase = %#x, %v", base, ok)
	}
	if _, ok := ModuleBase("heap", items); ok {
		t.Errorf("pseudo paths must not match")
	}
	if _, ok := ModuleBase("missing.exe", items); ok {
		t.Errorf("unexpected match")
	}
}
