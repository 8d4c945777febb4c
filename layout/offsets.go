package layout

import (
	"fmt"
	"strconv"
)

// Offset is a byte offset from the main module base. It parses decimal or
// 0x prefixed hex text.
type Offset uint64

func (o Offset) String() string {
	return fmt.Sprintf("0x%X", uint64(o))
}

func (o *Offset) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 0, 64)
	if err != nil {
		return fmt.Errorf("offset %q: %w", text, err)
	}
	*o = Offset(v)
	return nil
}

func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// OffsetTable holds the module relative offsets of the globals the overlay reads
type OffsetTable struct {
	PlayerCount Offset
	EntityList  Offset
	LocalPlayer Offset
	ViewMatrix  Offset
}

// DefaultOffsets matches the ac_client.exe build the entity layout was taken from
var DefaultOffsets = OffsetTable{
	PlayerCount: 0x18AC0C,
	EntityList:  0x18AC04,
	LocalPlayer: 0x18AC00,
	ViewMatrix:  0x17DFD0,
}

func (t OffsetTable) Validate() error {
	for _, e := range t.Entries() {
		if e.Offset == 0 {
			return &ValidationError{Layout: "offsets", Field: e.Name, Reason: "offset is zero"}
		}
	}
	return nil
}

type OffsetEntry struct {
	Name   string
	Offset Offset
}

// Entries lists the table in a stable order
func (t OffsetTable) Entries() []OffsetEntry {
	return []OffsetEntry{
		{"player_count", t.PlayerCount},
		{"entity_list", t.EntityList},
		{"local_player", t.LocalPlayer},
		{"view_matrix", t.ViewMatrix},
	}
}
