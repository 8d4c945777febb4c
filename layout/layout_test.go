package layout

import (
	"errors"
	"testing"
)

func TestEntityLayoutOffsets(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
	}{
		{"x", 0x4, 4},
		{"y", 0x8, 4},
		{"z", 0xC, 4},
		{"health", 0xEC, 4},
		{"name", 0x205, NameWidth},
		{"team", 0x30C, 4},
	}
	for _, tt := range tests {
		f, ok := EntityLayout.Lookup(tt.name)
		if !ok {
			t.Fatalf("field %s missing", tt.name)
		}
		if f.Offset != tt.offset || f.Width != tt.width {
			t.Errorf("%s = %v, want offset 0x%X width %d", tt.name, f, tt.offset, tt.width)
		}
	}
	if EntityLayout.Size != 0x310 {
		t.Errorf("entity size = 0x%X, want 0x310", EntityLayout.Size)
	}
	if ViewMatrixLayout.Size != 64 {
		t.Errorf("matrix size = %d, want 64", ViewMatrixLayout.Size)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"overlap", Layout{Name: "l", Size: 8, Fields: []Field{
			{Name: "a", Offset: 0, Width: 4, Kind: Int32},
			{Name: "b", Offset: 2, Width: 4, Kind: Int32},
		}}},
		{"past end", Layout{Name: "l", Size: 4, Fields: []Field{
			{Name: "a", Offset: 2, Width: 4, Kind: Float32},
		}}},
		{"bad width", Layout{Name: "l", Size: 8, Fields: []Field{
			{Name: "a", Offset: 0, Width: 8, Kind: Int32},
		}}},
		{"duplicate", Layout{Name: "l", Size: 8, Fields: []Field{
			{Name: "a", Offset: 0, Width: 4, Kind: Int32},
			{Name: "a", Offset: 4, Width: 4, Kind: Int32},
		}}},
		{"unnamed", Layout{Name: "l", Size: 4, Fields: []Field{
			{Offset: 0, Width: 4, Kind: Int32},
		}}},
		{"empty", Layout{Name: "l"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
		})
	}
}

func TestDecodeShortBlock(t *testing.T) {
	_, err := EntityLayout.Decode(make([]byte, 0x30F))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Decode(short) = %v, want *ValidationError", err)
	}
}

func TestEntityRoundTrip(t *testing.T) {
	want := Entity{X: 12.5, Y: -3.25, Z: 100, Health: 87, Name: "unarmed", Team: 1}
	data, err := EncodeEntity(want)
	if err != nil {
		t.Fatalf("EncodeEntity: %v", err)
	}
	r, err := EntityLayout.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := DecodeEntity(r)
	if err != nil {
		t.Fatalf("DecodeEntity: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestTextTruncatesAtNUL(t *testing.T) {
	r := EntityLayout.NewRecord()
	f, _ := EntityLayout.Lookup("name")
	copy(r.Bytes()[f.Offset:], "bob\x00garbage\xff")

	name, err := r.Text("name")
	if err != nil || name != "bob" {
		t.Fatalf("Text = %q, %v", name, err)
	}
}

func TestTextInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad utf8", "ab\xffcd"},
		{"control", "ab\x07cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EntityLayout.NewRecord()
			f, _ := EntityLayout.Lookup("name")
			copy(r.Bytes()[f.Offset:], tt.raw)
			_ = r.SetInt32("health", 50)

			_, err := r.Text("name")
			var de *DecodeError
			if !errors.As(err, &de) || !errors.Is(err, ErrInvalidText) {
				t.Fatalf("Text() = %v, want DecodeError(ErrInvalidText)", err)
			}

			e, err := DecodeEntity(r)
			if err != nil {
				t.Fatalf("DecodeEntity: %v", err)
			}
			if e.NameErr == nil || e.Health != 50 {
				t.Errorf("entity = %+v, want NameErr set and health 50", e)
			}
		})
	}
}

func TestSetTextTooLong(t *testing.T) {
	r := EntityLayout.NewRecord()
	long := make([]byte, NameWidth+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := r.SetText("name", string(long)); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("SetText = %v", err)
	}
}

func TestWrongKind(t *testing.T) {
	r := EntityLayout.NewRecord()
	if _, err := r.Int32("x"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Int32(x) = %v", err)
	}
	if _, err := r.Float32("nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Float32(nope) = %v", err)
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	var m [16]float32
	for i := range m {
		m[i] = float32(i) * 0.5
	}
	r, err := ViewMatrixLayout.Decode(EncodeMatrix(m))
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeMatrix(r)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("matrix = %v, want %v", got, m)
	}
}

func TestOffsetUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    Offset
		wantErr bool
	}{
		{"0x18AC0C", 0x18AC0C, false},
		{"1024", 1024, false},
		{"zz", 0, true},
	}
	for _, tt := range tests {
		var o Offset
		err := o.UnmarshalText([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) err = %v", tt.in, err)
			continue
		}
		if o != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, o, tt.want)
		}
	}
	if DefaultOffsets.ViewMatrix.String() != "0x17DFD0" {
		t.Errorf("String() = %s", DefaultOffsets.ViewMatrix)
	}
	if err := (OffsetTable{PlayerCount: 1}).Validate(); err == nil {
		t.Error("expected zero offset to fail validation")
	}
}
