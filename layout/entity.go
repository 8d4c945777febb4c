package layout

import (
	"errors"
	"fmt"
)

const NameWidth = 80

// EntityLayout is the player record of the target build
var EntityLayout = NewBuilder("entity").
	Pad(0x4).
	Float32("x").
	Float32("y").
	Float32("z").
	Pad(0xDC).
	Int32("health").
	Pad(0x115).
	Text("name", NameWidth).
	Pad(0xB7).
	Int32("team").
	MustBuild()

// ViewMatrixLayout is 16 contiguous floats, m0..m15
var ViewMatrixLayout = func() *Layout {
	b := NewBuilder("view_matrix")
	for i := range 16 {
		b.Float32(fmt.Sprintf("m%d", i))
	}
	return b.MustBuild()
}()

// Entity is one decoded player record. NameErr holds a text decode failure;
// the other fields are still valid when it is set.
type Entity struct {
	X, Y, Z float32
	Health  int32
	Name    string
	NameErr error
	Team    int32
}

func (e Entity) Alive() bool {
	return e.Health > 0
}

// DecodeEntity decodes a record built from EntityLayout
func DecodeEntity(r Record) (Entity, error) {
	var (
		e   Entity
		err error
	)
	if e.X, err = r.Float32("x"); err != nil {
		return e, err
	}
	if e.Y, err = r.Float32("y"); err != nil {
		return e, err
	}
	if e.Z, err = r.Float32("z"); err != nil {
		return e, err
	}
	if e.Health, err = r.Int32("health"); err != nil {
		return e, err
	}
	if e.Team, err = r.Int32("team"); err != nil {
		return e, err
	}

	name, err := r.Text("name")
	var de *DecodeError
	switch {
	case err == nil:
		e.Name = name
	case errors.As(err, &de) && errors.Is(err, ErrInvalidText):
		e.NameErr = err
	default:
		return e, err
	}
	return e, nil
}

// EncodeEntity writes e into a fresh EntityLayout block
func EncodeEntity(e Entity) ([]byte, error) {
	r := EntityLayout.NewRecord()
	if err := errors.Join(
		r.SetFloat32("x", e.X),
		r.SetFloat32("y", e.Y),
		r.SetFloat32("z", e.Z),
		r.SetInt32("health", e.Health),
		r.SetText("name", e.Name),
		r.SetInt32("team", e.Team),
	); err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// DecodeMatrix decodes a record built from ViewMatrixLayout
func DecodeMatrix(r Record) ([16]float32, error) {
	var m [16]float32
	for i := range m {
		v, err := r.Float32(fmt.Sprintf("m%d", i))
		if err != nil {
			return m, err
		}
		m[i] = v
	}
	return m, nil
}

func EncodeMatrix(m [16]float32) []byte {
	r := ViewMatrixLayout.NewRecord()
	for i, v := range m {
		_ = r.SetFloat32(fmt.Sprintf("m%d", i), v)
	}
	return r.Bytes()
}
