package overlay

import (
	"errors"
	"fmt"
	"time"

	"acoverlay/accessor"
	"acoverlay/layout"
	"acoverlay/render"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var ErrPlayerCount = errors.New("implausible player count")

// Options configures a Session. Zero values are replaced by defaults in NewSession.
type Options struct {
	Offsets    layout.OffsetTable
	SkipFirst  int // entity table slots dropped before iterating
	MaxPlayers int
	Width      int
	Height     int
	Interval   time.Duration
}

const (
	DefaultSkipFirst  = 1
	DefaultMaxPlayers = 64
	DefaultInterval   = 16 * time.Millisecond
)

// Session owns the attached process and the surface geometry for the
// lifetime of the overlay. Ticks run one at a time.
type Session struct {
	acc     *accessor.Accessor
	opts    Options
	log     *logger.Logger
	lastErr string

	// last name error warned about, per table slot
	nameErrs map[int]string
}

func NewSession(acc *accessor.Accessor, opts Options) (*Session, error) {
	if opts.Offsets == (layout.OffsetTable{}) {
		opts.Offsets = layout.DefaultOffsets
	}
	if opts.MaxPlayers == 0 {
		opts.MaxPlayers = DefaultMaxPlayers
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if err := opts.Offsets.Validate(); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", opts.Width, opts.Height)
	}
	if opts.SkipFirst < 0 {
		return nil, fmt.Errorf("invalid skip count %d", opts.SkipFirst)
	}

	return &Session{
		acc:      acc,
		opts:     opts,
		log:      logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "overlay")),
		nameErrs: make(map[int]string),
	}, nil
}

func (s *Session) Options() Options {
	return s.opts
}

func (s *Session) View() View {
	return View{Width: s.opts.Width, Height: s.opts.Height, Interval: s.opts.Interval}
}

// Close releases the process handle
func (s *Session) Close() error {
	return s.acc.Close()
}

// Gather performs every read of one tick. Any failed read fails the
// whole tick with an *accessor.ReadError.
func (s *Session) Gather() (Frame, error) {
	var f Frame
	a := s.acc
	off := s.opts.Offsets

	rec, err := a.ReadBlock(a.Addr(off.ViewMatrix), layout.ViewMatrixLayout)
	if err != nil {
		return f, err
	}
	m, err := layout.DecodeMatrix(rec)
	if err != nil {
		return f, err
	}
	f.Matrix = m

	countAddr := a.Addr(off.PlayerCount)
	count, err := a.ReadInt32(countAddr)
	if err != nil {
		return f, err
	}
	if count < 0 || int(count) > s.opts.MaxPlayers {
		return f, &accessor.ReadError{Op: "player_count", Addr: countAddr, Err: fmt.Errorf("%w: %d", ErrPlayerCount, count)}
	}
	f.PlayerCount = int(count)

	if f.LocalPlayer, err = a.ReadPointer(a.Addr(off.LocalPlayer)); err != nil {
		return f, err
	}

	// a lone local player has nothing to draw
	if count <= 1 {
		return f, nil
	}

	list, err := a.ReadPointer(a.Addr(off.EntityList))
	if err != nil {
		return f, err
	}
	table, err := a.ReadPointerTable(list, f.PlayerCount)
	if err != nil {
		return f, err
	}

	for i := min(s.opts.SkipFirst, len(table)); i < len(table); i++ {
		addr := table[i]
		if addr == 0 {
			continue
		}
		rec, err := a.ReadBlock(addr, layout.EntityLayout)
		if err != nil {
			return f, err
		}
		e, err := layout.DecodeEntity(rec)
		if err != nil {
			return f, &accessor.ReadError{Op: "entity", Addr: addr, Err: err}
		}
		s.noteNameError(i, e.NameErr)
		f.Slots = append(f.Slots, Slot{Index: i, Addr: addr, Entity: e})
	}

	return f, nil
}

// Tick gathers and renders one frame. A gather failure becomes a single
// diagnostic line; nothing carries over to the next tick.
func (s *Session) Tick() ([]render.Command, error) {
	f, err := s.Gather()
	s.noteError(err)
	if err != nil {
		return RenderError(err), err
	}
	return Render(f, s.View()), nil
}

// Step runs one tick and paints it. The gather error is returned after
// the diagnostic frame has been painted.
func (s *Session) Step(surface render.Surface) error {
	cmds, err := s.Tick()
	if perr := surface.Paint(cmds); perr != nil {
		return errors.Join(err, fmt.Errorf("paint: %w", perr))
	}
	return err
}

// noteError logs only when the tick error changes
func (s *Session) noteError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == s.lastErr {
		return
	}
	switch {
	case msg == "":
		s.log.Infoln("Reads recovered")
	case errors.Is(err, ErrPlayerCount):
		s.log.Warn("Tick failed: ", msg)
	default:
		s.log.Debugln("Tick failed:", msg)
	}
	s.lastErr = msg
}

// noteNameError warns when the name error of a slot changes and reports
// whether it did
func (s *Session) noteNameError(slot int, err error) bool {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if s.nameErrs[slot] == msg {
		return false
	}
	if msg == "" {
		delete(s.nameErrs, slot)
		return false
	}
	s.nameErrs[slot] = msg
	s.log.Warn(fmt.Sprintf("Slot %d name: %s", slot, msg))
	return true
}
