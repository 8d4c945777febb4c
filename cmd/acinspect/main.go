package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"acoverlay/accessor"
	"acoverlay/config"
	"acoverlay/hexdump"
	"acoverlay/layout"
	"acoverlay/overlay"
	"acoverlay/pod"
	"acoverlay/process"
	"acoverlay/projection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	hexFlag := flag.Bool("hex", false, "Hex dump the raw entity blocks")
	slotFlag := flag.Int("slot", -1, "Only show this entity table slot")
	colorFlag := flag.Bool("color", true, "Colour the output")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	var acc *accessor.Accessor
	if cfg.ReplayDir != "" {
		acc, err = accessor.AttachDump(cfg.ReplayDir, cfg.ProcessName, cfg.Pointer())
	} else {
		acc, err = accessor.Attach(nativeOpener(), cfg.ProcessName, cfg.Pointer())
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer acc.Close()

	width, height := cfg.Geometry.Width, cfg.Geometry.Height
	project := width > 0 && height > 0

	// every slot is read; skipped ones are only marked
	session, err := overlay.NewSession(acc, overlay.Options{
		Offsets:    cfg.OffsetTable(),
		SkipFirst:  0,
		MaxPlayers: cfg.MaxPlayers,
		Width:      max(width, 1),
		Height:     max(height, 1),
		Interval:   cfg.Interval,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Target %s pid %d base %s\n\n", cfg.ProcessName, acc.Process().GetPID(), acc.Base().ToString())
	printOffsets(acc, cfg.OffsetTable())
	printLocalPlayer(acc, cfg.OffsetTable())

	frame, err := session.Gather()
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nPlayers %d, local player %s\n\n", frame.PlayerCount, frame.LocalPlayer.ToString())

	color := func(f pod.FormatFunc) pod.FormatFunc {
		if *colorFlag {
			return f
		}
		return nil
	}
	table := pod.NewTable(
		pod.ColumnSpec{Header: "Slot", AlignRight: true},
		pod.ColumnSpec{Header: "Address"},
		pod.ColumnSpec{Header: "Name", MinWidth: 16},
		pod.ColumnSpec{Header: "Team", FormatFunc: color(pod.TeamFormatter)},
		pod.ColumnSpec{Header: "HP", AlignRight: true, FormatFunc: color(pod.HealthFormatter)},
		pod.ColumnSpec{Header: "X", AlignRight: true},
		pod.ColumnSpec{Header: "Y", AlignRight: true},
		pod.ColumnSpec{Header: "Z", AlignRight: true},
		pod.ColumnSpec{Header: "Screen"},
		pod.ColumnSpec{Header: "Notes"},
	)

	for _, s := range frame.Slots {
		if *slotFlag >= 0 && s.Index != *slotFlag {
			continue
		}
		// rule between the skipped slots and the drawn ones
		if s.Index == cfg.SkipFirst && table.Len() > 0 {
			table.AddSeparator()
		}
		e := s.Entity
		name := e.Name
		if e.NameErr != nil {
			name = "?"
		}

		screen := ""
		if project {
			pos := projection.Vec3{X: e.X, Y: e.Y, Z: e.Z}
			if pt, ok := projection.Project(frame.Matrix, pos, width, height); ok {
				screen = pt.String()
			} else {
				screen = "off"
			}
		}

		table.AddRow(
			fmt.Sprint(s.Index),
			s.Addr.ToString(),
			name,
			fmt.Sprint(e.Team),
			fmt.Sprint(e.Health),
			fmt.Sprintf("%.2f", e.X),
			fmt.Sprintf("%.2f", e.Y),
			fmt.Sprintf("%.2f", e.Z),
			screen,
			notes(s, frame, cfg.SkipFirst),
		)
	}
	if table.Len() == 0 {
		fmt.Println("No entity slots")
	} else if err := table.Render(os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if !*hexFlag {
		return
	}
	for _, s := range frame.Slots {
		if *slotFlag >= 0 && s.Index != *slotFlag {
			continue
		}
		rec, err := acc.ReadBlock(s.Addr, layout.EntityLayout)
		if err != nil {
			fmt.Printf("\nslot %d: %v\n", s.Index, err)
			continue
		}
		fmt.Printf("\nslot %d at %s\n", s.Index, s.Addr.ToString())
		hexdump.DumpRecord(os.Stdout, rec, uint64(s.Addr), *colorFlag)
	}
}

func printOffsets(acc *accessor.Accessor, offsets layout.OffsetTable) {
	table := pod.NewTable(
		pod.ColumnSpec{Header: "Symbol"},
		pod.ColumnSpec{Header: "Offset"},
		pod.ColumnSpec{Header: "Address"},
		pod.ColumnSpec{Header: "Value"},
	)
	for _, e := range offsets.Entries() {
		addr := acc.Addr(e.Offset)
		value := ""
		switch e.Name {
		case "player_count":
			if v, err := acc.ReadInt32(addr); err == nil {
				value = fmt.Sprint(v)
			}
		case "view_matrix":
			if rec, err := acc.ReadBlock(addr, layout.ViewMatrixLayout); err == nil {
				m, _ := layout.DecodeMatrix(rec)
				value = fmt.Sprintf("%.3g ...", m[:4])
			}
		default:
			if v, err := acc.ReadPointer(addr); err == nil {
				value = v.ToString()
			}
		}
		table.AddRowf(e.Name, e.Offset, addr.ToString(), value)
	}
	_ = table.Render(os.Stdout)
}

// printLocalPlayer follows local_player straight to a few entity fields
func printLocalPlayer(acc *accessor.Accessor, offsets layout.OffsetTable) {
	for _, name := range []string{"health", "team"} {
		field, _ := layout.EntityLayout.Lookup(name)
		v, err := accessor.ReadPath[int32](acc, offsets.LocalPlayer, process.ProcessMemorySize(field.Offset))
		if err != nil {
			fmt.Printf("local_player->%s: %v\n", name, err)
			continue
		}
		fmt.Printf("local_player->%s: %d\n", name, v)
	}
}

func notes(s overlay.Slot, f overlay.Frame, skip int) string {
	var out []string
	if s.Index < skip {
		out = append(out, "skipped")
	}
	if s.Addr == f.LocalPlayer {
		out = append(out, "local")
	}
	if !s.Entity.Alive() {
		out = append(out, "dead")
	}
	if s.Entity.NameErr != nil {
		out = append(out, "bad-name")
	}
	return strings.Join(out, ",")
}
