//go:build linux

package process_linux

import (
	"os"
	"path/filepath"
	"testing"

	"acoverlay/process"
)

func writeFakeProc(t *testing.T, root string, pid string, comm, status string, cmdline []byte) {
	t.Helper()
	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"comm":    []byte(comm + "\n"),
		"status":  []byte(status),
		"cmdline": cmdline,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFinderByName(t *testing.T) {
	root := t.TempDir()
	writeFakeProc(t, root, "100", "ac_client.exe", "Name:\tac_client.exe\nState:\tS (sleeping)\nPPid:\t1\n", []byte("C:\\ac\\ac_client.exe\x00--init\x00"))
	writeFakeProc(t, root, "200", "bash", "State:\tR (running)\nPPid:\t1\n", nil)
	writeFakeProc(t, root, "300", "ac_client.exe", "State:\tZ (zombie)\nPPid:\t100\n", nil)
	if err := os.MkdirAll(filepath.Join(root, "self"), 0755); err != nil {
		t.Fatal(err)
	}

	f := &LinuxProcessFinder{Root: root}

	got, err := f.FindProcessByName("ac_client.exe")
	if err != nil {
		t.Fatalf("FindProcessByName: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}

	byPID := map[process.ProcessID]process.ProcessInfo{}
	for _, info := range got {
		byPID[info.PID] = info
	}
	if info := byPID[100]; info.State != "S" || info.PPID != 1 || len(info.Cmdline) != 2 || info.Cmdline[1] != "--init" {
		t.Errorf("pid 100 = %+v", info)
	}
	if !byPID[300].Exited() {
		t.Errorf("zombie not reported as exited")
	}

	if lowestPID(got) != 100 {
		t.Errorf("lowestPID = %d", lowestPID(got))
	}

	pat, err := f.FindProcessByNamePattern(`^ba`)
	if err != nil || len(pat) != 1 || pat[0].PID != 200 {
		t.Errorf("pattern = %+v, %v", pat, err)
	}

	if _, err := f.FindProcessByNamePattern(`(`); err == nil {
		t.Error("expected invalid pattern error")
	}
	if _, err := f.FindProcessByName(""); err == nil {
		t.Error("expected empty name error")
	}
}

func TestFinderByPID(t *testing.T) {
	root := t.TempDir()
	writeFakeProc(t, root, "42", "game", "State:\tS\n", nil)
	f := &LinuxProcessFinder{Root: root}

	info, err := f.FindProcessByPID(42)
	if err != nil || info.Name != "game" {
		t.Fatalf("FindProcessByPID = %+v, %v", info, err)
	}
	if _, err := f.FindProcessByPID(43); err == nil {
		t.Error("expected missing pid error")
	}
}

func TestReadMemoryNotOpen(t *testing.T) {
	p := New()
	if _, err := p.ReadMemory(0x400000, 4); err != process.ErrProcessNotOpen {
		t.Fatalf("err = %v", err)
	}
}
