package render

import "sync"

// Recorder is a Surface that keeps the painted frames in memory
type Recorder struct {
	mu     sync.Mutex
	frames [][]Command
	keep   int
}

// NewRecorder keeps at most keep frames, all of them when keep <= 0
func NewRecorder(keep int) *Recorder {
	return &Recorder{keep: keep}
}

func (r *Recorder) Paint(cmds []Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, append([]Command(nil), cmds...))
	if r.keep > 0 && len(r.frames) > r.keep {
		r.frames = r.frames[len(r.frames)-r.keep:]
	}
	return nil
}

func (r *Recorder) Frames() [][]Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]Command(nil), r.frames...)
}

// Last returns the most recent frame, nil if nothing was painted
func (r *Recorder) Last() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}
