package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunStopsOnCancel(t *testing.T) {
	s := New(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	var calls int
	err := s.Run(ctx, func(context.Context) error {
		calls++
		if calls == 5 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	if s.Ticks() != 5 {
		t.Errorf("Ticks = %d, want 5", s.Ticks())
	}
}

func TestRunErrStop(t *testing.T) {
	s := New(time.Millisecond)
	var calls int
	err := s.Run(context.Background(), func(context.Context) error {
		calls++
		if calls == 3 {
			return ErrStop
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("Run = %v after %d calls", err, calls)
	}
}

func TestRunContinuesAfterTickError(t *testing.T) {
	s := New(time.Millisecond)
	var calls int
	_ = s.Run(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return ErrStop
	})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRunNoOverlap(t *testing.T) {
	s := New(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var active, maxActive, calls atomic.Int32
	_ = s.Run(ctx, func(context.Context) error {
		n := active.Add(1)
		if n > maxActive.Load() {
			maxActive.Store(n)
		}
		// slower than the interval
		time.Sleep(3 * time.Millisecond)
		active.Add(-1)
		if calls.Add(1) == 5 {
			return ErrStop
		}
		return nil
	})
	if maxActive.Load() != 1 {
		t.Errorf("max concurrent ticks = %d", maxActive.Load())
	}
}

func TestRunInterval(t *testing.T) {
	s := New(10 * time.Millisecond)
	start := time.Now()
	var calls int
	_ = s.Run(context.Background(), func(context.Context) error {
		calls++
		if calls == 4 {
			return ErrStop
		}
		return nil
	})
	// first tick fires immediately, then three periods
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("4 ticks took %v, want >= 30ms", elapsed)
	}
}

func TestRunRejectsBadInterval(t *testing.T) {
	if err := New(0).Run(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(time.Hour)
	var calls int
	if err := s.Run(ctx, func(context.Context) error { calls++; return nil }); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("calls = %d", calls)
	}
}
