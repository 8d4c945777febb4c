// Package scheduler runs a callback on a fixed period, one call at a time.
package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// ErrStop can be returned by a tick to end Run without an error
var ErrStop = errors.New("scheduler stop")

// TickFunc is one unit of work. A returned error other than ErrStop is
// logged and the next tick runs as usual.
type TickFunc func(ctx context.Context) error

// Scheduler calls a TickFunc every Interval. A tick always completes before
// the next one starts; deadlines missed by more than two intervals are
// dropped instead of replayed.
type Scheduler struct {
	interval  time.Duration
	tickCount atomic.Uint64
	log       *logger.Logger
}

func New(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		log:      logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "scheduler")),
	}
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Ticks is the number of completed ticks
func (s *Scheduler) Ticks() uint64 {
	return s.tickCount.Load()
}

// Run blocks until ctx is done or tick returns ErrStop. It returns nil in
// both cases.
func (s *Scheduler) Run(ctx context.Context, tick TickFunc) error {
	if s.interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	s.log.Infoln("Starting at", s.interval)
	defer func() {
		s.log.Infoln("Stopped after", s.Ticks(), "ticks")
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	next := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return nil
		}

		if err := tick(ctx); err != nil {
			if errors.Is(err, ErrStop) {
				s.tickCount.Add(1)
				return nil
			}
			s.log.Debugln("tick:", err)
		}
		s.tickCount.Add(1)

		now := time.Now()
		next = next.Add(s.interval)
		if now.Sub(next) > 2*s.interval {
			next = now.Add(s.interval)
		}
		timer.Reset(max(next.Sub(now), 0))
	}
}
