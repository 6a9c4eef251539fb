package daemon

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/config"
)

type NotifyFunc func(data any)

// TaskFunc represents a runnable task.
type TaskFunc func() error

// Scheduler runs a task on a cron schedule. The schedule can be replaced
// while the scheduler is running.
type Scheduler struct {
	OnError NotifyFunc // called on task error
	Task    TaskFunc

	schedule cron.Schedule
	nextRun  time.Time

	mu      sync.Mutex
	running bool

	controlCh chan cron.Schedule
	stopCh    chan struct{}
}

func NewScheduler(task TaskFunc, onError NotifyFunc) *Scheduler {
	if task == nil {
		panic("task function cannot be nil")
	}

	return &Scheduler{
		OnError:   onError,
		Task:      task,
		controlCh: make(chan cron.Schedule, 4),
		stopCh:    make(chan struct{}),
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stopCh: // already closed
	default:
		close(s.stopCh)
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.runScheduled()
}

// Schedule sets the cron expression, e.g. "@every 10m" or "0 0 * * *".
func (s *Scheduler) Schedule(cronExpr string) error {
	sh, err := config.ScheduleParser.Parse(cronExpr)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cronExpr, err)
	}

	s.mu.Lock()
	running := s.running
	if !running {
		s.schedule = sh
		s.nextRun = sh.Next(time.Now())
	}
	s.mu.Unlock()

	if running {
		select {
		case s.controlCh <- sh:
		default:
			logrus.Warn("scheduler is busy, schedule change dropped")
		}
	}
	return nil
}

func (s *Scheduler) Status() (nextRun time.Time, running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.nextRun, s.running
}

func (s *Scheduler) runScheduled() {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		logrus.Debug("scheduler stopped")
	}()

	logrus.Debug("scheduler started")

	for {
		schedule, nextRun := s.snapshot()
		var timer *time.Timer
		if schedule == nil || nextRun.IsZero() {
			timer = time.NewTimer(time.Hour * 10000)
		} else {
			timer = time.NewTimer(max(time.Until(nextRun), 0))
		}

		select {
		case <-timer.C:
			if schedule == nil || nextRun.IsZero() {
				continue
			}

			logrus.Debugf("running scheduled task at %s", nextRun.Format(time.DateTime))
			go func() {
				if err := s.Task(); err != nil {
					s.sendError(fmt.Errorf("task failed: %w", err))
				}
			}()
			s.advanceNextRun()
		case <-s.stopCh:
			timer.Stop()
			return
		case sh := <-s.controlCh:
			timer.Stop()
			s.mu.Lock()
			s.schedule = sh
			s.nextRun = sh.Next(time.Now())
			s.mu.Unlock()
			logrus.WithField("nextRun", s.nextRunString()).Debug("schedule changed")
		}
	}
}

func (s *Scheduler) snapshot() (cron.Schedule, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule, s.nextRun
}

// advanceNextRun moves to the first run after now, so runs missed while the
// machine was asleep are not replayed one by one.
func (s *Scheduler) advanceNextRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil {
		return
	}
	next := s.schedule.Next(s.nextRun)
	if now := time.Now(); next.Before(now) {
		next = s.schedule.Next(now)
	}
	s.nextRun = next
}

func (s *Scheduler) nextRunString() string {
	next, _ := s.Status()
	return next.Format(time.DateTime)
}

func (s *Scheduler) sendError(err error) {
	if s.OnError == nil {
		return
	}

	go s.OnError(err)
}
