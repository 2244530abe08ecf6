// Package scheduler runs recurring jobs on robfig/cron.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/notification"
)

var errRunning = errors.New("scheduler already running")

// Cron runs one job on a fixed interval. It implements notification.Ticker.
type Cron struct {
	log cron.Logger

	mu sync.Mutex
	c  *cron.Cron
}

var _ notification.Ticker = (*Cron)(nil)

func New(logger core.Logger) *Cron {
	return &Cron{log: cronLogger{logger}}
}

// Start calls `fn` every `interval` (rounded to the second, at least one second).
// A call still running when the next one is due makes the latter skip.
func (s *Cron) Start(interval time.Duration, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c != nil {
		return errRunning
	}
	c := cron.New(
		cron.WithLogger(s.log),
		cron.WithChain(cron.Recover(s.log), cron.SkipIfStillRunning(s.log)),
	)
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), fn); err != nil {
		return errors.Wrap(err, "scheduling job")
	}
	c.Start()
	s.c = c
	return nil
}

// Stop waits for a running call to return. Stopping twice is harmless.
func (s *Cron) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c == nil {
		return
	}
	<-s.c.Stop().Done()
	s.c = nil
}

// cronLogger adapts a core.Logger to cron.Logger.
type cronLogger struct {
	core.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug("cron: "+msg, kvMap(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Logger.Error("cron: "+msg, err, kvMap(keysAndValues))
}

func kvMap(keysAndValues []interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		m[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return m
}
