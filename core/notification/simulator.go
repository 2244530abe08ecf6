package notification

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

const (
	DefaultTickInterval = 10 * time.Second
	DefaultProbability  = 0.3
)

// Catalog is the default set of simulated notices, one per category.
var Catalog = []New{
	{Title: "Deadline approaching", Message: "An assignment is due in less than 48 hours", Category: CategoryDeadline},
	{Title: "New course material", Message: "Lecture slides for this week are now available", Category: CategoryMaterial},
	{Title: "Grade posted", Message: "One of your submissions has been graded", Category: CategoryGrade},
	{Title: "New assignment", Message: "Your instructor posted a new assignment", Category: CategoryAssignment},
}

// Ticker calls a function on a fixed interval until stopped.
type Ticker interface {
	Start(interval time.Duration, fn func()) error
	// Stop returns once no call is running anymore; it must be safe to call more than once.
	Stop()
}

type SimulatorOptions struct {
	Sink        Sink
	Ticker      Ticker
	Rand        *rand.Rand
	Interval    time.Duration // DefaultTickInterval if zero
	Probability float64       // chance, per tick, of pushing a notice
	Catalog     []New         // Catalog if empty
}

// Simulator pushes randomly picked notices to a Sink, on a tick, with a fixed probability.
type Simulator struct {
	opts SimulatorOptions

	mu      sync.Mutex // guards running
	running bool

	rngMu sync.Mutex // rand.Rand is not safe for concurrent use
}

func randNotNil(r *rand.Rand) vala.Checker {
	return func() (bool, string) {
		return r != nil, "Parameter was nil: Rand"
	}
}

func probabilityBetween0And1(p float64) vala.Checker {
	return func() (bool, string) {
		return p >= 0 && p <= 1, fmt.Sprintf("Parameter was not a probability: Probability (%v)", p)
	}
}

func NewSimulator(opts SimulatorOptions) (*Simulator, error) {
	if opts.Interval == 0 {
		opts.Interval = DefaultTickInterval
	}
	if len(opts.Catalog) == 0 {
		opts.Catalog = Catalog
	}
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(opts.Sink, "Sink"),
		vala.IsNotNil(opts.Ticker, "Ticker"),
		randNotNil(opts.Rand),
		vala.GreaterThan(int(opts.Interval), 0, "Interval"),
		probabilityBetween0And1(opts.Probability),
	).Check(); err != nil {
		return nil, err
	}
	return &Simulator{opts: opts}, nil
}

// Tick pushes one notice with the configured probability and reports whether it did.
func (s *Simulator) Tick() (Notification, bool) {
	s.rngMu.Lock()
	roll := s.opts.Rand.Float64()
	pick := s.opts.Rand.Intn(len(s.opts.Catalog))
	s.rngMu.Unlock()

	if roll >= s.opts.Probability {
		return Notification{}, false
	}
	return s.opts.Sink.Push(s.opts.Catalog[pick]), true
}

// Start schedules the ticks. Starting a running simulator does nothing.
func (s *Simulator) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if err := s.opts.Ticker.Start(s.opts.Interval, func() { s.Tick() }); err != nil {
		return errors.Wrap(err, "starting simulator")
	}
	s.running = true
	return nil
}

// Stop cancels the ticks; pushed notifications stay in the sink. Stopping twice is harmless.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.opts.Ticker.Stop()
	s.running = false
}

func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
