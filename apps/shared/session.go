// Package shared wires the dashboard session used by the api and console apps.
package shared

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/course"
	"github.com/trezcool/classroom/core/dashboard"
	"github.com/trezcool/classroom/core/notification"
	"github.com/trezcool/classroom/core/validation"
	"github.com/trezcool/classroom/services/scheduler"
	"github.com/trezcool/classroom/storage/database/dummy"
)

var nowFunc = time.Now // mockable

// NewSession returns a session over a freshly seeded in-memory store.
func NewSession(conf *core.Config, logger core.Logger) (*dashboard.Session, error) {
	db, err := dummydb.OpenSeeded()
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	capacity := conf.Feed.Capacity
	if capacity == 0 {
		capacity = notification.DefaultCapacity
	}
	feed, err := notification.NewFeed(capacity)
	if err != nil {
		return nil, errors.Wrap(err, "creating notification feed")
	}

	engine := validation.NewDefaultEngine()
	courses := course.NewService(dummydb.NewCourseRepository(db))

	return dashboard.NewSession(dashboard.Options{
		Assignments: assignment.NewService(dummydb.NewAssignmentRepository(db), courses, engine),
		Courses:     courses,
		Feed:        feed,
		Engine:      engine,
		Logger:      logger,
	}), nil
}

// NewSimulator returns a notification simulator ticking on a cron scheduler.
// A zero Feed.Seed seeds the generator from the clock.
func NewSimulator(conf *core.Config, logger core.Logger, sink notification.Sink) (*notification.Simulator, error) {
	seed := conf.Feed.Seed
	if seed == 0 {
		seed = nowFunc().UnixNano()
	}
	return notification.NewSimulator(notification.SimulatorOptions{
		Sink:        sink,
		Ticker:      scheduler.New(logger),
		Rand:        rand.New(rand.NewSource(seed)),
		Interval:    conf.Feed.TickInterval,
		Probability: conf.Feed.Probability,
	})
}
