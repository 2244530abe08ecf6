// Package dashboard is the boundary between the rendering layer and the core:
// intents come in, snapshots go out to the subscribers after every change.
package dashboard

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/course"
	"github.com/trezcool/classroom/core/notification"
	"github.com/trezcool/classroom/core/validation"
)

// DefaultDeadlineLimit is the number of upcoming deadlines a Snapshot holds.
const DefaultDeadlineLimit = 5

type (
	Options struct {
		Assignments   *assignment.Service
		Courses       *course.Service
		Feed          *notification.Feed
		Engine        *validation.Engine
		Logger        core.Logger
		DeadlineLimit int // DefaultDeadlineLimit if zero
	}

	// Snapshot is a copy of the session state; changing it changes nothing.
	Snapshot struct {
		SessionID     core.SessionID              `json:"sessionId"`
		Assignments   []assignment.Assignment     `json:"assignments"`
		Filtered      []assignment.Assignment     `json:"filtered"`
		Filter        assignment.QueryFilter      `json:"filter"`
		Stats         assignment.Stats            `json:"stats"`
		Deadlines     []assignment.Assignment     `json:"deadlines"`
		Notifications []notification.Notification `json:"notifications"`
		UnreadCount   int                         `json:"unreadCount"`
	}

	// Session is the single owner of the dashboard state.
	// All intents and pushes are serialized; it is safe for concurrent use.
	Session struct {
		id   core.SessionID
		opts Options
		log  core.Logger

		mu     sync.Mutex
		filter assignment.QueryFilter
		subs   map[int]func(Snapshot)
		subSeq int
	}
)

var _ notification.Sink = (*Session)(nil)

func NewSession(opts Options) *Session {
	if opts.DeadlineLimit == 0 {
		opts.DeadlineLimit = DefaultDeadlineLimit
	}
	s := &Session{
		id:     core.SessionID(uuid.New().String()),
		opts:   opts,
		log:    opts.Logger,
		filter: assignment.QueryFilter{Status: assignment.FilterAll},
		subs:   make(map[int]func(Snapshot)),
	}
	if s.log == nil {
		s.log = discard{}
	}
	// events are published while the session lock is held
	opts.Assignments.SetPublisher(assignment.PublisherFunc(s.onEvent))
	return s
}

func (s *Session) ID() core.SessionID {
	return s.id
}

// Subscribe registers `fn` to receive a Snapshot after every change; call the returned func to unsubscribe.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subSeq++
	key := s.subSeq
	s.subs[key] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, key)
		})
	}
}

// mutate runs `op` under the session lock and, on success, delivers a fresh snapshot to the subscribers.
// Subscribers are called without the lock held.
func (s *Session) mutate(op func() error) error {
	s.mu.Lock()
	if err := op(); err != nil {
		s.mu.Unlock()
		return err
	}
	snap, err := s.snapshot()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("taking snapshot", err, s.id)
		return nil
	}
	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

func (s *Session) snapshot() (Snapshot, error) {
	svc := s.opts.Assignments

	all, err := svc.QueryAll()
	if err != nil {
		return Snapshot{}, err
	}
	stats, err := svc.Stats()
	if err != nil {
		return Snapshot{}, err
	}
	deadlines, err := svc.UpcomingDeadlines(s.opts.DeadlineLimit)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		SessionID:     s.id,
		Assignments:   all,
		Filtered:      assignment.Filter(all, s.filter.Status, s.filter.Search),
		Filter:        s.filter,
		Stats:         stats,
		Deadlines:     deadlines,
		Notifications: s.opts.Feed.List(),
		UnreadCount:   s.opts.Feed.UnreadCount(),
	}, nil
}

func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Intents

func (s *Session) CreateAssignment(in assignment.Input) (asg assignment.Assignment, err error) {
	err = s.mutate(func() error {
		asg, err = s.opts.Assignments.Create(in)
		return err
	})
	if err == nil {
		s.log.Info("assignment created", map[string]interface{}{"id": asg.ID}, s.id)
	}
	return asg, err
}

func (s *Session) UpdateAssignment(id int, in assignment.Input) (asg assignment.Assignment, err error) {
	err = s.mutate(func() error {
		asg, err = s.opts.Assignments.Update(id, in)
		return err
	})
	return asg, err
}

func (s *Session) SubmitAssignment(id int, in assignment.SubmitInput) (asg assignment.Assignment, err error) {
	err = s.mutate(func() error {
		asg, err = s.opts.Assignments.Submit(id, in)
		return err
	})
	if err == nil {
		s.log.Info("assignment submitted", map[string]interface{}{"id": id, "files": len(in.Files)}, s.id)
	}
	return asg, err
}

func (s *Session) GradeAssignment(id int, in assignment.GradeInput) (asg assignment.Assignment, err error) {
	err = s.mutate(func() error {
		asg, err = s.opts.Assignments.Grade(id, in)
		return err
	})
	if err == nil {
		s.log.Info("assignment graded", map[string]interface{}{"id": id, "score": in.Score}, s.id)
	}
	return asg, err
}

// SetFilter sets the status filter of the current view; see assignment.ParseStatusFilter.
func (s *Session) SetFilter(status string) error {
	st, err := assignment.ParseStatusFilter(status)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "status", Error: err.Error()})
	}
	return s.mutate(func() error {
		s.filter.Status = st
		return nil
	})
}

func (s *Session) SetSearchText(text string) {
	_ = s.mutate(func() error {
		s.filter.Search = text
		return nil
	})
}

// SetQueryFilter sets both the status filter and the search text at once.
func (s *Session) SetQueryFilter(status, search string) error {
	st, err := assignment.ParseStatusFilter(status)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "status", Error: err.Error()})
	}
	return s.mutate(func() error {
		s.filter = assignment.QueryFilter{Status: st, Search: search}
		return nil
	})
}

func (s *Session) MarkNotificationRead(id int) {
	_ = s.mutate(func() error {
		s.opts.Feed.MarkRead(id)
		return nil
	})
}

func (s *Session) MarkAllNotificationsRead() {
	_ = s.mutate(func() error {
		s.opts.Feed.MarkAllRead()
		return nil
	})
}

// Validate evaluates `in` against the schema named `schema`; it changes nothing.
func (s *Session) Validate(schema string, in validation.Values) (validation.Result, error) {
	return s.opts.Engine.Validate(validation.SchemaName(schema), in)
}

// Push adds a simulated notification to the feed.
func (s *Session) Push(nn notification.New) (n notification.Notification) {
	_ = s.mutate(func() error {
		n = s.opts.Feed.Push(nn)
		return nil
	})
	return n
}

// Queries

func (s *Session) Assignments(filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Assignments.Filter(filter)
}

func (s *Session) Assignment(id int) (assignment.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Assignments.GetByID(id)
}

func (s *Session) Stats() (assignment.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Assignments.Stats()
}

func (s *Session) UpcomingDeadlines(limit int) ([]assignment.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Assignments.UpcomingDeadlines(limit)
}

func (s *Session) Courses() ([]course.Course, error) {
	return s.opts.Courses.QueryAll()
}

func (s *Session) Notifications() ([]notification.Notification, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Feed.List(), s.opts.Feed.UnreadCount()
}

// onEvent turns the assignment events into notifications. The session lock is held.
func (s *Session) onEvent(evt assignment.Event) {
	var nn notification.New
	switch e := evt.(type) {
	case assignment.Created:
		nn = notification.New{
			Title:    "New assignment: " + e.Title,
			Message:  fmt.Sprintf("Assignment #%d was added to your list", e.ID),
			Category: notification.CategoryAssignment,
		}
	case assignment.Submitted:
		nn = notification.New{
			Title:    e.Title + " submitted",
			Message:  fmt.Sprintf("Assignment #%d is waiting for a grade", e.ID),
			Category: notification.CategoryAssignment,
		}
	case assignment.Graded:
		nn = notification.New{
			Title:    fmt.Sprintf("%s graded: %d/100", e.Title, e.Grade),
			Message:  fmt.Sprintf("Assignment #%d has been graded", e.ID),
			Category: notification.CategoryGrade,
		}
	default:
		return
	}
	s.opts.Feed.Push(nn)
}

type discard struct{}

func (discard) Debug(string, ...interface{}) {}
func (discard) Info(string, ...interface{})  {}
func (discard) Warn(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}
func (discard) Fatal(string, ...interface{}) {}
