// Package notification keeps the capacity-bounded notification feed and simulates externally arriving notices.
package notification

import (
	"time"

	"github.com/kat-co/vala"
)

// DefaultCapacity is the number of notifications a feed keeps.
const DefaultCapacity = 10

var nowFunc = time.Now // mockable

type Category string

// Categories
const (
	CategoryAssignment Category = "assignment"
	CategoryDeadline   Category = "deadline"
	CategoryGrade      Category = "grade"
	CategoryMaterial   Category = "material"
)

type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

// New is a notification about to be pushed.
type New struct {
	Title    string
	Message  string
	Category Category
}

// Sink accepts new notifications.
type Sink interface {
	Push(nn New) Notification
}

// Feed is an ordered list of notifications, newest first.
// Entries leave the feed only when it overflows, oldest first.
// Feed is not safe for concurrent use; its owner serializes access.
type Feed struct {
	capacity int
	items    []Notification
	lastID   int
}

var _ Sink = (*Feed)(nil)

func NewFeed(capacity int) (*Feed, error) {
	if err := vala.BeginValidation().Validate(
		vala.GreaterThan(capacity, 0, "capacity"),
	).Check(); err != nil {
		return nil, err
	}
	return &Feed{capacity: capacity, items: make([]Notification, 0, capacity)}, nil
}

// Push prepends a notification built from `nn` and evicts the oldest entries beyond capacity.
func (f *Feed) Push(nn New) Notification {
	f.lastID++
	n := Notification{
		ID:        f.lastID,
		Title:     nn.Title,
		Message:   nn.Message,
		Category:  nn.Category,
		CreatedAt: nowFunc().UTC(),
	}

	items := make([]Notification, 0, f.capacity)
	items = append(items, n)
	items = append(items, f.items...)
	if len(items) > f.capacity {
		items = items[:f.capacity]
	}
	f.items = items
	return n
}

// MarkRead marks notification `id` as read; an unknown id is ignored.
func (f *Feed) MarkRead(id int) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return
		}
	}
}

func (f *Feed) MarkAllRead() {
	for i := range f.items {
		f.items[i].Read = true
	}
}

func (f *Feed) UnreadCount() int {
	var n int
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// List returns a copy of the feed, newest first.
func (f *Feed) List() []Notification {
	list := make([]Notification, len(f.items))
	copy(list, f.items)
	return list
}

func (f *Feed) Len() int {
	return len(f.items)
}

func (f *Feed) Capacity() int {
	return f.capacity
}
