package assignment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classroom/core/validation"
)

type Status string

// Statuses
const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusGraded    Status = "graded"
)

var Statuses = []Status{StatusPending, StatusSubmitted, StatusGraded}

type Priority string

// Priorities
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority reads an already validated priority; anything unknown falls back to medium.
func ParsePriority(s string) Priority {
	switch p := Priority(strings.ToLower(s)); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityMedium
	}
}

// File is the metadata of a submitted file; its content is never seen.
type File struct {
	Name        string    `json:"name"`
	SizeBytes   int64     `json:"sizeBytes"`
	ContentType string    `json:"contentType,omitempty"`
	Ref         uuid.UUID `json:"ref"`
}

type Submission struct {
	Files    []File `json:"files"`
	Comments string `json:"comments,omitempty"`
}

type Assignment struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Course      string      `json:"course"`
	DueDate     time.Time   `json:"dueDate"`
	Status      Status      `json:"status"`
	Description string      `json:"description"`
	Priority    Priority    `json:"priority"`
	Grade       null.Int    `json:"grade"`
	SubmittedAt null.Time   `json:"submittedAt"`
	Feedback    null.String `json:"feedback"`
	Submission  *Submission `json:"submission,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy of `a`: the copy shares no memory with the original.
func (a Assignment) Clone() Assignment {
	if a.Submission != nil {
		sub := *a.Submission
		sub.Files = append([]File(nil), a.Submission.Files...)
		a.Submission = &sub
	}
	return a
}

// IsPending reports whether the assignment can still be submitted.
func (a Assignment) IsPending() bool {
	return a.Status == StatusPending
}

// Input is the raw form of an assignment, as typed by the user.
type Input struct {
	Title       string `json:"title"`
	Course      string `json:"course"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (in Input) values() validation.Values {
	return validation.Values{
		"title":       in.Title,
		"course":      in.Course,
		"dueDate":     in.DueDate,
		"description": in.Description,
		"priority":    in.Priority,
	}
}

// SubmitInput is the raw form of a submission.
type SubmitInput struct {
	Files    []File `json:"files"`
	Comments string `json:"comments"`
}

// GradeInput is the raw form of a grade.
type GradeInput struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
	Graded    int `json:"graded"`
}

// StatusFilter is a Status or "all".
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter reads user text into a StatusFilter; empty text means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	for _, st := range Statuses {
		if s == string(st) {
			return StatusFilter(st), nil
		}
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

func (f StatusFilter) Match(st Status) bool {
	return f == FilterAll || f == "" || Status(f) == st
}

// QueryFilter is the current view over the assignments.
type QueryFilter struct {
	Status StatusFilter `json:"status"`
	Search string       `json:"search"`
}
