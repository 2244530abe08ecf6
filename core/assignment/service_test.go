package assignment_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/course"
	"github.com/trezcool/classroom/core/validation"
	"github.com/trezcool/classroom/storage/database/dummy"
)

var (
	now     = time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC)
	fileRef = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
)

func setup(t *testing.T) (*assignment.Service, *[]assignment.Event) {
	reset := assignment.MockClock(now, fileRef)
	t.Cleanup(reset)

	db, err := dummydb.OpenSeeded()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	courses := course.NewService(dummydb.NewCourseRepository(db))
	svc := assignment.NewService(dummydb.NewAssignmentRepository(db), courses, validation.NewDefaultEngine())

	events := new([]assignment.Event)
	svc.SetPublisher(assignment.PublisherFunc(func(evt assignment.Event) {
		*events = append(*events, evt)
	}))
	return svc, events
}

func validInput() assignment.Input {
	return assignment.Input{
		Title:       "X",
		Course:      "Web Development",
		DueDate:     "2030-01-01T10:00",
		Description: strings.Repeat("a", 20),
		Priority:    "high",
	}
}

func TestService_lifecycle(t *testing.T) {
	svc, events := setup(t)

	asg, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.Equal(t, 4, asg.ID)
	assert.Equal(t, assignment.StatusPending, asg.Status)
	assert.Equal(t, assignment.PriorityHigh, asg.Priority)
	assert.Equal(t, time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC), asg.DueDate)
	assert.False(t, asg.SubmittedAt.Valid)

	asg, err = svc.Submit(asg.ID, assignment.SubmitInput{
		Files:    []assignment.File{{Name: " a.pdf ", SizeBytes: 1000}},
		Comments: "done",
	})
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusSubmitted, asg.Status)
	assert.Equal(t, null.TimeFrom(now), asg.SubmittedAt)
	assert.Equal(t, &assignment.Submission{
		Files:    []assignment.File{{Name: "a.pdf", SizeBytes: 1000, Ref: fileRef}},
		Comments: "done",
	}, asg.Submission)

	asg, err = svc.Grade(asg.ID, assignment.GradeInput{Score: 92})
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusGraded, asg.Status)
	assert.Equal(t, null.IntFrom(92), asg.Grade)
	assert.False(t, asg.Feedback.Valid)
	assert.True(t, asg.SubmittedAt.Valid, "submittedAt is never unset")

	assert.Equal(t, []assignment.Event{
		assignment.Created{ID: 4, Title: "X"},
		assignment.Submitted{ID: 4, Title: "X"},
		assignment.Graded{ID: 4, Title: "X", Grade: 92},
	}, *events)
}

func TestService_Create(t *testing.T) {
	svc, events := setup(t)

	tests := []struct {
		name       string
		mod        func(in *assignment.Input)
		wantFields map[string]string
	}{
		{
			name:       "missing title",
			mod:        func(in *assignment.Input) { in.Title = "" },
			wantFields: map[string]string{"title": "this field is required"},
		},
		{
			name:       "short description",
			mod:        func(in *assignment.Input) { in.Description = "short" },
			wantFields: map[string]string{"description": "must be at least 10 characters"},
		},
		{
			name:       "unknown course with suggestion",
			mod:        func(in *assignment.Input) { in.Course = "Web Developement" },
			wantFields: map[string]string{"course": `unknown course; did you mean "Web Development"?`},
		},
		{
			name:       "unknown course",
			mod:        func(in *assignment.Input) { in.Course = "Astronomy" },
			wantFields: map[string]string{"course": "unknown course"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mod(&in)
			_, err := svc.Create(in)
			require.True(t, core.IsValidation(err), err)
			assert.Equal(t, tt.wantFields, err.(*core.ValidationError).FieldMap())
		})
	}

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total, "rejected creations store nothing")
	assert.Empty(t, *events)

	t.Run("course name is normalized", func(t *testing.T) {
		in := validInput()
		in.Course = "  database systems "
		in.Priority = ""
		asg, err := svc.Create(in)
		require.NoError(t, err)
		assert.Equal(t, "Database Systems", asg.Course)
		assert.Equal(t, assignment.PriorityMedium, asg.Priority)
	})

	t.Run("ids strictly increase", func(t *testing.T) {
		a1, err := svc.Create(validInput())
		require.NoError(t, err)
		a2, err := svc.Create(validInput())
		require.NoError(t, err)
		assert.Greater(t, a2.ID, a1.ID)
	})
}

func TestService_Update(t *testing.T) {
	svc, events := setup(t)

	_, err := svc.Update(42, assignment.Input{})
	assert.True(t, core.IsNotFound(err), "not found is checked before validation")

	in := validInput()
	in.Title = "Renamed"
	asg, err := svc.Update(3, in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", asg.Title)
	assert.Equal(t, assignment.StatusGraded, asg.Status)
	assert.Equal(t, null.IntFrom(92), asg.Grade)
	assert.True(t, asg.SubmittedAt.Valid)
	assert.Empty(t, *events)

	in.Description = "short"
	_, err = svc.Update(3, in)
	assert.True(t, core.IsValidation(err))
	got, err := svc.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 20), got.Description)
}

func TestService_Submit(t *testing.T) {
	svc, _ := setup(t)
	file := []assignment.File{{Name: "a.pdf", SizeBytes: 1000}}

	tests := []struct {
		name    string
		id      int
		in      assignment.SubmitInput
		wantErr func(error) bool
	}{
		{name: "not found", id: 42, in: assignment.SubmitInput{Files: file}, wantErr: core.IsNotFound},
		{name: "already submitted", id: 2, in: assignment.SubmitInput{Files: file}, wantErr: core.IsInvalidState},
		{name: "graded", id: 3, in: assignment.SubmitInput{Files: file}, wantErr: core.IsInvalidState},
		{name: "no files", id: 1, wantErr: core.IsEmptySubmission},
		{name: "comments too long", id: 1, in: assignment.SubmitInput{Files: file, Comments: strings.Repeat("c", 301)}, wantErr: core.IsValidation},
		{name: "unnamed file", id: 1, in: assignment.SubmitInput{Files: []assignment.File{{SizeBytes: 1}}}, wantErr: core.IsValidation},
		{name: "negative size", id: 1, in: assignment.SubmitInput{Files: []assignment.File{{Name: "a", SizeBytes: -1}}}, wantErr: core.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(tt.id, tt.in)
			assert.True(t, tt.wantErr(err), err)
		})
	}

	asg, err := svc.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusPending, asg.Status, "failed submissions mutate nothing")
	assert.Nil(t, asg.Submission)
}

func TestService_Grade(t *testing.T) {
	svc, events := setup(t)

	tests := []struct {
		name    string
		id      int
		in      assignment.GradeInput
		wantErr func(error) bool
	}{
		{name: "not found", id: 42, wantErr: core.IsNotFound},
		{name: "pending", id: 1, in: assignment.GradeInput{Score: 50}, wantErr: core.IsInvalidState},
		{name: "already graded", id: 3, in: assignment.GradeInput{Score: 50}, wantErr: core.IsInvalidState},
		{name: "score too high", id: 2, in: assignment.GradeInput{Score: 101}, wantErr: core.IsValidation},
		{name: "negative score", id: 2, in: assignment.GradeInput{Score: -1}, wantErr: core.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Grade(tt.id, tt.in)
			assert.True(t, tt.wantErr(err), err)
		})
	}
	assert.Empty(t, *events)

	asg, err := svc.GetByID(3)
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(92), asg.Grade, "grading a graded assignment mutates nothing")

	asg, err = svc.Grade(2, assignment.GradeInput{Score: 0, Feedback: " Try again "})
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(0), asg.Grade)
	assert.Equal(t, null.StringFrom("Try again"), asg.Feedback)
}

func TestService_StatsAndDeadlines(t *testing.T) {
	svc, _ := setup(t)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, assignment.Stats{Total: 3, Pending: 1, Submitted: 1, Graded: 1}, stats)

	mk := func(title, due string) int {
		in := validInput()
		in.Title = title
		in.DueDate = due
		asg, err := svc.Create(in)
		require.NoError(t, err)
		return asg.ID
	}
	late := mk("late", "2030-03-01")
	tie1 := mk("tie 1", "2030-02-01")
	tie2 := mk("tie 2", "2030-02-01")

	ids := func(list []assignment.Assignment) []int {
		out := make([]int, len(list))
		for i, a := range list {
			out[i] = a.ID
		}
		return out
	}

	upcoming, err := svc.UpcomingDeadlines(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, tie1, tie2}, ids(upcoming))

	upcoming, err = svc.UpcomingDeadlines(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, tie1, tie2, late}, ids(upcoming))

	stats, err = svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, assignment.Stats{Total: 6, Pending: 4, Submitted: 1, Graded: 1}, stats)
}

func TestService_Filter(t *testing.T) {
	svc, _ := setup(t)

	pending, err := svc.Filter(assignment.QueryFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].ID)

	all, err := svc.Filter(assignment.QueryFilter{Status: assignment.FilterAll})
	require.NoError(t, err)
	assert.Len(t, all, 3, "filtering is read-only")
}
