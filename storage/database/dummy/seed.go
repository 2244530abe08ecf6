package dummydb

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/course"
)

// Courses is the sample course catalog.
var Courses = []course.Course{
	{ID: 1, Name: "Web Development", Instructor: "Dr. Amina Okafor", Code: "CS-310"},
	{ID: 2, Name: "Database Systems", Instructor: "Prof. Daniel Mbeki", Code: "CS-320"},
	{ID: 3, Name: "Data Structures", Instructor: "Dr. Lena Fischer", Code: "CS-210"},
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// SampleAssignments returns the assignments a fresh session starts with.
func SampleAssignments() []assignment.Assignment {
	created := date("2024-10-20")
	return []assignment.Assignment{
		{
			ID:          1,
			Title:       "React Components Assignment",
			Course:      "Web Development",
			DueDate:     date("2024-11-05"),
			Status:      assignment.StatusPending,
			Description: "Create a React component library with proper documentation",
			Priority:    assignment.PriorityHigh,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          2,
			Title:       "Database Design Project",
			Course:      "Database Systems",
			DueDate:     date("2024-11-10"),
			Status:      assignment.StatusSubmitted,
			Description: "Design and implement a normalized database schema",
			Priority:    assignment.PriorityMedium,
			SubmittedAt: null.TimeFrom(date("2024-11-08")),
			CreatedAt:   created,
			UpdatedAt:   date("2024-11-08"),
		},
		{
			ID:          3,
			Title:       "Algorithm Analysis Report",
			Course:      "Data Structures",
			DueDate:     date("2024-11-15"),
			Status:      assignment.StatusGraded,
			Description: "Analyze time complexity of sorting algorithms",
			Priority:    assignment.PriorityLow,
			Grade:       null.IntFrom(92),
			SubmittedAt: null.TimeFrom(date("2024-11-14")),
			Feedback:    null.StringFrom("Clear analysis, well-chosen examples."),
			CreatedAt:   created,
			UpdatedAt:   date("2024-11-16"),
		},
	}
}

// Seed loads the sample courses and assignments into `db`.
func Seed(db *DB) error {
	db.AddCourses(Courses...)

	repo := NewAssignmentRepository(db)
	for _, asg := range SampleAssignments() {
		if _, err := repo.CreateAssignment(asg); err != nil {
			return err
		}
	}
	return nil
}

// OpenSeeded returns a DB holding the sample data.
func OpenSeeded() (*DB, error) {
	db, err := Open()
	if err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}
