// Package dummydb keeps the session's data in memory. Nothing outlives the process.
package dummydb

import (
	"sync"

	"github.com/trezcool/classroom/core/assignment"
	"github.com/trezcool/classroom/core/course"
)

type (
	DB struct {
		assignment *assignmentTable
		course     *courseTable
	}

	assignmentTable struct {
		sync.RWMutex
		table map[int]*assignment.Assignment
		order []int // insertion order
		maxID int   // highest id ever stored; ids are never reused
	}

	courseTable struct {
		sync.RWMutex
		table []course.Course
	}
)

// Open returns an empty DB.
func Open() (*DB, error) {
	db := &DB{
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		course:     &courseTable{},
	}
	return db, nil
}
