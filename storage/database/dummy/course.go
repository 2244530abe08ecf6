package dummydb

import (
	"strings"

	"github.com/trezcool/classroom/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

// AddCourses appends `courses` to the catalog; the catalog is read-only to the rest of the app.
func (db *DB) AddCourses(courses ...course.Course) {
	db.course.Lock()
	defer db.course.Unlock()
	db.course.table = append(db.course.table, courses...)
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]course.Course(nil), repo.db.table...), nil
}

func (repo *courseRepository) GetCourseByName(name string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, crs := range repo.db.table {
		if strings.EqualFold(crs.Name, name) {
			return crs, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}
