package dummydb

import (
	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/assignment"
)

const assignmentResource = "assignment"

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) query() []assignment.Assignment {
	assignments := make([]assignment.Assignment, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		assignments = append(assignments, repo.db.table[id].Clone())
	}
	return assignments
}

// CreateAssignment keeps a non-zero id if it is not taken yet (seeding); otherwise the next id is assigned.
func (repo *assignmentRepository) CreateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, taken := repo.db.table[asg.ID]; asg.ID <= 0 || taken {
		asg.ID = repo.db.maxID + 1
	}
	if asg.ID > repo.db.maxID {
		repo.db.maxID = asg.ID
	}

	stored := asg.Clone()
	repo.db.table[asg.ID] = &stored
	repo.db.order = append(repo.db.order, asg.ID)
	return asg.Clone(), nil
}

func (repo *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *assignmentRepository) GetAssignmentByID(id int) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if asg, ok := repo.db.table[id]; ok {
		return asg.Clone(), nil
	}
	return assignment.Assignment{}, core.NewNotFoundError(assignmentResource, id)
}

func (repo *assignmentRepository) UpdateAssignment(asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[asg.ID]; !ok {
		return assignment.Assignment{}, core.NewNotFoundError(assignmentResource, asg.ID)
	}
	stored := asg.Clone()
	repo.db.table[asg.ID] = &stored
	return asg.Clone(), nil
}
