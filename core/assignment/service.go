// Package assignment implements the assignment lifecycle:
//
//	pending --submit(files, comments)--> submitted --grade(score, feedback)--> graded
//
// Every operation is all-or-nothing: a rejected operation leaves the stored assignment unchanged.
package assignment

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/course"
	"github.com/trezcool/classroom/core/validation"
)

var (
	nowFunc     = time.Now // mockable
	newFileRef  = uuid.New // mockable
	courseField = "course"
)

type (
	Repository interface {
		// CreateAssignment stores `a` under a fresh id, greater than every id ever stored.
		CreateAssignment(a Assignment) (Assignment, error)
		// QueryAllAssignments returns the assignments in insertion order.
		QueryAllAssignments() ([]Assignment, error)
		// GetAssignmentByID returns a *core.NotFoundError if there is no assignment `id`.
		GetAssignmentByID(id int) (Assignment, error)
		UpdateAssignment(a Assignment) (Assignment, error)
	}

	// CourseResolver tells whether a course exists.
	CourseResolver interface {
		Resolve(field, name string) (course.Course, error)
	}

	// Service is not safe for concurrent mutation: callers serialize operations (see dashboard.Session).
	Service struct {
		repo    Repository
		courses CourseResolver
		engine  *validation.Engine
		pub     Publisher
	}
)

func NewService(repo Repository, courses CourseResolver, engine *validation.Engine) *Service {
	return &Service{repo: repo, courses: courses, engine: engine}
}

// SetPublisher sets the receiver of the lifecycle events; nil disables them.
func (svc *Service) SetPublisher(pub Publisher) {
	svc.pub = pub
}

func (svc *Service) publish(evt Event) {
	if svc.pub != nil {
		svc.pub.Publish(evt)
	}
}

// clean validates `in` and returns the assignment fields it describes.
func (svc *Service) clean(in Input) (Assignment, error) {
	res, err := svc.engine.Validate(validation.SchemaAssignment, in.values())
	if err != nil {
		return Assignment{}, err
	}
	if !res.OK {
		return Assignment{}, res.Err()
	}

	crs, err := svc.courses.Resolve(courseField, res.Value["course"])
	if err != nil {
		return Assignment{}, err
	}
	due, err := time.Parse(time.RFC3339, res.Value["dueDate"])
	if err != nil {
		return Assignment{}, errors.Wrap(err, "parsing normalized due date")
	}

	return Assignment{
		Title:       res.Value["title"],
		Course:      crs.Name,
		DueDate:     due,
		Description: res.Value["description"],
		Priority:    ParsePriority(res.Value["priority"]),
	}, nil
}

func (svc *Service) Create(in Input) (Assignment, error) {
	asg, err := svc.clean(in)
	if err != nil {
		return Assignment{}, err
	}

	now := nowFunc().UTC()
	asg.Status = StatusPending
	asg.CreatedAt = now
	asg.UpdatedAt = now

	asg, err = svc.repo.CreateAssignment(asg)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "creating assignment")
	}
	svc.publish(Created{ID: asg.ID, Title: asg.Title})
	return asg, nil
}

func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) GetByID(id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

// Filter returns the assignments matching `filter`, in store order.
func (svc *Service) Filter(filter QueryFilter) ([]Assignment, error) {
	all, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}
	return Filter(all, filter.Status, filter.Search), nil
}

// Update replaces the editable fields of assignment `id`; status, grade and submission are left untouched.
// Assignments are editable in any status.
func (svc *Service) Update(id int, in Input) (Assignment, error) {
	asg, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	fields, err := svc.clean(in)
	if err != nil {
		return Assignment{}, err
	}

	asg.Title = fields.Title
	asg.Course = fields.Course
	asg.DueDate = fields.DueDate
	asg.Description = fields.Description
	asg.Priority = fields.Priority
	asg.UpdatedAt = nowFunc().UTC()

	asg, err = svc.repo.UpdateAssignment(asg)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "updating assignment")
	}
	return asg, nil
}

func (svc *Service) Submit(id int, si SubmitInput) (Assignment, error) {
	asg, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	if !asg.IsPending() {
		return Assignment{}, core.NewInvalidStateError(id, "submit", string(asg.Status))
	}
	if len(si.Files) == 0 {
		return Assignment{}, core.NewEmptySubmissionError(id)
	}

	res, err := svc.engine.Validate(validation.SchemaSubmission, validation.Values{
		"assignmentId": strconv.Itoa(id),
		"comments":     si.Comments,
	})
	if err != nil {
		return Assignment{}, err
	}
	var fldErrs []core.FieldError
	if !res.OK {
		fldErrs = res.Err().(*core.ValidationError).Fields
	}
	files := make([]File, len(si.Files))
	for i, f := range si.Files {
		f.Name = core.CleanString(f.Name)
		if f.Name == "" {
			fldErrs = append(fldErrs, core.FieldError{Field: fmt.Sprintf("files[%d].name", i), Error: "this field is required"})
		}
		if f.SizeBytes < 0 {
			fldErrs = append(fldErrs, core.FieldError{Field: fmt.Sprintf("files[%d].sizeBytes", i), Error: "must be 0 or more"})
		}
		f.Ref = newFileRef()
		files[i] = f
	}
	if len(fldErrs) > 0 {
		return Assignment{}, core.NewValidationError(errors.New("invalid submission input"), fldErrs...)
	}

	now := nowFunc().UTC()
	asg.Status = StatusSubmitted
	asg.SubmittedAt = null.TimeFrom(now)
	asg.Submission = &Submission{Files: files, Comments: res.Value["comments"]}
	asg.UpdatedAt = now

	asg, err = svc.repo.UpdateAssignment(asg)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "submitting assignment")
	}
	svc.publish(Submitted{ID: asg.ID, Title: asg.Title})
	return asg, nil
}

func (svc *Service) Grade(id int, gi GradeInput) (Assignment, error) {
	asg, err := svc.repo.GetAssignmentByID(id)
	if err != nil {
		return Assignment{}, err
	}
	if asg.Status != StatusSubmitted {
		return Assignment{}, core.NewInvalidStateError(id, "grade", string(asg.Status))
	}

	res, err := svc.engine.Validate(validation.SchemaGrade, validation.Values{
		"score":    strconv.Itoa(gi.Score),
		"feedback": gi.Feedback,
	})
	if err != nil {
		return Assignment{}, err
	}
	if !res.OK {
		return Assignment{}, res.Err()
	}

	feedback := res.Value["feedback"]
	asg.Status = StatusGraded
	asg.Grade = null.IntFrom(gi.Score)
	asg.Feedback = null.NewString(feedback, feedback != "")
	asg.UpdatedAt = nowFunc().UTC()

	asg, err = svc.repo.UpdateAssignment(asg)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "grading assignment")
	}
	svc.publish(Graded{ID: asg.ID, Title: asg.Title, Grade: gi.Score})
	return asg, nil
}

// Stats counts the assignments per status.
func (svc *Service) Stats() (Stats, error) {
	all, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(all)}
	for _, a := range all {
		switch a.Status {
		case StatusPending:
			stats.Pending++
		case StatusSubmitted:
			stats.Submitted++
		case StatusGraded:
			stats.Graded++
		}
	}
	return stats, nil
}

// UpcomingDeadlines returns the pending assignments by ascending due date (then id), at most `limit` of them.
// limit <= 0 returns them all.
func (svc *Service) UpcomingDeadlines(limit int) ([]Assignment, error) {
	all, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}

	pending := Filter(all, StatusFilter(StatusPending), "")
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].DueDate.Equal(pending[j].DueDate) {
			return pending[i].DueDate.Before(pending[j].DueDate)
		}
		return pending[i].ID < pending[j].ID
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}
