// Package course holds the read-only course catalog assignments refer to.
package course

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/classroom/core"
)

var (
	ErrNotFound = errors.New("course not found")

	// names below this similarity ratio are not suggested
	suggestionMinRatio = 0.6
)

type Course struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Code       string `json:"code"`
}

type (
	Repository interface {
		QueryAllCourses() ([]Course, error)
		// GetCourseByName matches the name case-insensitively.
		GetCourseByName(name string) (Course, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByName(name string) (Course, error) {
	return svc.repo.GetCourseByName(core.CleanString(name))
}

// Resolve returns the course named `name`.
// An unknown name is reported as a *core.ValidationError on `field`, suggesting the closest known name if any.
func (svc *Service) Resolve(field, name string) (Course, error) {
	crs, err := svc.GetByName(name)
	if err == nil {
		return crs, nil
	}
	if err != ErrNotFound {
		return Course{}, err
	}

	msg := "unknown course"
	if suggestion, ok := svc.Suggest(name); ok {
		msg = fmt.Sprintf("%s; did you mean %q?", msg, suggestion)
	}
	return Course{}, core.NewValidationError(ErrNotFound, core.FieldError{Field: field, Error: msg})
}

// Suggest returns the catalog name closest to `name`.
func (svc *Service) Suggest(name string) (string, bool) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return "", false
	}

	name = core.CleanString(name, true /* lower */)
	var best string
	var bestRatio float64
	for _, crs := range courses {
		ratio := difflib.NewMatcher(
			strings.Split(name, ""),
			strings.Split(strings.ToLower(crs.Name), ""),
		).Ratio()
		if ratio > bestRatio {
			best, bestRatio = crs.Name, ratio
		}
	}
	return best, bestRatio >= suggestionMinRatio
}
