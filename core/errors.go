package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) == 1 {
		return err.Fields[0].Field + ": " + err.Fields[0].Error
	}
	return "invalid input"
}

// FieldMap returns the field errors keyed by field name.
func (err ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fe := range err.Fields {
		m[fe.Field] = fe.Error
	}
	return m
}

// NotFoundError reports a stale reference: the id is not in the collection.
type NotFoundError struct {
	Resource string
	ID       int
}

func NewNotFoundError(resource string, id int) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", err.Resource, err.ID)
}

// InvalidStateError reports an operation attempted from a status that does not permit it.
type InvalidStateError struct {
	ID     int
	Op     string
	Status string
}

func NewInvalidStateError(id int, op, status string) error {
	return &InvalidStateError{ID: id, Op: op, Status: status}
}

func (err InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s assignment %d: status is %s", err.Op, err.ID, err.Status)
}

type EmptySubmissionError struct {
	ID int
}

func NewEmptySubmissionError(id int) error {
	return &EmptySubmissionError{ID: id}
}

func (err EmptySubmissionError) Error() string {
	return fmt.Sprintf("submission of assignment %d requires at least one file", err.ID)
}

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

func IsInvalidState(err error) bool {
	_, ok := errors.Cause(err).(*InvalidStateError)
	return ok
}

func IsEmptySubmission(err error) bool {
	_, ok := errors.Cause(err).(*EmptySubmissionError)
	return ok
}
