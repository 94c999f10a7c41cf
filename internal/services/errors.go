package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrForbidden indicates the actor's role lacks permission for the
// attempted write. It is raised before validation runs.
var ErrForbidden = errors.New("forbidden")

// ValidationError carries a field → message map for inline display. The
// write is never applied when validation fails.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors accumulates validation failures during input checks.
type fieldErrors map[string]string

func (fe fieldErrors) add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

func (fe fieldErrors) asError() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// singleFieldError builds a ValidationError for one field.
func singleFieldError(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// notFoundOr converts gorm's not-found sentinel into ErrNotFound and wraps
// anything else.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "fetching %s", what)
}

// duplicateOr converts a unique-constraint violation into a validation
// error on the conflicting field.
func duplicateOr(err error, field, message, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return singleFieldError(field, message)
	}
	return errors.Wrapf(err, "saving %s", what)
}
