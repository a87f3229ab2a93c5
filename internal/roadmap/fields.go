package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

// Field names one editable attribute of an initiative.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldQuarter      Field = "quarter"
	FieldOwner        Field = "owner"
	FieldStatus       Field = "status"
	FieldDependencies Field = "dependencies"
	FieldGaps         Field = "gaps"
)

var (
	ErrUnknownField   = errors.New("roadmap: unknown field")
	ErrInvalidQuarter = errors.New("roadmap: quarter is not in the registry")
	ErrInvalidStatus  = errors.New("roadmap: status is not in the registry")
)

// Fields lists every editable field in form order.
func Fields() []Field {
	return []Field{
		FieldTitle,
		FieldOwner,
		FieldDescription,
		FieldQuarter,
		FieldStatus,
		FieldDependencies,
		FieldGaps,
	}
}

// ParseField maps a field name onto a Field.
func ParseField(name string) (Field, error) {
	candidate := Field(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Fields() {
		if f == candidate {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Label is the form caption for the field.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Initiative Title"
	case FieldDescription:
		return "Description"
	case FieldQuarter:
		return "Timeline"
	case FieldOwner:
		return "Owner"
	case FieldStatus:
		return "Status"
	case FieldDependencies:
		return "Dependencies"
	case FieldGaps:
		return "Knowledge Gaps / Open Questions"
	}
	return string(f)
}

// Enumerated reports whether the field only accepts registry members.
func (f Field) Enumerated() bool {
	return f == FieldQuarter || f == FieldStatus
}

// Get reads a field value.
func (i Initiative) Get(f Field) (string, error) {
	switch f {
	case FieldTitle:
		return i.Title, nil
	case FieldDescription:
		return i.Description, nil
	case FieldQuarter:
		return string(i.Quarter), nil
	case FieldOwner:
		return i.Owner, nil
	case FieldStatus:
		return string(i.Status), nil
	case FieldDependencies:
		return i.Dependencies, nil
	case FieldGaps:
		return i.Gaps, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, string(f))
}

// With returns a copy of i with one field replaced. Free-text fields accept
// any value; quarter and status must be registry members.
func (i Initiative) With(f Field, value string) (Initiative, error) {
	switch f {
	case FieldTitle:
		i.Title = value
	case FieldDescription:
		i.Description = value
	case FieldQuarter:
		q := Quarter(value)
		if !q.Valid() {
			return i, fmt.Errorf("%w: %q", ErrInvalidQuarter, value)
		}
		i.Quarter = q
	case FieldOwner:
		i.Owner = value
	case FieldStatus:
		s := Status(value)
		if !s.Valid() {
			return i, fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
		i.Status = s
	case FieldDependencies:
		i.Dependencies = value
	case FieldGaps:
		i.Gaps = value
	default:
		return i, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return i, nil
}
