// ABOUTME: Request validation built on go-playground/validator struct tags.
// ABOUTME: Produces field-level errors with JSON paths for the API and MCP layers.
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field. Loc is the JSON path, starting with "body".
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(f.Loc, "."), f.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(loc []string, msg, typ string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Loc: loc, Msg: msg, Type: typ}}}
}

type enumValue interface {
	Valid() bool
	Options() []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// enum accepts any closed set type from this package.
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.Valid()
	})

	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := ParseTime(fl.Field().String())
		return err == nil
	})

	return v
}

// Validate checks a request struct and returns a *ValidationError on failure.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, toFieldError(fe))
	}
	return out
}

func toFieldError(fe validator.FieldError) FieldError {
	// Namespace is "StructName.field.sub[0]"; drop the struct name.
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	loc := []string{"body"}
	for _, seg := range strings.Split(path, ".") {
		name, idx, found := strings.Cut(seg, "[")
		loc = append(loc, name)
		if found {
			loc = append(loc, strings.TrimSuffix(idx, "]"))
		}
	}

	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "Field required", Type: "missing"}
	case "gte":
		return FieldError{Loc: loc, Msg: "Input should be greater than or equal to " + fe.Param(), Type: "greater_than_equal"}
	case "lte":
		return FieldError{Loc: loc, Msg: "Input should be less than or equal to " + fe.Param(), Type: "less_than_equal"}
	case "gt":
		return FieldError{Loc: loc, Msg: "Input should be greater than " + fe.Param(), Type: "greater_than"}
	case "enum":
		msg := "Input should be a valid option"
		if e, ok := fe.Value().(enumValue); ok {
			msg = "Input should be " + QuoteJoin(e.Options())
		}
		return FieldError{Loc: loc, Msg: msg, Type: "enum"}
	case "timestamp":
		return FieldError{Loc: loc, Msg: "Input should be a valid datetime or date", Type: "datetime_parsing"}
	default:
		return FieldError{Loc: loc, Msg: fmt.Sprintf("Input failed %q check", fe.Tag()), Type: "value_error"}
	}
}

// QuoteJoin renders options as 'a', 'b' or 'c'.
func QuoteJoin(opts []string) string {
	q := make([]string, len(opts))
	for i, o := range opts {
		q[i] = "'" + o + "'"
	}
	if len(q) < 2 {
		return strings.Join(q, "")
	}
	return strings.Join(q[:len(q)-1], ", ") + " or " + q[len(q)-1]
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 timestamps, naive date-times, and plain dates.
// Naive values are read as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, f := range timeLayouts {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}
