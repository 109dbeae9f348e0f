// Package validation runs field validators against a decoded JSON body and
// collects every failure into a field to message mapping.
//
// A validator pairs a field extractor with either a synchronous predicate
// (Length) or an asynchronous check (Custom) and a Formatter that renders the
// failure message from the submitted value. Run never stops at the first
// failure: all validators execute, concurrently, and their results are merged
// in declaration order.
package validation

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Failure codes.
const (
	CodeLength = "length"
	CodeCustom = "custom"
)

// Body is a decoded JSON request payload.
type Body map[string]any

// Value extracts a top-level field. Missing fields report ok=false.
func (b Body) Value(field string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b[field]
	return v, ok
}

// Formatter renders a failure message for the submitted value.
type Formatter func(value any) string

// Check is an asynchronous predicate; a non-nil error fails the field.
type Check func(ctx context.Context, value any) error

// Failure is the structured result of a failed validator.
type Failure struct {
	Field   string
	Code    string
	Message string
	Err     error
}

// Validator inspects one field of a body.
type Validator interface {
	Field() string
	Validate(ctx context.Context, body Body) *Failure
}

type lengthValidator struct {
	field    string
	min, max int
	format   Formatter
}

// Length fails when the rune length of the field's string form is below min,
// or above max when max > 0. Missing fields count as empty strings.
func Length(field string, min, max int, format Formatter) Validator {
	return &lengthValidator{field: field, min: min, max: max, format: format}
}

func (v *lengthValidator) Field() string { return v.field }

func (v *lengthValidator) Validate(_ context.Context, body Body) *Failure {
	value, _ := body.Value(v.field)
	n := utf8.RuneCountInString(StringValue(value))
	if n >= v.min && (v.max <= 0 || n <= v.max) {
		return nil
	}
	return &Failure{Field: v.field, Code: CodeLength, Message: v.format(value)}
}

type customValidator struct {
	field  string
	check  Check
	format Formatter
}

// Custom runs check against the field value (nil when missing).
func Custom(field string, check Check, format Formatter) Validator {
	return &customValidator{field: field, check: check, format: format}
}

func (v *customValidator) Field() string { return v.field }

func (v *customValidator) Validate(ctx context.Context, body Body) *Failure {
	value, _ := body.Value(v.field)
	if err := v.check(ctx, value); err != nil {
		return &Failure{Field: v.field, Code: CodeCustom, Message: v.format(value), Err: err}
	}
	return nil
}

// Errors is the ordered set of failures from a Run, one per field.
type Errors []Failure

// HasErrors reports whether any validator failed.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Mapped returns the failures keyed by field name.
func (e Errors) Mapped() map[string]string {
	out := make(map[string]string, len(e))
	for _, f := range e {
		out[f.Field] = f.Message
	}
	return out
}

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, f := range e {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Run executes all validators concurrently and merges their failures.
// When a field has several failing validators the first declared wins.
// The returned error is non-nil only when ctx ended before validation
// completed.
func Run(ctx context.Context, body Body, validators ...Validator) (Errors, error) {
	results := make([]*Failure, len(validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range validators {
		i, v := i, v
		g.Go(func() error {
			results[i] = v.Validate(gctx, body)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var errs Errors
	seen := make(map[string]struct{}, len(results))
	for _, f := range results {
		if f == nil {
			continue
		}
		if _, dup := seen[f.Field]; dup {
			continue
		}
		seen[f.Field] = struct{}{}
		errs = append(errs, *f)
	}
	return errs, nil
}
