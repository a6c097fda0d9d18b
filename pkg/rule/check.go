package rule

import (
	"fmt"
	"strings"

	"github.com/autobrr/rxrule/pkg/regex"
	"github.com/autobrr/rxrule/pkg/stringutils"
)

// Violation describes a value rejected by a Rule.
type Violation struct {
	Message    string
	Template   string
	Parameters map[string]string
	Code       string
}

// Result is the outcome of a check. A nil Violation means the value is valid.
type Result struct {
	Violation *Violation
}

func (r Result) Valid() bool {
	return r.Violation == nil
}

// Check validates value against r. Absent and empty values are always valid.
// Values without a string representation fail with a TypeMismatchError.
func Check(value any, r *Rule) (Result, error) {
	text, ok, err := stringValue(value)
	if err != nil {
		return Result{}, err
	}
	if !ok || text == "" {
		return Result{}, nil
	}

	original := text
	if r.normalizer != nil {
		text = r.normalizer(text)
	}

	if r.when != nil {
		applies, err := r.when.Eval(text)
		if err != nil {
			return Result{}, err
		}
		if !applies {
			return Result{}, nil
		}
	}

	pattern, err := r.Compile()
	if err != nil {
		return Result{}, fmt.Errorf("compile pattern: %q: %w", r.pattern, err)
	}

	matches, err := regex.Check(text, pattern)
	if err != nil {
		return Result{}, fmt.Errorf("match pattern: %q: %w", r.pattern, err)
	}

	if matches == r.match {
		return Result{}, nil
	}

	return Result{Violation: newViolation(r.message, original)}, nil
}

// Check validates value against r.
func (r *Rule) Check(value any) (Result, error) {
	return Check(value, r)
}

func newViolation(template string, value string) *Violation {
	quoted := stringutils.Quote(value)

	return &Violation{
		Message:    strings.ReplaceAll(template, ValuePlaceholder, quoted),
		Template:   template,
		Parameters: map[string]string{ValuePlaceholder: quoted},
		Code:       RegexFailedError,
	}
}
