package expression

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr"
)

type evalContext struct {
	Value  string
	Length int
}

func newEvalContext(value string) *evalContext {
	return &evalContext{
		Value:  value,
		Length: utf8.RuneCountInString(value),
	}
}

func (e *evalContext) HasPrefix(prefix string) bool {
	return strings.HasPrefix(e.Value, prefix)
}

func (e *evalContext) HasSuffix(suffix string) bool {
	return strings.HasSuffix(e.Value, suffix)
}

func (e *evalContext) Contains(substr string) bool {
	return strings.Contains(e.Value, substr)
}

func Compile(text string) (*Condition, error) {
	program, err := expr.Compile(text, expr.Env(&evalContext{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition: %q: %w", text, err)
	}

	return &Condition{
		Program: program,
		Text:    text,
	}, nil
}
