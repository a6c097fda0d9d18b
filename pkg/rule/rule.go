package rule

import (
	"sync"
	"time"

	"github.com/autobrr/rxrule/pkg/expression"
	"github.com/autobrr/rxrule/pkg/regex"
)

const (
	// RegexFailedError identifies violations raised by a Rule.
	RegexFailedError = "de1e3db3-5ed4-4941-aae4-59f3667cc3a3"

	DefaultMessage = "This value is not valid."

	// ValuePlaceholder is replaced by the quoted value when a message is rendered.
	ValuePlaceholder = "{{ value }}"
)

type htmlPatternMode int

const (
	htmlPatternAuto htmlPatternMode = iota
	htmlPatternExplicit
	htmlPatternDisabled
)

// Rule requires a value to match (or not match) a delimiter-wrapped regular expression.
// A Rule is immutable once built and safe for concurrent use.
type Rule struct {
	pattern     string
	htmlMode    htmlPatternMode
	htmlPattern string
	match       bool
	message     string
	engine      regex.Engine
	timeout     time.Duration
	normalizer  func(string) string
	when        *expression.Condition

	compileOnce sync.Once
	compiled    *regex.Pattern
	compileErr  error
}

type Option func(*Rule)

// New builds a Rule for pattern. The pattern is not compiled until the rule is first checked.
func New(pattern string, opts ...Option) *Rule {
	r := &Rule{
		pattern: pattern,
		match:   true,
		message: DefaultMessage,
		engine:  regex.EnginePCRE,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithHTMLPattern sets the HTML pattern returned verbatim instead of deriving one.
func WithHTMLPattern(pattern string) Option {
	return func(r *Rule) {
		r.htmlMode = htmlPatternExplicit
		r.htmlPattern = pattern
	}
}

// WithoutHTMLPattern disables the HTML pattern.
func WithoutHTMLPattern() Option {
	return func(r *Rule) {
		r.htmlMode = htmlPatternDisabled
		r.htmlPattern = ""
	}
}

// WithMatch sets whether the expression must match (true) or must not match (false).
func WithMatch(match bool) Option {
	return func(r *Rule) {
		r.match = match
	}
}

func WithMessage(message string) Option {
	return func(r *Rule) {
		r.message = message
	}
}

func WithEngine(engine regex.Engine) Option {
	return func(r *Rule) {
		if engine != "" {
			r.engine = engine
		}
	}
}

func WithMatchTimeout(timeout time.Duration) Option {
	return func(r *Rule) {
		r.timeout = timeout
	}
}

// WithNormalizer transforms the string form of a value before it is matched.
func WithNormalizer(fn func(string) string) Option {
	return func(r *Rule) {
		r.normalizer = fn
	}
}

// WithWhen restricts the rule to values for which the condition holds.
func WithWhen(condition *expression.Condition) Option {
	return func(r *Rule) {
		r.when = condition
	}
}

func (r *Rule) Pattern() string {
	return r.pattern
}

func (r *Rule) Match() bool {
	return r.match
}

func (r *Rule) Message() string {
	return r.message
}

func (r *Rule) Engine() regex.Engine {
	return r.engine
}

// Compile returns the compiled expression, compiling it on first use.
func (r *Rule) Compile() (*regex.Pattern, error) {
	r.compileOnce.Do(func() {
		r.compiled, r.compileErr = regex.Compile(r.pattern,
			regex.WithEngine(r.engine),
			regex.WithMatchTimeout(r.timeout),
		)
	})

	return r.compiled, r.compileErr
}
