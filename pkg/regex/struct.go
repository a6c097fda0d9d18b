package regex

import "time"

// Engine selects the matching engine a Pattern is compiled for.
type Engine string

const (
	// EnginePCRE compiles with regexp2 (Perl/.NET syntax, lookarounds, backreferences).
	EnginePCRE Engine = "pcre"
	// EngineRE2 compiles with coregex (RE2 syntax, linear time).
	EngineRE2 Engine = "re2"
)

type Expressions struct {
	Patterns []*Pattern
}

type Pattern struct {
	Source Source
	Engine Engine

	matcher matcher
}

// Source is a delimiter-wrapped expression split into its parts.
type Source struct {
	Raw   string
	Open  byte
	Close byte
	Body  string
	Flags string
}

type matcher interface {
	MatchString(text string) (bool, error)
}

type options struct {
	engine  Engine
	timeout time.Duration
}

type Option func(*options)

func WithEngine(engine Engine) Option {
	return func(o *options) {
		if engine != "" {
			o.engine = engine
		}
	}
}

// WithMatchTimeout bounds a single match attempt. Only the pcre engine honours it.
func WithMatchTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}
