package regex

import (
	"fmt"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
)

var pcreOptions = map[byte]regexp2.RegexOptions{
	'i': regexp2.IgnoreCase,
	'm': regexp2.Multiline,
	's': regexp2.Singleline,
	'x': regexp2.IgnorePatternWhitespace,
	'n': regexp2.ExplicitCapture,
}

// Compile parses a delimiter-wrapped expression and compiles it for the selected engine.
func Compile(raw string, opts ...Option) (*Pattern, error) {
	o := &options{engine: EnginePCRE}
	for _, opt := range opts {
		opt(o)
	}

	src, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	var m matcher
	switch o.engine {
	case EnginePCRE:
		m, err = compilePCRE(src, o)
	case EngineRE2:
		m, err = compileRE2(src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, o.engine)
	}
	if err != nil {
		return nil, err
	}

	return &Pattern{
		Source:  src,
		Engine:  o.engine,
		matcher: m,
	}, nil
}

func ValidatePatterns(patterns []string, opts ...Option) error {
	for _, pattern := range patterns {
		if _, err := Compile(pattern, opts...); err != nil {
			return fmt.Errorf("compile pattern: %q: %w", pattern, err)
		}
	}
	return nil
}

func (p *Pattern) String() string {
	return p.Source.Raw
}

/* Private */

type pcreMatcher struct {
	re *regexp2.Regexp
}

func (m pcreMatcher) MatchString(text string) (bool, error) {
	return m.re.MatchString(text)
}

func compilePCRE(src Source, o *options) (matcher, error) {
	opt := regexp2.None
	for i := 0; i < len(src.Flags); i++ {
		flag := src.Flags[i]
		if flag == 'u' {
			// input is always utf-8
			continue
		}

		v, ok := pcreOptions[flag]
		if !ok {
			return nil, fmt.Errorf("%w: %q for engine %s", ErrUnsupportedFlag, flag, EnginePCRE)
		}
		opt |= v
	}

	re, err := regexp2.Compile(src.Body, opt)
	if err != nil {
		return nil, err
	}

	if o.timeout > 0 {
		re.MatchTimeout = o.timeout
	}

	return pcreMatcher{re: re}, nil
}

type re2Matcher struct {
	re *coregex.Regex
}

func (m re2Matcher) MatchString(text string) (bool, error) {
	return m.re.MatchString(text), nil
}

func compileRE2(src Source) (matcher, error) {
	inline := ""
	for i := 0; i < len(src.Flags); i++ {
		switch flag := src.Flags[i]; flag {
		case 'i', 'm', 's':
			inline += string(flag)
		case 'u':
		default:
			return nil, fmt.Errorf("%w: %q for engine %s", ErrUnsupportedFlag, flag, EngineRE2)
		}
	}

	expression := src.Body
	if inline != "" {
		expression = "(?" + inline + ")" + expression
	}

	re, err := coregex.Compile(expression)
	if err != nil {
		return nil, err
	}

	return re2Matcher{re: re}, nil
}
