package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/autobrr/rxrule/pkg/expression"
	"github.com/autobrr/rxrule/pkg/regex"
	"github.com/autobrr/rxrule/pkg/rule"
)

// RuleConfiguration is the configured form of a rule. A rule given as a plain string
// is its Pattern.
type RuleConfiguration struct {
	Pattern string
	// HTMLPattern is nil or true to derive the pattern, false (or "false") to disable it,
	// any other string to use verbatim.
	HTMLPattern  interface{}   `yaml:"html_pattern" koanf:"html_pattern"`
	Match        *bool         `yaml:"match" koanf:"match"`
	Message      string        `yaml:"message" koanf:"message"`
	Engine       string        `yaml:"engine" koanf:"engine"`
	Normalizer   string        `yaml:"normalizer" koanf:"normalizer"`
	When         string        `yaml:"when" koanf:"when"`
	MatchTimeout time.Duration `yaml:"match_timeout" koanf:"match_timeout"`
}

var normalizers = map[string]func(string) string{
	"trim":  strings.TrimSpace,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// GetRule builds the named rule from the loaded configuration.
func GetRule(name string) (*rule.Rule, error) {
	if Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	rc, ok := Config.Rules[name]
	if !ok {
		return nil, fmt.Errorf("no rule configuration found for: %q", name)
	}

	r, err := rc.Build()
	if err != nil {
		return nil, fmt.Errorf("build rule: %v: %w", name, err)
	}

	return r, nil
}

// Build converts the configuration into a rule.
func (rc RuleConfiguration) Build() (*rule.Rule, error) {
	if rc.Pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}

	var opts []rule.Option

	switch v := rc.HTMLPattern.(type) {
	case nil:
	case bool:
		if !v {
			opts = append(opts, rule.WithoutHTMLPattern())
		}
	case string:
		// environment overrides deliver booleans as text
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "false":
			opts = append(opts, rule.WithoutHTMLPattern())
		case "true":
		default:
			opts = append(opts, rule.WithHTMLPattern(v))
		}
	default:
		return nil, fmt.Errorf("html_pattern must be a string or false, got %T", rc.HTMLPattern)
	}

	if rc.Match != nil {
		opts = append(opts, rule.WithMatch(*rc.Match))
	}

	if rc.Message != "" {
		opts = append(opts, rule.WithMessage(rc.Message))
	}

	if rc.Engine != "" {
		engine := regex.Engine(strings.ToLower(rc.Engine))
		if engine != regex.EnginePCRE && engine != regex.EngineRE2 {
			return nil, fmt.Errorf("%w: %q", regex.ErrUnknownEngine, rc.Engine)
		}
		opts = append(opts, rule.WithEngine(engine))
	}

	if rc.Normalizer != "" {
		fn, ok := normalizers[strings.ToLower(rc.Normalizer)]
		if !ok {
			return nil, fmt.Errorf("unknown normalizer: %q", rc.Normalizer)
		}
		opts = append(opts, rule.WithNormalizer(fn))
	}

	if rc.When != "" {
		condition, err := expression.Compile(rc.When)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rule.WithWhen(condition))
	}

	if rc.MatchTimeout > 0 {
		opts = append(opts, rule.WithMatchTimeout(rc.MatchTimeout))
	}

	return rule.New(rc.Pattern, opts...), nil
}

// ruleShorthandHook decodes `name: "/pattern/"` as `name: {pattern: "/pattern/"}`.
func ruleShorthandHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(RuleConfiguration{}) {
		return data, nil
	}

	return map[string]interface{}{"pattern": data}, nil
}
