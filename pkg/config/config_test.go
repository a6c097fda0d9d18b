package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rxrule/pkg/regex"
)

const testConfig = `
rules:
  digits: "/^[0-9]+$/"
  slug:
    pattern: "#^[a-z0-9-]+$#"
    html_pattern: false
    message: "{{ value }} is not a slug"
    engine: re2
    normalizer: trim
    when: "Length > 0"
    match_timeout: 100ms
  letters:
    pattern: "/^[a-z]+$/i"
    html_pattern: "[a-zA-Z]+"
  no_letters:
    pattern: "/[a-z]+/"
    match: false
notifications:
  skip_valid: true
  max_fields: 20
  timeout: 30s
  discord:
    webhook_url: https://discord.test/webhook
    username: rxrule
`

func loadTestConfig(t *testing.T, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	K = koanf.New(Delimiter)
	t.Cleanup(func() {
		K = koanf.New(Delimiter)
		Config = nil
	})

	require.NoError(t, Init(path))
}

func TestInit(t *testing.T) {
	loadTestConfig(t, testConfig)

	assert.Equal(t, []string{"digits", "letters", "no_letters", "slug"}, RuleNames())

	assert.Equal(t, RuleConfiguration{Pattern: "/^[0-9]+$/"}, Config.Rules["digits"])

	slug := Config.Rules["slug"]
	assert.Equal(t, "#^[a-z0-9-]+$#", slug.Pattern)
	assert.Equal(t, false, slug.HTMLPattern)
	assert.Equal(t, "re2", slug.Engine)
	assert.Equal(t, 100*time.Millisecond, slug.MatchTimeout)

	assert.True(t, Config.Notifications.SkipValid)
	assert.Equal(t, 20, Config.Notifications.MaxFields)
	assert.Equal(t, 30*time.Second, Config.Notifications.Timeout)
	assert.Equal(t, "https://discord.test/webhook", Config.Notifications.Discord.WebhookURL)
}

func TestInit_EnvOverride(t *testing.T) {
	t.Setenv("RXRULE__NOTIFICATIONS__DISCORD__WEBHOOK_URL", "https://discord.test/other")

	loadTestConfig(t, testConfig)
	assert.Equal(t, "https://discord.test/other", Config.Notifications.Discord.WebhookURL)
}

func TestInit_MissingFile(t *testing.T) {
	K = koanf.New(Delimiter)
	t.Cleanup(func() { K = koanf.New(Delimiter) })

	err := Init(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetRule(t *testing.T) {
	loadTestConfig(t, testConfig)

	tests := []struct {
		name        string
		value       string
		valid       bool
		htmlPattern string
		htmlOK      bool
	}{
		{"digits", "090909", true, "[0-9]+", true},
		{"digits", "090foo", false, "[0-9]+", true},
		{"slug", "  my-slug  ", true, "", false},
		{"slug", "My Slug", false, "", false},
		{"letters", "ABC", true, "[a-zA-Z]+", true},
		{"no_letters", "123", true, "", false},
		{"no_letters", "12a", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.value, func(t *testing.T) {
			r, err := GetRule(tt.name)
			require.NoError(t, err)

			result, err := r.Check(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid())

			pattern, ok := r.HTMLPattern()
			assert.Equal(t, tt.htmlOK, ok)
			assert.Equal(t, tt.htmlPattern, pattern)
		})
	}

	r, err := GetRule("slug")
	require.NoError(t, err)
	assert.Equal(t, regex.EngineRE2, r.Engine())

	result, err := r.Check("My Slug")
	require.NoError(t, err)
	require.False(t, result.Valid())
	assert.Equal(t, `"My Slug" is not a slug`, result.Violation.Message)

	_, err = GetRule("missing")
	assert.Error(t, err)
}

func TestRuleConfiguration_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		rc   RuleConfiguration
	}{
		{"missing_pattern", RuleConfiguration{}},
		{"bad_html_pattern", RuleConfiguration{Pattern: "/a/", HTMLPattern: 42}},
		{"unknown_engine", RuleConfiguration{Pattern: "/a/", Engine: "posix"}},
		{"unknown_normalizer", RuleConfiguration{Pattern: "/a/", Normalizer: "reverse"}},
		{"bad_condition", RuleConfiguration{Pattern: "/a/", When: "Length +"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rc.Build()
			assert.Error(t, err)
		})
	}
}

func TestRuleConfiguration_HTMLPatternTrue(t *testing.T) {
	r, err := RuleConfiguration{Pattern: "/^[a-z]+$/", HTMLPattern: true}.Build()
	require.NoError(t, err)

	pattern, ok := r.HTMLPattern()
	assert.True(t, ok)
	assert.Equal(t, "[a-z]+", pattern)
}

func TestInit_EnvDisablesHTMLPattern(t *testing.T) {
	t.Setenv("RXRULE__RULES__LETTERS__HTML_PATTERN", "false")

	loadTestConfig(t, testConfig)
	assert.Equal(t, "false", Config.Rules["letters"].HTMLPattern)

	r, err := GetRule("letters")
	require.NoError(t, err)

	pattern, ok := r.HTMLPattern()
	assert.False(t, ok)
	assert.Empty(t, pattern)
}

func TestRuleConfiguration_HTMLPatternText(t *testing.T) {
	tests := []struct {
		name        string
		htmlPattern interface{}
		expected    string
		ok          bool
	}{
		{"false_text", "false", "", false},
		{"false_upper", "FALSE", "", false},
		{"true_text", "true", "[a-z]+", true},
		{"explicit", "[a-zA-Z]+", "[a-zA-Z]+", true},
		{"zero_is_a_pattern", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := RuleConfiguration{Pattern: "/^[a-z]+$/", HTMLPattern: tt.htmlPattern}.Build()
			require.NoError(t, err)

			pattern, ok := r.HTMLPattern()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, pattern)
		})
	}
}
