package rule

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/scylladb/go-set/strset"

	"github.com/autobrr/rxrule/pkg/regex"
)

// flags that change nothing once the expression is evaluated by a browser
var htmlConvertibleFlags = strset.New("u")

// HTMLPattern returns a pattern for the HTML pattern attribute mirroring this rule.
// ok is false when the rule cannot be expressed as one.
func (r *Rule) HTMLPattern() (pattern string, ok bool) {
	if !r.match {
		return "", false
	}

	switch r.htmlMode {
	case htmlPatternDisabled:
		return "", false
	case htmlPatternExplicit:
		return r.htmlPattern, true
	}

	return DeriveHTMLPattern(r.pattern)
}

// DeriveHTMLPattern converts a delimiter-wrapped expression into the delimiter and flag free
// dialect of the HTML pattern attribute, which is always anchored to the whole value.
func DeriveHTMLPattern(raw string) (string, bool) {
	src, err := regex.Parse(raw)
	if err != nil {
		return "", false
	}

	for _, flag := range src.Flags {
		if !htmlConvertibleFlags.Has(string(flag)) {
			return "", false
		}
	}

	body := src.Unescaped()

	if strings.HasPrefix(body, "^") {
		body = body[1:]
	} else {
		body = ".*" + body
	}

	if last := len(body) - 1; last >= 0 && body[last] == '$' && !regex.IsEscaped(body, last) {
		body = body[:last]
	} else {
		body += ".*"
	}

	// browsers compile pattern attributes as javascript expressions
	if _, err := regexp2.Compile(body, regexp2.ECMAScript); err != nil {
		return "", false
	}

	return body, true
}
