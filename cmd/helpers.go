package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/autobrr/rxrule/pkg/notification"
	"github.com/autobrr/rxrule/pkg/rule"
)

// errViolations signals a run that completed but rejected at least one value.
var errViolations = errors.New("violations found")

func exitCode(err error) int {
	if errors.Is(err, errViolations) {
		return 2
	}
	return 1
}

type checkOutcome struct {
	Value     string
	Violation *rule.Violation
}

type checkSummary struct {
	Checked  int
	Outcomes []checkOutcome
	RunTime  time.Duration
}

func (s checkSummary) violations() []checkOutcome {
	var out []checkOutcome
	for _, o := range s.Outcomes {
		if o.Violation != nil {
			out = append(out, o)
		}
	}
	return out
}

func (s checkSummary) report(ruleName string, r *rule.Rule) notification.Report {
	report := notification.Report{
		Rule:    ruleName,
		Pattern: r.Pattern(),
		Checked: s.Checked,
		RunTime: s.RunTime,
	}

	for _, o := range s.violations() {
		report.Violations = append(report.Violations, notification.Field{
			Name:  o.Value,
			Value: o.Violation.Message,
		})
	}

	return report
}

// checkValues checks every value against r and stops at the first error.
func checkValues(r *rule.Rule, values []string) (checkSummary, error) {
	start := time.Now()
	summary := checkSummary{}

	for _, value := range values {
		result, err := r.Check(value)
		if err != nil {
			return summary, fmt.Errorf("check value: %q: %w", value, err)
		}

		summary.Checked++
		summary.Outcomes = append(summary.Outcomes, checkOutcome{
			Value:     value,
			Violation: result.Violation,
		})
	}

	summary.RunTime = time.Since(start)
	return summary, nil
}

// readValues returns the non-empty lines of r.
func readValues(r io.Reader) ([]string, error) {
	var values []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		values = append(values, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	return values, nil
}

func writeOutcomes(w io.Writer, outcomes []checkOutcome, onlyViolations bool) {
	for _, o := range outcomes {
		switch {
		case o.Violation != nil:
			fmt.Fprintf(w, "FAIL\t%s\t%s\n", o.Value, o.Violation.Message)
		case !onlyViolations:
			fmt.Fprintf(w, "OK\t%s\n", o.Value)
		}
	}
}

func htmlPatternOrDash(r *rule.Rule) string {
	if pattern, ok := r.HTMLPattern(); ok {
		return pattern
	}
	return "-"
}
