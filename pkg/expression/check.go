package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Eval runs the condition against value.
func (c *Condition) Eval(value string) (bool, error) {
	result, err := expr.Run(c.Program, newEvalContext(value))
	if err != nil {
		return false, fmt.Errorf("check condition: %q: %w", c.Text, err)
	}

	expResult, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("type assert condition result: %q: got %T", c.Text, result)
	}

	return expResult, nil
}
