package expression

import "github.com/expr-lang/expr/vm"

// Condition is a compiled boolean expression deciding whether a rule applies to a value.
type Condition struct {
	Program *vm.Program
	Text    string
}
