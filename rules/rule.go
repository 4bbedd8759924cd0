package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule is a named boolean condition evaluated against a SpawnEnv each turn.
type Rule struct {
	Name         string      // human-readable identifier
	ConditionSrc string      // expr source (preserved for logging)
	program      *vm.Program // compiled bytecode
}

func compileRule(r *Rule) error {
	prog, err := expr.Compile(r.ConditionSrc, expr.Env(SpawnEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compile rule %q: %w", r.Name, err)
	}
	r.program = prog
	return nil
}

// Eval runs the compiled condition.
func (r *Rule) Eval(env SpawnEnv) (bool, error) {
	result, err := vm.Run(r.program, env)
	if err != nil {
		return false, fmt.Errorf("run rule %q: %w", r.Name, err)
	}
	match, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("rule %q returned %T, want bool", r.Name, result)
	}
	return match, nil
}
