package dialog

import (
	"fmt"

	"github.com/d5/tengo/v2"
)

// Condition is a compiled tengo boolean expression. Scripts read flags with
// flag("name"), which yields 0 for unset flags.
type Condition struct {
	src      string
	compiled *tengo.Compiled
	flags    map[string]int
}

func Compile(expr string) (*Condition, error) {
	c := &Condition{src: expr}

	script := tengo.NewScript([]byte("__result := (" + expr + ")"))
	if err := script.Add("flag", &tengo.UserFunction{Name: "flag", Value: c.flag}); err != nil {
		return nil, fmt.Errorf("condition %q: %w", expr, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("condition %q: %w", expr, err)
	}
	c.compiled = compiled
	return c, nil
}

func (c *Condition) flag(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 1 {
		return nil, tengo.ErrWrongNumArguments
	}
	name, ok := tengo.ToString(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "name", Expected: "string", Found: args[0].TypeName()}
	}
	return &tengo.Int{Value: int64(c.flags[name])}, nil
}

// Eval runs the expression against flags. Non-boolean results are judged by
// tengo truthiness.
func (c *Condition) Eval(flags map[string]int) (bool, error) {
	c.flags = flags
	defer func() { c.flags = nil }()

	if err := c.compiled.Run(); err != nil {
		return false, fmt.Errorf("condition %q: %w", c.src, err)
	}
	return c.compiled.Get("__result").Bool(), nil
}

func (c *Condition) String() string {
	return c.src
}
