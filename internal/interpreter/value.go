package interpreter

import (
	"fmt"
	"strconv"

	"github.com/Retsam/klox/internal/token"
)

// Callable is anything that can appear as the callee of a Call
// expression: a user function, a bound method, a class, or a built-in.
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []interface{}) interface{}
	String() string
}

// RuntimeError carries the token whose line should be reported
// alongside the message, per spec.md §6's two-line runtime diagnostic
// format. It is never catchable from source.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements nil == nil, nil != non-nil, value equality for
// scalars, and identity equality for callables/instances (Go's ==
// over interface values already does exactly this for pointers).
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func stringify(value interface{}) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return s
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
