package actions

import (
	"errors"
	"strconv"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
)

// ErrDivisionByZero is returned by "calc div" for a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Say prints the bound message.
func (a *Actions) Say(_ any, ctx dispatchers.Context) error {
	_, _ = a.deps.Println(ctx.String("message"))
	return nil
}

// Whoami prints the user and level of the source.
func (a *Actions) Whoami(src any, _ dispatchers.Context) error {
	s := domain.SourceOf(src)
	_, _ = a.deps.Printf("%s (%s)\n", s.User, s.LevelName())
	return nil
}

// Operator combines the two operands of a calc command.
type Operator func(x, y float64) (float64, error)

var (
	Add Operator = func(x, y float64) (float64, error) { return x + y, nil }
	Sub Operator = func(x, y float64) (float64, error) { return x - y, nil }
	Mul Operator = func(x, y float64) (float64, error) { return x * y, nil }
	Div Operator = func(x, y float64) (float64, error) {
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		return x / y, nil
	}
)

// Calc returns a callback applying op to the "a" and "b" bindings.
func (a *Actions) Calc(op Operator) dispatchers.Callback {
	return func(_ any, ctx dispatchers.Context) error {
		result, err := op(ctx.Float("a"), ctx.Float("b"))
		if err != nil {
			return err
		}
		_, _ = a.deps.Println(strconv.FormatFloat(result, 'g', -1, 64))
		return nil
	}
}

// Version prints the program version.
func (a *Actions) Version(_ any, _ dispatchers.Context) error {
	_, _ = a.deps.Printf("cmdtree version %s\n", a.deps.Version())
	return nil
}
