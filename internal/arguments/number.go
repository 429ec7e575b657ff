package arguments

import (
	"math"
	"strconv"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

type bounds[T int | float64] struct {
	lo, hi *T
}

func (b bounds[T]) check(value T, charRead int, format func(T) string) error {
	if (b.lo == nil || value >= *b.lo) && (b.hi == nil || value <= *b.hi) {
		return nil
	}
	var lo, hi string
	if b.lo != nil {
		lo = format(*b.lo)
	}
	if b.hi != nil {
		hi = format(*b.hi)
	}
	return usage.NumberOutOfRange(charRead, format(value), lo, hi)
}

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// IntegerArg parses one token as an integer.
type IntegerArg struct {
	bounds[int]
}

// Integer returns an unbounded integer parser.
func Integer() *IntegerArg {
	return &IntegerArg{}
}

// AtMin rejects values below lo.
func (a *IntegerArg) AtMin(lo int) *IntegerArg {
	a.lo = &lo
	return a
}

// AtMax rejects values above hi.
func (a *IntegerArg) AtMax(hi int) *IntegerArg {
	a.hi = &hi
	return a
}

// InRange rejects values outside [lo, hi].
func (a *IntegerArg) InRange(lo, hi int) *IntegerArg {
	return a.AtMin(lo).AtMax(hi)
}

func (a *IntegerArg) Parse(text string) (dispatchers.ParseResult, error) {
	token := dispatchers.GetElement(text)
	value, err := strconv.Atoi(token)
	if err != nil {
		return dispatchers.ParseResult{}, usage.InvalidInteger(len(token))
	}
	if err := a.check(value, len(token), formatInt); err != nil {
		return dispatchers.ParseResult{}, err
	}
	return dispatchers.ParseResult{Value: value, CharRead: len(token)}, nil
}

func (a *IntegerArg) TypeName() string { return "Integer" }

// FloatArg parses one token as a float64.
type FloatArg struct {
	bounds[float64]
}

// Float returns an unbounded float parser.
func Float() *FloatArg {
	return &FloatArg{}
}

// AtMin rejects values below lo.
func (a *FloatArg) AtMin(lo float64) *FloatArg {
	a.lo = &lo
	return a
}

// AtMax rejects values above hi.
func (a *FloatArg) AtMax(hi float64) *FloatArg {
	a.hi = &hi
	return a
}

// InRange rejects values outside [lo, hi].
func (a *FloatArg) InRange(lo, hi float64) *FloatArg {
	return a.AtMin(lo).AtMax(hi)
}

func (a *FloatArg) Parse(text string) (dispatchers.ParseResult, error) {
	token := dispatchers.GetElement(text)
	value, ok := parseFloat(token)
	if !ok {
		return dispatchers.ParseResult{}, usage.InvalidNumber(len(token))
	}
	if err := a.check(value, len(token), formatFloat); err != nil {
		return dispatchers.ParseResult{}, err
	}
	return dispatchers.ParseResult{Value: value, CharRead: len(token)}, nil
}

func (a *FloatArg) TypeName() string { return "Float" }

// NumberArg parses one token as an int when possible, otherwise as a float64.
type NumberArg struct {
	bounds[float64]
}

// Number returns an unbounded number parser.
func Number() *NumberArg {
	return &NumberArg{}
}

// AtMin rejects values below lo.
func (a *NumberArg) AtMin(lo float64) *NumberArg {
	a.lo = &lo
	return a
}

// AtMax rejects values above hi.
func (a *NumberArg) AtMax(hi float64) *NumberArg {
	a.hi = &hi
	return a
}

// InRange rejects values outside [lo, hi].
func (a *NumberArg) InRange(lo, hi float64) *NumberArg {
	return a.AtMin(lo).AtMax(hi)
}

func (a *NumberArg) Parse(text string) (dispatchers.ParseResult, error) {
	token := dispatchers.GetElement(text)
	var value any
	var asFloat float64
	if i, err := strconv.Atoi(token); err == nil {
		value, asFloat = i, float64(i)
	} else if f, ok := parseFloat(token); ok {
		value, asFloat = f, f
	} else {
		return dispatchers.ParseResult{}, usage.InvalidNumber(len(token))
	}
	if err := a.check(asFloat, len(token), formatFloat); err != nil {
		return dispatchers.ParseResult{}, err
	}
	return dispatchers.ParseResult{Value: value, CharRead: len(token)}, nil
}

func (a *NumberArg) TypeName() string { return "Number" }

// parseFloat accepts finite decimal numbers only; "NaN" and "Inf" are
// not numbers a user types.
func parseFloat(token string) (float64, bool) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
