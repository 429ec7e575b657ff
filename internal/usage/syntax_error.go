package usage

import "fmt"

// Syntax errors are raised by node parsers. They carry the number of
// characters the parser looked at; the dispatcher fills in Parsed and
// Failed from it.

func syntaxError(kind ErrorKind, charRead int, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		CharRead: charRead,
	}
}

// LiteralNotMatch is returned when a token is none of a literal's spellings.
func LiteralNotMatch(charRead int) *Error {
	return syntaxError(KindLiteralNotMatch, charRead, "Invalid argument")
}

// InvalidNumber is returned when a token is not a number.
func InvalidNumber(charRead int) *Error {
	return syntaxError(KindInvalidNumber, charRead, "Invalid number")
}

// InvalidInteger is returned when a token is not an integer.
func InvalidInteger(charRead int) *Error {
	return syntaxError(KindInvalidInteger, charRead, "Invalid integer")
}

// InvalidBoolean is returned when a token is neither true nor false.
func InvalidBoolean(charRead int, value string) *Error {
	return syntaxError(KindInvalidBoolean, charRead, "Invalid boolean %q", value)
}

// InvalidEnumeration is returned when a token is not an allowed value.
func InvalidEnumeration(charRead int, value string) *Error {
	return syntaxError(KindInvalidEnumeration, charRead, "Invalid value %q", value)
}

// NumberOutOfRange is returned when a number falls outside its bounds.
// lo and hi are already formatted; an empty bound is open.
func NumberOutOfRange(charRead int, value, lo, hi string) *Error {
	return syntaxError(KindNumberOutOfRange, charRead, "Value %s out of range [%s, %s]", value, orInf(lo, "-inf"), orInf(hi, "inf"))
}

// TextLengthOutOfRange is returned when a text argument is too short or too long.
func TextLengthOutOfRange(charRead int, length int, lo, hi string) *Error {
	return syntaxError(KindTextLengthOutOfRange, charRead, "Text length %d out of range [%s, %s]", length, orInf(lo, "0"), orInf(hi, "inf"))
}

// EmptyText is returned when a non-empty text argument is empty.
func EmptyText(charRead int) *Error {
	return syntaxError(KindEmptyText, charRead, "Empty text")
}

// UnclosedQuotedString is returned when a quoted string has no closing quote.
func UnclosedQuotedString(charRead int) *Error {
	return syntaxError(KindUnclosedQuotedString, charRead, "Unclosed quoted string")
}

// IllegalEscapesUsage is returned when a backslash escapes anything other
// than a quote or a backslash.
func IllegalEscapesUsage(charRead int) *Error {
	return syntaxError(KindIllegalEscapesUsage, charRead, "Illegal usage of escapes")
}

func orInf(bound, open string) string {
	if bound == "" {
		return open
	}
	return bound
}
