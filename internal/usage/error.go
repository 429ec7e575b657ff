package usage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind represents the type of command error.
//
// The set is closed. Kinds form a hierarchy declared in parentKinds: a
// handler registered for a general kind also receives every kind below it.
type ErrorKind int

const (
	KindCommandError ErrorKind = iota
	KindUnknownCommand
	KindUnknownArgument
	KindUnknownRootArgument
	KindRequirementNotMet
	KindSyntaxError
	KindLiteralNotMatch
	KindIllegalArgument
	KindNumberOutOfRange
	KindEmptyText
	KindTextLengthOutOfRange
	KindInvalidNumber
	KindInvalidInteger
	KindInvalidBoolean
	KindInvalidEnumeration
	KindUnclosedQuotedString
	KindIllegalEscapesUsage
	KindIllegalNodeOperation

	kindCount
)

var kindNames = [kindCount]string{
	KindCommandError:         "CommandError",
	KindUnknownCommand:       "UnknownCommand",
	KindUnknownArgument:      "UnknownArgument",
	KindUnknownRootArgument:  "UnknownRootArgument",
	KindRequirementNotMet:    "RequirementNotMet",
	KindSyntaxError:          "SyntaxError",
	KindLiteralNotMatch:      "LiteralNotMatch",
	KindIllegalArgument:      "IllegalArgument",
	KindNumberOutOfRange:     "NumberOutOfRange",
	KindEmptyText:            "EmptyText",
	KindTextLengthOutOfRange: "TextLengthOutOfRange",
	KindInvalidNumber:        "InvalidNumber",
	KindInvalidInteger:       "InvalidInteger",
	KindInvalidBoolean:       "InvalidBoolean",
	KindInvalidEnumeration:   "InvalidEnumeration",
	KindUnclosedQuotedString: "UnclosedQuotedString",
	KindIllegalEscapesUsage:  "IllegalEscapesUsage",
	KindIllegalNodeOperation: "IllegalNodeOperation",
}

// parentKinds maps each kind to the next more general kind it satisfies.
// KindCommandError and KindIllegalNodeOperation are roots; build errors are
// not part of the dispatch taxonomy.
var parentKinds = map[ErrorKind]ErrorKind{
	KindUnknownCommand:       KindCommandError,
	KindUnknownArgument:      KindCommandError,
	KindUnknownRootArgument:  KindUnknownArgument,
	KindRequirementNotMet:    KindCommandError,
	KindSyntaxError:          KindCommandError,
	KindLiteralNotMatch:      KindSyntaxError,
	KindIllegalArgument:      KindSyntaxError,
	KindNumberOutOfRange:     KindIllegalArgument,
	KindEmptyText:            KindIllegalArgument,
	KindTextLengthOutOfRange: KindIllegalArgument,
	KindInvalidNumber:        KindSyntaxError,
	KindInvalidInteger:       KindInvalidNumber,
	KindInvalidBoolean:       KindSyntaxError,
	KindInvalidEnumeration:   KindSyntaxError,
	KindUnclosedQuotedString: KindSyntaxError,
	KindIllegalEscapesUsage:  KindSyntaxError,
}

// Exit codes:
//
//	Exit 1: the command could not run
//	  - Unknown command / argument / root argument
//	  - Requirement not met
//
//	Exit 2: malformed input
//	  - Every syntax error kind
//
//	Exit 70: programming error in the command tree
//	  - Illegal node operation
var exitCodes = map[ErrorKind]int{
	KindCommandError:         1,
	KindUnknownCommand:       1,
	KindUnknownArgument:      1,
	KindUnknownRootArgument:  1,
	KindRequirementNotMet:    1,
	KindSyntaxError:          2,
	KindIllegalNodeOperation: 70,
}

// String returns the kind name, e.g. "UnknownArgument".
func (k ErrorKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k ErrorKind) Valid() bool {
	return k >= 0 && k < kindCount
}

// IsCommandKind reports whether k belongs to the dispatch taxonomy, i.e.
// whether handlers may be registered for it.
func (k ErrorKind) IsCommandKind() bool {
	return Is(k, KindCommandError)
}

// Is reports whether kind equals target or has target as one of its
// more general kinds.
func Is(kind, target ErrorKind) bool {
	for {
		if kind == target {
			return true
		}
		parent, ok := parentKinds[kind]
		if !ok {
			return false
		}
		kind = parent
	}
}

// Error represents a command error raised while building or dispatching a
// command tree.
type Error struct {
	Kind    ErrorKind
	Message string

	// Parsed is the part of the command consumed before the failure,
	// Failed the part up to and including the offending text.
	Parsed string
	Failed string

	// CharRead is the number of characters the failing parser consumed,
	// used to position Failed. Only meaningful for syntax errors.
	CharRead int

	// Reason is the optional human readable explanation attached to
	// RequirementNotMet.
	Reason string

	// Hints are alternatives offered to the user, e.g. similar commands.
	Hints []string

	ExitCode int // computed from Kind if zero

	handled bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = msg + ": " + e.Reason
	}
	if e.Failed == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s<--", msg, e.Failed)
}

// SetParsed records the consumed command prefix.
func (e *Error) SetParsed(parsed string) {
	e.Parsed = parsed
}

// SetFailed records the command prefix ending with the failing text.
func (e *Error) SetFailed(failed string) {
	e.Failed = failed
}

// SetHandled marks the error as already reported to the user. It does not
// stop propagation.
func (e *Error) SetHandled() {
	e.handled = true
}

// IsHandled reports whether a handler marked the error as reported.
func (e *Error) IsHandled() bool {
	return e.handled
}

// Is reports whether the error's kind is kind or a more specific one.
func (e *Error) Is(kind ErrorKind) bool {
	return Is(e.Kind, kind)
}

// WithHints attaches alternatives to offer the user.
func (e *Error) WithHints(hints ...string) *Error {
	e.Hints = append(e.Hints, hints...)
	return e
}

// Describe returns the message followed by a "Did you mean" line when
// hints are attached.
func (e *Error) Describe() string {
	if len(e.Hints) == 0 {
		return e.Error()
	}
	return e.Error() + "\n\nDid you mean: " + strings.Join(e.Hints, ", ") + "?"
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is
// derived from Kind, walking up to the closest kind with a declared code.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	kind := e.Kind
	for {
		if code, ok := exitCodes[kind]; ok {
			return code
		}
		parent, ok := parentKinds[kind]
		if !ok {
			return 1
		}
		kind = parent
	}
}

// As returns the *Error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
