package usage

// UnknownCommand is returned when the command ends at a node without a
// callback.
func UnknownCommand(parsed, failed string) *Error {
	return &Error{
		Kind:    KindUnknownCommand,
		Message: "Unknown command",
		Parsed:  parsed,
		Failed:  failed,
	}
}

// UnknownArgument is returned when text remains but no child accepts it.
func UnknownArgument(parsed, failed string) *Error {
	return &Error{
		Kind:    KindUnknownArgument,
		Message: "Unknown argument",
		Parsed:  parsed,
		Failed:  failed,
	}
}

// UnknownRootArgument is returned when the first token does not name a
// command.
func UnknownRootArgument(parsed, failed string) *Error {
	return &Error{
		Kind:    KindUnknownRootArgument,
		Message: "Unknown command",
		Parsed:  parsed,
		Failed:  failed,
	}
}
