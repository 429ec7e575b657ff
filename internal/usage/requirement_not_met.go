package usage

// RequirementNotMet is returned when a node's requirement rejects the source.
// reason may be empty.
func RequirementNotMet(parsed, failed, reason string) *Error {
	return &Error{
		Kind:    KindRequirementNotMet,
		Message: "Permission denied",
		Parsed:  parsed,
		Failed:  failed,
		Reason:  reason,
	}
}
