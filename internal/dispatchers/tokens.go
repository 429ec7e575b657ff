package dispatchers

import "strings"

// Divider separates tokens in a command. Literal spellings may not contain it.
const Divider = " "

// GetElement returns the first token of text, i.e. everything up to the
// first divider.
func GetElement(text string) string {
	if i := strings.Index(text, Divider); i >= 0 {
		return text[:i]
	}
	return text
}

// RemoveDividerPrefix strips the dividers text starts with.
func RemoveDividerPrefix(text string) string {
	return strings.TrimLeft(text, Divider)
}
