// Package arguments provides the argument parsers used by argument nodes.
//
// Every parser reads from the start of the remaining command text, which
// never begins with the divider, and reports failures as *usage.Error
// syntax errors carrying how many characters were looked at.
package arguments
