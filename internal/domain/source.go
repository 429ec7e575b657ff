package domain

import "fmt"

// Permission levels of a Source.
const (
	LevelGuest  = 0
	LevelMember = 1
	LevelAdmin  = 2
)

// Source identifies who runs a command line. It is the value consoles pass
// through dispatch; requirements read its Level.
type Source struct {
	User  string
	Level int
}

// LevelName returns "guest", "member", "admin", or "level N" above that.
func (s Source) LevelName() string {
	switch {
	case s.Level <= LevelGuest:
		return "guest"
	case s.Level == LevelMember:
		return "member"
	case s.Level == LevelAdmin:
		return "admin"
	}
	return fmt.Sprintf("level %d", s.Level)
}

// SourceOf extracts a Source from a dispatch source value. Anything else
// is treated as an anonymous guest.
func SourceOf(src any) Source {
	switch s := src.(type) {
	case Source:
		return s
	case *Source:
		if s != nil {
			return *s
		}
	}
	return Source{User: "anonymous"}
}
