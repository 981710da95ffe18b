package caption

import "fmt"

// MalformedLineError reports a line that does not carry the expected
// language marker.
type MalformedLineError struct {
	Line   string
	Marker string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed caption line %q: marker %q not found", e.Line, e.Marker)
}

// PatternNotFoundError reports that no line of a line-set matches a pattern.
// The export and the missing-translation report disagree when this happens.
type PatternNotFoundError struct {
	Pattern string
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("no line matches pattern %q", e.Pattern)
}

// DuplicatePatternError is returned in strict mode when a pattern matches
// more than one line.
type DuplicatePatternError struct {
	Pattern string
	Count   int
}

func (e *DuplicatePatternError) Error() string {
	return fmt.Sprintf("pattern %q matches %d lines", e.Pattern, e.Count)
}
