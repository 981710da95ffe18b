package confirm

import "io"

// Script is a Prompter that replays prepared answers. Once a queue is
// exhausted the corresponding method returns io.EOF, which the cycle treats
// as an abort. Every call is recorded.
type Script struct {
	Choices   []Choice
	Entries   []string
	Approvals []bool

	Proposed []string // candidates shown through Propose
	Asked    []string // originals passed to Enter
}

// Calls returns the total number of interactions so far.
func (s *Script) Calls() int {
	return len(s.Proposed) + len(s.Asked)
}

func (s *Script) Propose(original, candidate string) (Choice, error) {
	s.Proposed = append(s.Proposed, candidate)
	if len(s.Choices) == 0 {
		return Choice{}, io.EOF
	}
	c := s.Choices[0]
	s.Choices = s.Choices[1:]
	return c, nil
}

func (s *Script) Enter(original string) (string, error) {
	s.Asked = append(s.Asked, original)
	if len(s.Entries) == 0 {
		return "", io.EOF
	}
	e := s.Entries[0]
	s.Entries = s.Entries[1:]
	return e, nil
}

func (s *Script) Approve(original, value string) (bool, error) {
	if len(s.Approvals) == 0 {
		return false, io.EOF
	}
	a := s.Approvals[0]
	s.Approvals = s.Approvals[1:]
	return a, nil
}
