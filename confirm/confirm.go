// Package confirm implements the interactive confirmation cycle applied to a
// proposed translation before it is committed.
//
// A candidate can be accepted, replaced by the original text, capitalised,
// edited, or the whole run can be aborted. Capitalising and editing produce a
// new candidate that has to be confirmed again. The dialogue itself is behind
// the Prompter interface so the cycle can be driven by a console or by a
// scripted sequence of answers in tests.
package confirm

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Action is the user's answer to a proposed candidate.
type Action int

const (
	ActionAccept Action = iota
	ActionKeep
	ActionEdit
	ActionCapitalize
	ActionAbort
)

func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionKeep:
		return "keep"
	case ActionEdit:
		return "edit"
	case ActionCapitalize:
		return "capitalize"
	case ActionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Choice is one answer from a Prompter. Text is only used by ActionEdit.
type Choice struct {
	Action Action
	Text   string
}

// Prompter asks the translator for decisions.
type Prompter interface {
	// Propose shows candidate as the translation of original.
	Propose(original, candidate string) (Choice, error)
	// Enter asks for a translation of original typed from scratch.
	Enter(original string) (string, error)
	// Approve asks for a yes/no confirmation of value.
	Approve(original, value string) (bool, error)
}

// Kind is the terminal state of a confirmation cycle.
type Kind int

const (
	Accepted Kind = iota
	Kept
	Aborted
)

// Decision is the outcome of Confirm or ManualEntry.
type Decision struct {
	Kind  Kind
	Value string
	// Edited is set when the final value was typed by the translator.
	Edited bool
	// Capitalized is set when the final value went through Capitalize.
	Capitalized bool
}

// Confirm runs the accept/keep/edit/capitalize/abort cycle for candidate.
// Input ending (io.EOF) is treated as an abort.
func Confirm(p Prompter, original, candidate string) (Decision, error) {
	var d Decision
	for {
		choice, err := p.Propose(original, candidate)
		if errors.Is(err, io.EOF) {
			return Decision{Kind: Aborted}, nil
		}
		if err != nil {
			return Decision{}, err
		}

		switch choice.Action {
		case ActionAccept:
			d.Kind = Accepted
			d.Value = candidate
			return d, nil
		case ActionKeep:
			return Decision{Kind: Kept, Value: original}, nil
		case ActionCapitalize:
			candidate = Capitalize(candidate)
			d.Capitalized = true
		case ActionEdit:
			text := strings.TrimSpace(choice.Text)
			if text == "" {
				continue
			}
			candidate = text
			d.Edited = true
			d.Capitalized = false
		case ActionAbort:
			return Decision{Kind: Aborted}, nil
		}
	}
}

// ManualEntry asks for a translation until a non-empty value is approved.
func ManualEntry(p Prompter, original string) (Decision, error) {
	for {
		text, err := p.Enter(original)
		if errors.Is(err, io.EOF) {
			return Decision{Kind: Aborted}, nil
		}
		if err != nil {
			return Decision{}, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		ok, err := p.Approve(original, text)
		if errors.Is(err, io.EOF) {
			return Decision{Kind: Aborted}, nil
		}
		if err != nil {
			return Decision{}, err
		}
		if ok {
			return Decision{Kind: Accepted, Value: text, Edited: true}, nil
		}
	}
}

// Capitalize upper-cases the first letter of every word and leaves the
// remaining letters alone.
func Capitalize(s string) string {
	// A Caser keeps state between calls, so one is built per use.
	return cases.Title(language.Und, cases.NoLower).String(s)
}
