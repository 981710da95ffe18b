package confirm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello World", Capitalize("hello world"))
	assert.Equal(t, "VAT Amount", Capitalize("VAT amount"))
	assert.Equal(t, "Über Uns", Capitalize("über uns"))
	assert.Equal(t, "", Capitalize(""))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		choices  []Choice
		want     Decision
		proposed []string
	}{
		{
			name:     "accept",
			choices:  []Choice{{Action: ActionAccept}},
			want:     Decision{Kind: Accepted, Value: "Facture"},
			proposed: []string{"Facture"},
		},
		{
			name:     "keep original",
			choices:  []Choice{{Action: ActionKeep}},
			want:     Decision{Kind: Kept, Value: "Invoice"},
			proposed: []string{"Facture"},
		},
		{
			name:     "edit then accept",
			choices:  []Choice{{Action: ActionEdit, Text: " Rechnung "}, {Action: ActionAccept}},
			want:     Decision{Kind: Accepted, Value: "Rechnung", Edited: true},
			proposed: []string{"Facture", "Rechnung"},
		},
		{
			name:     "empty edit is ignored",
			choices:  []Choice{{Action: ActionEdit, Text: "  "}, {Action: ActionAccept}},
			want:     Decision{Kind: Accepted, Value: "Facture"},
			proposed: []string{"Facture", "Facture"},
		},
		{
			name:     "capitalize requires fresh confirmation",
			choices:  []Choice{{Action: ActionCapitalize}, {Action: ActionAccept}},
			want:     Decision{Kind: Accepted, Value: "Facture Client", Capitalized: true},
			proposed: []string{"facture client", "Facture Client"},
		},
		{
			name:     "capitalize then keep",
			choices:  []Choice{{Action: ActionCapitalize}, {Action: ActionKeep}},
			want:     Decision{Kind: Kept, Value: "Invoice"},
			proposed: []string{"facture client", "Facture Client"},
		},
		{
			name:     "abort",
			choices:  []Choice{{Action: ActionAbort}},
			want:     Decision{Kind: Aborted},
			proposed: []string{"Facture"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidate := tc.proposed[0]
			s := &Script{Choices: tc.choices}
			got, err := Confirm(s, "Invoice", candidate)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.proposed, s.Proposed)
		})
	}
}

func TestConfirm_CapitalizeIsNeverAutoAccepted(t *testing.T) {
	s := &Script{Choices: []Choice{{Action: ActionCapitalize}}}
	got, err := Confirm(s, "customer card", "kundenkarte")
	require.NoError(t, err)
	assert.Equal(t, Aborted, got.Kind, "running out of answers after capitalize must not accept")
	assert.Equal(t, []string{"kundenkarte", "Kundenkarte"}, s.Proposed)
}

func TestManualEntry(t *testing.T) {
	s := &Script{
		Entries:   []string{"", "Kundee", "Kunde"},
		Approvals: []bool{false, true},
	}
	got, err := ManualEntry(s, "Customer")
	require.NoError(t, err)
	assert.Equal(t, Decision{Kind: Accepted, Value: "Kunde", Edited: true}, got)
	assert.Len(t, s.Asked, 3)
}

func TestManualEntry_EOFAborts(t *testing.T) {
	got, err := ManualEntry(&Script{}, "Customer")
	require.NoError(t, err)
	assert.Equal(t, Aborted, got.Kind)
}

type failingPrompter struct{ Script }

var errBroken = errors.New("terminal gone")

func (f *failingPrompter) Propose(string, string) (Choice, error) { return Choice{}, errBroken }

func TestConfirm_PropagatesPrompterErrors(t *testing.T) {
	_, err := Confirm(&failingPrompter{}, "Invoice", "Facture")
	assert.ErrorIs(t, err, errBroken)
}

func TestConsole_Propose(t *testing.T) {
	in := strings.NewReader("x\ne\nRechnung\n")
	var out bytes.Buffer
	c := NewConsole(in, &out, false)

	choice, err := c.Propose("Invoice", "Facture")
	require.NoError(t, err)
	assert.Equal(t, Choice{Action: ActionEdit, Text: "Rechnung"}, choice)
	assert.Contains(t, out.String(), "Invoice")
	assert.Contains(t, out.String(), "Facture")
}

func TestConsole_FullCycle(t *testing.T) {
	in := strings.NewReader("c\na\n")
	var out bytes.Buffer
	got, err := Confirm(NewConsole(in, &out, false), "customer", "kunde")
	require.NoError(t, err)
	assert.Equal(t, "Kunde", got.Value)
}

func TestConsole_ManualEntry(t *testing.T) {
	in := strings.NewReader("Kunde\nja\n")
	var out bytes.Buffer
	got, err := ManualEntry(NewConsole(in, &out, false), "Customer")
	require.NoError(t, err)
	assert.Equal(t, Decision{Kind: Accepted, Value: "Kunde", Edited: true}, got)
}

func TestConsole_EOFAborts(t *testing.T) {
	var out bytes.Buffer
	got, err := Confirm(NewConsole(strings.NewReader(""), &out, false), "Invoice", "Facture")
	require.NoError(t, err)
	assert.Equal(t, Aborted, got.Kind)
}
