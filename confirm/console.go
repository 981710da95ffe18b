package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/minios-linux/captrans/i18n"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

// Console is a Prompter reading answers line by line from a terminal.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	color   bool
}

// NewConsole returns a Console reading from in and writing prompts to out.
// color enables ANSI highlighting.
func NewConsole(in io.Reader, out io.Writer, color bool) *Console {
	return &Console{scanner: bufio.NewScanner(in), out: out, color: color}
}

func (c *Console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + colorReset
}

// readLine returns the next input line, or io.EOF when input ended.
func (c *Console) readLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Console) showOriginal(original string) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  %-12s %s\n", i18n.T("Original:"), c.paint(colorBlue, original))
}

// Propose prints the candidate and reads a menu choice. Unknown answers
// repeat the menu.
func (c *Console) Propose(original, candidate string) (Choice, error) {
	c.showOriginal(original)
	fmt.Fprintf(c.out, "  %-12s %s\n", i18n.T("Proposal:"), c.paint(colorGreen, candidate))

	for {
		fmt.Fprintf(c.out, "  [a] %s  [k] %s  [e] %s  [c] %s  [q] %s: ",
			i18n.T("accept"), i18n.T("keep original"), i18n.T("edit"),
			i18n.T("capitalize"), i18n.T("abort"))

		answer, err := c.readLine()
		if err != nil {
			return Choice{}, err
		}
		switch strings.ToLower(answer) {
		case "a", "accept":
			return Choice{Action: ActionAccept}, nil
		case "k", "keep":
			return Choice{Action: ActionKeep}, nil
		case "c", "capitalize":
			return Choice{Action: ActionCapitalize}, nil
		case "q", "quit", "abort":
			return Choice{Action: ActionAbort}, nil
		case "e", "edit":
			fmt.Fprintf(c.out, "  %s ", i18n.T("New value:"))
			text, err := c.readLine()
			if err != nil {
				return Choice{}, err
			}
			return Choice{Action: ActionEdit, Text: text}, nil
		}
		fmt.Fprintln(c.out, c.paint(colorYellow, "  "+i18n.T("Please answer a, k, e, c or q.")))
	}
}

// Enter asks for a translation typed from scratch.
func (c *Console) Enter(original string) (string, error) {
	c.showOriginal(original)
	fmt.Fprintf(c.out, "  %-12s ", i18n.T("Translation:"))
	return c.readLine()
}

// Approve asks a yes/no question about value.
func (c *Console) Approve(original, value string) (bool, error) {
	fmt.Fprintf(c.out, "  %s [y/N]: ", fmt.Sprintf(i18n.T("Use %q?"), value))
	answer, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "j", "ja":
		return true, nil
	}
	return false, nil
}
