// Package console implements the UserIO port on a real terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	suggestionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 1)
)

type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	eof      bool
	exit     func(code int)
	renderer *glamour.TermRenderer
}

// New wires a console over the given reader/writer (stdin/stdout in
// production, buffers in tests). The markdown renderer is optional:
// when it cannot be built, responses are printed raw.
func New(in io.Reader, out io.Writer) *Console {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		exit:     os.Exit,
		renderer: renderer,
	}
}

func (c *Console) readLine() string {
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// exitOnEOF stops the process when the input stream is closed: the
// workflow cannot make progress without a user, and every prompt
// would otherwise spin on empty reads.
func (c *Console) exitOnEOF() {
	if !c.eof {
		return
	}
	fmt.Fprintln(c.out, warnStyle.Render("input closed, aborting"))
	c.exit(1)
}

// Confirm asks once; only "y"/"Y" counts as yes.
func (c *Console) Confirm(question string) bool {
	fmt.Fprint(c.out, questionStyle.Render(question)+" ")
	answer := c.readLine()
	c.exitOnEOF()
	return strings.EqualFold(answer, "y")
}

// Decide insists on a yes/no answer, re-prompting on anything else.
func (c *Console) Decide(question string) bool {
	for {
		fmt.Fprint(c.out, questionStyle.Render(question)+" ")
		answer := strings.ToLower(c.readLine())
		c.exitOnEOF()
		switch answer {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintln(c.out, warnStyle.Render("Invalid input. Please enter 'Y' or 'n'."))
		}
	}
}

func (c *Console) ReadText(question string) string {
	fmt.Fprint(c.out, questionStyle.Render(question)+" ")
	answer := c.readLine()
	c.exitOnEOF()
	return answer
}

func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// ShowResponse renders the assistant's free-form markdown answer.
func (c *Console) ShowResponse(title, markdown string) {
	fmt.Fprintln(c.out, titleStyle.Render("--- "+title+" ---"))

	if c.renderer != nil {
		if rendered, err := c.renderer.Render(markdown); err == nil {
			fmt.Fprintln(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, markdown)
}

// ShowSuggestion prints an extracted model verbatim, boxed so it is
// easy to copy out.
func (c *Console) ShowSuggestion(title, text string) {
	fmt.Fprintln(c.out, titleStyle.Render(title))
	fmt.Fprintln(c.out, suggestionStyle.Render(text))
}
