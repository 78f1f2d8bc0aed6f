package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Prompter reads answers from a terminal in raw mode, or line by line from a
// pipe when in is not a terminal.
type Prompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
	hint   *color.Color
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, hint: color.New(color.Faint)}
}

// Prompt shows label and placeholder and returns the trimmed answer. Ctrl-D or
// end of input returns "" with no error.
func (p *Prompter) Prompt(label, placeholder string) (string, error) {
	fmt.Fprintln(p.out, label)
	if placeholder != "" {
		p.hint.Fprintln(p.out, "  "+placeholder)
	}

	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return p.readPiped()
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{p.in, p.out}, "> ")
	line, err := t.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) readPiped() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
