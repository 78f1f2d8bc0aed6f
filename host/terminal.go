// Package host implements the user-facing side of lifeline for a terminal:
// notifications, a progress spinner, showing responses, clipboard access and
// interactive prompts.
package host

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/shell"
)

const (
	defaultWidth  = 80
	spinnerPeriod = 100 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Terminal writes notifications to a terminal or plain writer.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	tty    bool
	width  int
	editor []string

	// spinner state, guarded by mu
	spinning int
	spinMsg  string
	spinDone chan struct{}

	info *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewTerminal creates a host writing to f. editor is an optional shell-style
// command line (for example `code --reuse-window`) used to open response files;
// when empty, responses are rendered inline.
func NewTerminal(f *os.File, editor string) (*Terminal, error) {
	t := newTerminal(f)
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		t.tty = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			t.width = w
		}
	}
	if err := t.SetEditor(editor); err != nil {
		return nil, err
	}
	return t, nil
}

// NewWriter creates a host writing plain text to w, without colour or spinner.
func NewWriter(w io.Writer) *Terminal {
	t := newTerminal(w)
	t.info.DisableColor()
	t.fail.DisableColor()
	t.dim.DisableColor()
	return t
}

func newTerminal(w io.Writer) *Terminal {
	return &Terminal{
		out:   w,
		width: defaultWidth,
		info:  color.New(color.FgGreen),
		fail:  color.New(color.FgRed, color.Bold),
		dim:   color.New(color.Faint),
	}
}

// SetEditor parses an editor command line with shell quoting rules.
func (t *Terminal) SetEditor(editor string) error {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		t.editor = nil
		return nil
	}
	fields, err := shell.Fields(editor, os.Getenv)
	if err != nil {
		return fmt.Errorf("parse editor command %q: %w", editor, err)
	}
	t.editor = fields
	return nil
}

// Info prints a success notification.
func (t *Terminal) Info(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearSpinnerLine()
	t.info.Fprintln(t.out, "✓ "+msg)
}

// Error prints a failure notification.
func (t *Terminal) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearSpinnerLine()
	t.fail.Fprintln(t.out, "✗ "+msg)
}

// clearSpinnerLine erases a spinner frame so a notification starts on a clean
// line. The spinner redraws on its next tick. Callers hold mu.
func (t *Terminal) clearSpinnerLine() {
	if t.spinning > 0 {
		fmt.Fprint(t.out, "\r\033[K")
	}
}

// Progress shows msg with a spinner on a terminal, or a single line otherwise.
// Concurrent calls share one spinner showing the latest message; it stops when
// every caller has stopped. The returned stop function is safe to call more
// than once.
func (t *Terminal) Progress(msg string) func() {
	if !t.tty {
		t.mu.Lock()
		t.dim.Fprintln(t.out, "… "+msg)
		t.mu.Unlock()
		return func() {}
	}

	t.mu.Lock()
	t.spinMsg = msg
	t.spinning++
	if t.spinning == 1 {
		t.spinDone = make(chan struct{})
		go t.spin(t.spinDone)
	}
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.spinning--
			if t.spinning == 0 {
				close(t.spinDone)
				t.spinDone = nil
				fmt.Fprint(t.out, "\r\033[K")
			}
		})
	}
}

func (t *Terminal) spin(done <-chan struct{}) {
	ticker := time.NewTicker(spinnerPeriod)
	defer ticker.Stop()
	for i := 0; ; i++ {
		t.mu.Lock()
		select {
		case <-done:
			t.mu.Unlock()
			return
		default:
		}
		fmt.Fprintf(t.out, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], t.spinMsg)
		t.mu.Unlock()
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// Open opens path in the configured editor, or renders it inline when no
// editor is configured. The editor runs detached.
func (t *Terminal) Open(path string) error {
	if len(t.editor) == 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		t.mu.Lock()
		t.dim.Fprintln(t.out, "── "+path)
		t.mu.Unlock()
		return t.ShowDocument(string(data))
	}

	args := append(append([]string{}, t.editor[1:]...), path)
	cmd := exec.Command(t.editor[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start editor: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("editor exited", "error", err)
		}
	}()
	return nil
}

// ShowDocument writes markdown content, rendered when writing to a terminal.
func (t *Terminal) ShowDocument(content string) error {
	out := content
	if t.tty {
		out = t.render(content)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.out, out); err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		_, err := io.WriteString(t.out, "\n")
		return err
	}
	return nil
}

func (t *Terminal) render(content string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(t.width),
	)
	if err != nil {
		slog.Debug("markdown renderer unavailable", "error", err)
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}
