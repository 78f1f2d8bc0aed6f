// Package workflow turns request files in a workspace's _lifeline folder into
// response files by way of a chat-completion call.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	lifeline "github.com/lifelinehq/lifeline"
	"github.com/lifelinehq/lifeline/watch"
)

const (
	progressMessage = "Processing LifeLine request..."
	successMessage  = "LifeLine response generated successfully!"
	errorPrefix     = "LifeLine Processing Error: "
)

// Completer produces the assistant reply for a completion request.
type Completer interface {
	Complete(ctx context.Context, p lifeline.Params) (string, error)
}

// Host surfaces results to the user.
type Host interface {
	Info(msg string)
	Error(msg string)
	// Progress shows a transient indicator and returns the function that dismisses it.
	Progress(msg string) (stop func())
	// Open shows a file that was just written.
	Open(path string) error
	// ShowDocument shows unsaved markdown content.
	ShowDocument(content string) error
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// Options tunes how request files are processed.
type Options struct {
	// SystemPrompt is used for requests that do not set their own.
	SystemPrompt string
	// Clipboard receives each response when non-nil.
	Clipboard Clipboard
	// OpenResponse opens each written response through the host.
	OpenResponse bool
	// SettleDelay is waited after a create event before the file is read.
	SettleDelay time.Duration
	// SeenTTL bounds how long a processed path is remembered. Zero uses DefaultSeenTTL.
	SeenTTL time.Duration
	// FrontMatter enables "+++" TOML overrides at the top of request files.
	// When false the whole file is the prompt.
	FrontMatter bool
}

// Workflow processes request files for one workspace root.
type Workflow struct {
	root      string
	dir       string
	completer Completer
	host      Host
	opts      Options
	seen      *tracker
	wg        sync.WaitGroup
}

// New creates a workflow for root. Call Init before Run and Close when done.
func New(root string, completer Completer, host Host, opts Options) *Workflow {
	return &Workflow{
		root:      root,
		dir:       lifeline.Dir(root),
		completer: completer,
		host:      host,
		opts:      opts,
		seen:      newTracker(opts.SeenTTL),
	}
}

// NewFromConfig creates a workflow with options resolved from cfg.
func NewFromConfig(root string, cfg *lifeline.Config, completer Completer, host Host, cb Clipboard) *Workflow {
	opts := Options{
		SystemPrompt: lifeline.LoadSystemPrompt(),
		OpenResponse: lifeline.OpenResponseEnabled(cfg),
		SettleDelay:  lifeline.SettleDelay(cfg),
		FrontMatter:  lifeline.FrontMatterEnabled(cfg),
	}
	if lifeline.CopyToClipboardEnabled(cfg) {
		opts.Clipboard = cb
	}
	return New(root, completer, host, opts)
}

// Dir returns the watched folder.
func (w *Workflow) Dir() string {
	return w.dir
}

// Init creates the watched folder if it does not exist.
func (w *Workflow) Init() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return &lifeline.FileIOError{Op: "mkdir", Path: w.dir, Err: err}
	}
	slog.Debug("created or verified folder", "dir", w.dir)
	return nil
}

// Close waits for in-flight requests and releases the seen-path tracker.
func (w *Workflow) Close() {
	w.wg.Wait()
	w.seen.close()
}

// Run consumes events until ctx is done or the channel is closed, then waits
// for in-flight requests. Failures of individual requests never stop Run.
func (w *Workflow) Run(ctx context.Context, events <-chan watch.Event) {
	defer w.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			w.Handle(ctx, ev)
		}
	}
}

// Handle dispatches a single event. Created request files are processed on their
// own goroutine; everything else is only logged.
func (w *Workflow) Handle(ctx context.Context, ev watch.Event) {
	switch ev.Kind {
	case watch.Created:
		if lifeline.IsResponseFile(ev.Path) {
			slog.Debug("skipping response file", "path", ev.Path)
			return
		}
		if !lifeline.IsRequestFile(ev.Path) {
			slog.Debug("skipping file without request prefix", "path", ev.Path)
			return
		}
		if !w.seen.claim(ev.Path) {
			slog.Debug("skipping already seen request", "path", ev.Path)
			return
		}
		slog.Info("new request file detected", "path", ev.Path)
		w.wg.Add(1)
		go w.handleCreated(ctx, ev.Path)
	case watch.Changed:
		slog.Info("file changed", "path", ev.Path)
	case watch.Deleted:
		slog.Info("file deleted", "path", ev.Path)
	}
}

func (w *Workflow) handleCreated(ctx context.Context, path string) {
	defer w.wg.Done()

	if w.opts.SettleDelay > 0 {
		t := time.NewTimer(w.opts.SettleDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return
		}
	}

	_, err := w.Process(ctx, path)
	w.seen.done(path)
	if err != nil {
		slog.Error("processing failed", "path", path, "error", err)
		w.host.Error(errorPrefix + err.Error())
		return
	}
	w.host.Info(successMessage)
}

// Process reads the request file at path, asks the completer for a reply and
// writes it to the sibling response file, whose path is returned.
func (w *Workflow) Process(ctx context.Context, path string) (string, error) {
	respPath := lifeline.ResponsePath(path)
	if respPath == "" {
		return "", fmt.Errorf("%s is not a request file", path)
	}
	log := slog.With("request_id", uuid.NewString(), "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &lifeline.FileIOError{Op: "read", Path: path, Err: err}
	}

	params := w.requestParams(log, string(data))
	if params.SystemPrompt == "" {
		params.SystemPrompt = w.opts.SystemPrompt
	}

	stop := w.host.Progress(progressMessage)
	defer stop()

	start := time.Now()
	result, err := w.completer.Complete(ctx, params)
	if err != nil {
		return "", err
	}
	log.Debug("completion received", "bytes", len(result), "elapsed", time.Since(start))

	if err := os.WriteFile(respPath, []byte(result), 0o644); err != nil {
		return "", &lifeline.FileIOError{Op: "write", Path: respPath, Err: err}
	}
	log.Info("response written", "response", respPath)

	if w.opts.Clipboard != nil {
		if err := w.opts.Clipboard.WriteAll(result); err != nil {
			log.Warn("failed to copy response to clipboard", "error", err)
		}
	}
	if w.opts.OpenResponse {
		if err := w.host.Open(respPath); err != nil {
			log.Warn("failed to open response", "error", err)
		}
	}

	return respPath, nil
}

// requestParams returns the parameters for a request file's text. Front matter
// that fails to parse is kept as part of the prompt.
func (w *Workflow) requestParams(log *slog.Logger, text string) lifeline.Params {
	if !w.opts.FrontMatter {
		return lifeline.Params{Prompt: text}
	}
	params, err := ParseRequest(text)
	if err != nil {
		log.Warn("using full text as prompt", "error", err)
		return lifeline.Params{Prompt: text}
	}
	return params
}
