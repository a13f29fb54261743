package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called for the initial render and again after each debounced
// change to the watched script.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the outcome of a single render so the watcher can print
// a status line.
type RunResult struct {
	// Steps is the number of script steps replayed.
	Steps int

	// Bytes is the size of the rendered output.
	Bytes int
}

// Options configures the watch behaviour.
type Options struct {
	// Path is the script file to watch.
	Path string

	// Debounce is the quiet period before triggering a re-render.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	target, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("resolving script path %q: %w", opts.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory rather than the file itself. Editors that
	// save by writing a temp file and renaming it over the target would
	// otherwise detach the watch on the first save.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching script directory: %w", err)
	}

	// Trap SIGINT / SIGTERM for graceful shutdown.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.Path, opts.Debounce)

	// Initial render.
	doRun(sigCtx, opts, runFn, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func() {
		doRun(sigCtx, opts, runFn, opts.Path)
	})
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if abs, absErr := filepath.Abs(event.Name); absErr != nil || abs != target {
				continue
			}

			if !relevantOp(event) {
				continue
			}

			debouncer.Trigger()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single render and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d steps, %d bytes)\n",
		now, trigger, result.Steps, result.Bytes)
}

// relevantOp reports whether the event describes a content change worth a
// re-render: write, create, remove or rename.
func relevantOp(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
