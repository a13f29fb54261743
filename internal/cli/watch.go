package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/outfmt/internal/config"
	"github.com/hupe1980/outfmt/internal/logging"
	"github.com/hupe1980/outfmt/internal/script"
	"github.com/hupe1980/outfmt/internal/version"
	"github.com/hupe1980/outfmt/internal/watch"
	"github.com/hupe1980/outfmt/pkg/outfmt"
	"github.com/hupe1980/outfmt/pkg/outfmt/formats"
)

type watchOptions struct {
	title    string
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <script>",
		Short: "Re-render a script whenever it changes",
		Long: `Watch monitors an event script on disk and re-renders it whenever the
file changes. The rendered document goes to stdout, status lines to
stderr.

File changes are debounced to avoid rapid re-renders. The watcher runs
until interrupted (Ctrl-C).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringP("format", "f", config.DefaultFormat, "output format name")
	f.StringVar(&opts.title, "title", "", "override the document name declared in the script")
	f.DurationVar(&opts.debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, opts *watchOptions) error {
	logger := logging.FromContext(ctx)
	cfg := config.FromContext(ctx)

	reg := formats.DefaultRegistry()

	format, ok := reg.ByName(cfg.Format)
	if !ok {
		return &ExitError{Code: 2, Err: fmt.Errorf("unknown output format %q (available: %s)", cfg.Format, reg.JoinNames(", "))}
	}

	// The script is re-parsed on every run so edits to directives take
	// effect without restarting the watcher.
	runFn := func(_ context.Context) (*watch.RunResult, error) {
		scr, err := script.ParseFile(path)
		if err != nil {
			return nil, err
		}

		if err := scr.CheckVersion(version.GetInfo().Version); err != nil {
			return nil, err
		}

		if opts.title != "" {
			scr.Name = opts.title
		}

		var buf bytes.Buffer

		emitter := outfmt.New(&buf,
			outfmt.WithFormat(format),
			outfmt.WithCommandLine(os.Args),
			outfmt.WithLogger(logger),
		)

		if err := scr.Run(emitter); err != nil {
			return nil, err
		}

		// WriteTo drains the buffer, so take the size first.
		rendered := buf.Len()

		if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}

		return &watch.RunResult{
			Steps: scr.Len(),
			Bytes: rendered,
		}, nil
	}

	watchOpts := watch.Options{
		Path:     path,
		Debounce: opts.debounce,
		Logger:   logger,
		Out:      cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, runFn)
}
