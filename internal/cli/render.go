package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/outfmt/internal/config"
	"github.com/hupe1980/outfmt/internal/logging"
	"github.com/hupe1980/outfmt/internal/script"
	"github.com/hupe1980/outfmt/internal/textdiff"
	"github.com/hupe1980/outfmt/internal/version"
	"github.com/hupe1980/outfmt/pkg/outfmt"
	"github.com/hupe1980/outfmt/pkg/outfmt/formats"
)

type renderOptions struct {
	title string
	check string
}

func newRenderCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [script]",
		Short: "Render an event script to the selected output format",
		Long: `Render reads an event script, replays it through the output engine,
and writes the rendered document to stdout.

The script comes from the file argument, or from stdin when the
argument is "-" or omitted. The output format is selected with
--format, falling back to the configured default.

With --check the rendered document is compared against a golden file
instead of printed. A mismatch prints a unified diff and exits 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringP("format", "f", config.DefaultFormat, "output format name")
	f.StringVar(&opts.title, "title", "", "override the document name declared in the script")
	f.StringVar(&opts.check, "check", "", "golden file to compare the rendered output against")

	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, args []string, opts *renderOptions) error {
	logger := logging.FromContext(ctx)
	cfg := config.FromContext(ctx)

	// Parse the script.
	var (
		scr *script.Script
		err error
	)

	if len(args) == 1 && args[0] != "-" {
		scr, err = script.ParseFile(args[0])
	} else {
		scr, err = script.Parse(cmd.InOrStdin())
	}

	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	if err := scr.CheckVersion(version.GetInfo().Version); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if opts.title != "" {
		scr.Name = opts.title
	}

	// Resolve the output format against the registry. The configured name
	// reflects flag > env > config file precedence.
	reg := formats.DefaultRegistry()

	format, ok := reg.ByName(cfg.Format)
	if !ok {
		return &ExitError{Code: 2, Err: fmt.Errorf("unknown output format %q (available: %s)", cfg.Format, reg.JoinNames(", "))}
	}

	logger.Debug("rendering script",
		slog.String("format", cfg.Format),
		slog.Int("steps", scr.Len()),
	)

	// Render into memory so a failed run never leaves a half-written
	// document on stdout.
	var buf bytes.Buffer

	emitter := outfmt.New(&buf,
		outfmt.WithFormat(format),
		outfmt.WithCommandLine(os.Args),
		outfmt.WithLogger(logger),
	)

	if err := scr.Run(emitter); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if opts.check != "" {
		return checkGolden(cmd, opts.check, buf.String(), cfg.NoColor)
	}

	if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("writing output: %w", err)}
	}

	return nil
}

// checkGolden compares the rendered document against the golden file.
// Matching output stays silent; a mismatch prints a unified diff.
func checkGolden(cmd *cobra.Command, goldenPath, rendered string, noColor bool) error {
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("reading golden file: %w", err)}
	}

	diffOpts := textdiff.DefaultOptions()
	diffOpts.OldLabel = goldenPath

	result, err := textdiff.Compute(string(golden), rendered, diffOpts)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("computing diff: %w", err)}
	}

	if !result.HasDifferences {
		return nil
	}

	textdiff.Write(cmd.OutOrStdout(), result, !noColor)

	return &ExitError{Code: 1, Err: fmt.Errorf("rendered output does not match %s", goldenPath)}
}
