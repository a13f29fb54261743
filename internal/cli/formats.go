package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/outfmt/internal/config"
	"github.com/hupe1980/outfmt/pkg/outfmt/formats"
)

func newFormatsCommand() *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the registered output formats",
		Long: `List every output format the render command accepts, together with
its numeric id. The configured default format is marked.

With --separator the names are printed on a single line instead,
joined by the given separator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormats(cmd, separator)
		},
	}

	cmd.Flags().StringVar(&separator, "separator", "", "print names on one line joined by this separator")

	return cmd
}

func runFormats(cmd *cobra.Command, separator string) error {
	reg := formats.DefaultRegistry()

	if separator != "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), reg.JoinNames(separator))

		return err
	}

	cfg := config.FromContext(cmd.Context())

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tID\tDEFAULT")

	for _, name := range reg.Names() {
		f, ok := reg.ByName(name)
		if !ok {
			continue
		}

		marker := ""
		if name == cfg.Format {
			marker = "*"
		}

		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", name, f.ID(), marker)
	}

	return tw.Flush()
}
