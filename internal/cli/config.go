package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect lawcat configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings a build would use after merging defaults, the project
file, .env, LAWCAT_* environment variables and flags.

The output is a valid project file and can be saved as lawcat.yaml or
lawcat.toml.

Examples:
  lawcat config show
  LAWCAT_INDEX=all_law_list.csv lawcat config show --format toml > lawcat.toml`,
		Args: noArgs,
		RunE: runConfigShow,
	}
	addBuildFlags(show)
	show.Flags().String("format", "yaml", "Output format: yaml or toml")
	_ = show.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(show)
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "yaml" && format != "toml" {
		return errors.Mark(errors.Newf("unsupported format %q (use yaml or toml)", format), lawcat.ErrUsage)
	}

	s, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	out, err := s.settings.Effective().Marshal(format)
	if err != nil {
		return errors.Wrap(err, "render settings")
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

