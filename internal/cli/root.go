package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

const rootLong = `lawcat scans a directory of e-Gov law XML files, resolves amendment
revisions to one record per law, optionally reconciles the result against
the published law list (all_law_list.csv), and writes one deterministic
JSON catalog.

The catalog is replaced atomically: a failed build never leaves a partial
file behind. Files that cannot be read or parsed are skipped and listed in
the run summary.

Exit Codes:
  0  - Success (also when some files were skipped)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration (missing index, bad schema, bad config file)
  11 - Work directory missing or unreadable
  12 - Catalog or report could not be written
  13 - Catalog invariant violated (internal error)`

// NewRootCmd builds the lawcat command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lawcat",
		Short:         "Deterministic catalog builder for e-Gov law XML",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	root.PersistentFlags().Bool("log-json", false, "Emit log lines as JSON objects")
	root.PersistentFlags().String("config", "", "Project file (default: ./lawcat.yaml or ./lawcat.toml)")
	_ = root.MarkPersistentFlagFilename("config", "yaml", "yml", "toml")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Mark(err, lawcat.ErrUsage)
	})

	root.AddCommand(newBuildCmd(), newWatchCmd(), newConfigCmd(), newVersionCmd())
	return root
}

// Execute runs lawcat with os.Args.
func Execute(ctx context.Context) error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return execute(ctx, NewRootCmd(), os.Args[1:], os.Stderr)
}

func execute(ctx context.Context, root *cobra.Command, args []string, stderr io.Writer) error {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if isUsageMessage(err) {
		err = errors.Mark(err, lawcat.ErrUsage)
	}
	reportError(stderr, err)
	return err
}

// Cobra reports unknown commands and missing required flags as plain errors.
func isUsageMessage(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "required flag") ||
		strings.HasPrefix(msg, "invalid argument")
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
	if errors.Is(err, lawcat.ErrUsage) {
		fmt.Fprintln(w, "Run 'lawcat --help' for usage.")
	}
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Mark(
			errors.Newf("%s takes no arguments, received %q\n\nUsage: %s", cmd.CommandPath(), args, cmd.UseLine()),
			lawcat.ErrUsage,
		)
	}
	return nil
}
