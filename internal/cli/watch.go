package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/lawcat/internal/checksum"
	"github.com/vvka-141/lawcat/internal/files/filesystem"
	"github.com/vvka-141/lawcat/internal/files/locator"
	"github.com/vvka-141/lawcat/internal/logging"
	"github.com/vvka-141/lawcat/internal/watch"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

const watchLong = `Build the law catalog, then rebuild it whenever law files change.

Changes are collected until the work directory has been quiet for the
debounce period. A rebuild is skipped when no law file was added, removed
or modified. A failed rebuild is logged and the previous catalog stays in
place; watching continues until interrupted.

Examples:
  lawcat watch --work ./all_xml --output catalog.json
  lawcat watch -w ./all_xml -o catalog.json --index all_law_list.csv --debounce 5s`

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the law catalog on changes",
		Long:  watchLong,
		Args:  noArgs,
		RunE:  runWatch,
	}
	addBuildFlags(cmd)
	cmd.Flags().Duration("debounce", lawcat.DefaultWatchDebounce, "Quiet period before a rebuild")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	cfg := s.settings.Build
	if err := cfg.Validate(); err != nil {
		return err
	}

	fsProvider := filesystem.NewOSFileSystem()
	fingerprinter := watch.NewFingerprinter(
		locator.NewLocatorWithFS(fsProvider, logging.NewNullLogger()),
		fsProvider,
		checksum.New(),
	)

	w := watch.New(cfg.WorkDir, s.settings.Debounce, s.base, fingerprinter.Fingerprint, s.build,
		watch.WithIgnoredPaths(cfg.OutputPath, cfg.ReportPath))
	return w.Run(cmd.Context())
}
