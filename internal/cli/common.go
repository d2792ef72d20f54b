package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vvka-141/lawcat/internal/config"
	"github.com/vvka-141/lawcat/internal/logging"
	"github.com/vvka-141/lawcat/internal/pipeline"
	"github.com/vvka-141/lawcat/internal/tui"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// session is what every build-like command needs: resolved settings, a
// logger, and where to render results.
type session struct {
	settings *config.Settings
	base     *logging.ConsoleLogger
	mode     tui.Mode
	stdout   io.Writer
	stderr   io.Writer
}

func prepare(cmd *cobra.Command) (*session, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	settings, err := config.Resolve(config.Options{ConfigPath: configPath, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	settings.Build.Verbose = getVerboseFlag(cmd)

	mode := tui.ModePlain
	if !settings.LogJSON {
		mode = tui.DetectMode()
	}

	s := &session{
		settings: settings,
		base:     logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), settings.Build.Verbose, settings.LogJSON),
		mode:     mode,
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
	}
	if settings.ConfigFile != "" {
		s.base.Verbose("using config file %s", settings.ConfigFile)
	}
	return s, nil
}

// build runs the pipeline once under a fresh run id and renders the outcome.
func (s *session) build(ctx context.Context) error {
	runID := uuid.NewString()
	logger := s.base.With("run_id", runID)

	deps, err := pipeline.NewDeps(s.settings.Build, logger, runID)
	if err != nil {
		return err
	}
	summary, err := pipeline.Run(ctx, s.settings.Build, deps)
	if err != nil {
		return err
	}

	tui.RenderSummary(s.stderr, summary, s.mode)
	printDigest(s.stdout, summary)
	return nil
}

func (s *session) close() {
	_ = s.base.Sync()
}

// printDigest writes the catalog digest in sha256sum format for pipeline consumption.
func printDigest(w io.Writer, summary lawcat.Summary) {
	fmt.Fprintf(w, "%s  %s\n", summary.Digest, summary.OutputPath)
}
