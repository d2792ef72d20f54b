package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

const buildLong = `Build the law catalog once.

The work directory is scanned recursively for files named
{LawID}_{YYYYMMDD}_{AmendmentLawID}.xml. For every law the newest revision
becomes the canonical record; older revisions are kept as its history.

When --index is given, every record is reconciled against the published law
list and flagged matched, index-missing or field-mismatch. Without it every
record is flagged no-index.

The run summary goes to stderr. The catalog digest goes to stdout in
sha256sum format.

Settings can also come from LAWCAT_* environment variables, a .env file,
or lawcat.yaml / lawcat.toml. Flags win over all of them.

Examples:
  # Build a catalog
  lawcat build --work ./all_xml --output catalog.json

  # Reconcile against the Shift_JIS law list and keep a run report
  lawcat build -w ./all_xml -o catalog.json --index all_law_list.csv --report report.json

  # Reject documents that do not validate against the schema
  lawcat build -w ./all_xml -o catalog.json --schema XMLSchemaForJapaneseLaw_v3.xsd`

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the law catalog",
		Long:  buildLong,
		Args:  noArgs,
		RunE:  runBuild,
	}
	addBuildFlags(cmd)
	return cmd
}

// addBuildFlags registers the flags shared by build and watch. Their names
// match the config keys with underscores replaced by dashes.
func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("work", "w", "", "Directory holding the law XML files")
	f.StringP("output", "o", "", "Catalog file to write")
	f.String("index", "", "Published law list to reconcile against (all_law_list.csv)")
	f.String("index-encoding", lawcat.IndexEncodingAuto, "Index file encoding: auto, utf-8 or shift_jis")
	f.String("schema", "", "XSD every document must validate against")
	f.String("report", "", "Also write a JSON run report to this file")

	_ = cmd.MarkFlagDirname("work")
	_ = cmd.MarkFlagFilename("index", "csv")
	_ = cmd.MarkFlagFilename("schema", "xsd")
	_ = cmd.RegisterFlagCompletionFunc("index-encoding", completeIndexEncodings)
}

var indexEncodings = []string{lawcat.IndexEncodingAuto, lawcat.IndexEncodingUTF8, lawcat.IndexEncodingShiftJIS}

// completeIndexEncodings provides shell completion for --index-encoding.
func completeIndexEncodings(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, enc := range indexEncodings {
		if strings.HasPrefix(enc, strings.ToLower(toComplete)) {
			matches = append(matches, enc)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

func runBuild(cmd *cobra.Command, _ []string) error {
	s, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	return s.build(cmd.Context())
}
