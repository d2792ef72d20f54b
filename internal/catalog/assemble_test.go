package catalog

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

func entry(lawID, currentFile string) lawcat.CatalogEntry {
	return lawcat.CatalogEntry{
		LawID:              lawID,
		CurrentFile:        currentFile,
		RevisionHistory:    []lawcat.RevisionRef{{RevisionKey: "2020-01-01", Path: currentFile}},
		ReconciliationFlag: lawcat.FlagNoIndex,
	}
}

func discovered(relPaths ...string) []lawcat.LawFileRef {
	refs := make([]lawcat.LawFileRef, len(relPaths))
	for i, p := range relPaths {
		refs[i] = lawcat.LawFileRef{Path: "/w/" + p, RelPath: p}
	}
	return refs
}

func TestAssemble_SortsByLawIDBytes(t *testing.T) {
	entries := []lawcat.CatalogEntry{
		entry("b", "b.xml"),
		entry("B", "B.xml"),
		entry("a", "a.xml"),
		entry("322AC0000000049", "x.xml"),
	}

	out, err := Assemble(entries, discovered("a.xml", "b.xml", "B.xml", "x.xml"))
	require.NoError(t, err)

	ids := make([]string, len(out))
	for i, e := range out {
		ids[i] = e.LawID
	}
	assert.Equal(t, []string{"322AC0000000049", "B", "a", "b"}, ids)
	assert.Equal(t, "b", entries[0].LawID, "input must not be reordered")
}

func TestAssemble_Empty(t *testing.T) {
	out, err := Assemble(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAssemble_DuplicateLawID(t *testing.T) {
	_, err := Assemble(
		[]lawcat.CatalogEntry{entry("A", "a1.xml"), entry("A", "a2.xml")},
		discovered("a1.xml", "a2.xml"),
	)
	require.Error(t, err)

	var invErr *lawcat.AssemblerInvariantError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, "A", invErr.LawID)
	assert.Equal(t, lawcat.ExitInvariantError, lawcat.ExitCodeForError(err))
}

func TestAssemble_UndiscoveredCurrentFile(t *testing.T) {
	_, err := Assemble([]lawcat.CatalogEntry{entry("A", "ghost.xml")}, discovered("a.xml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawcat.ErrAssemblerInvariant))
	assert.Contains(t, err.Error(), "ghost.xml")
}
