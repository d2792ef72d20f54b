package index

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/vvka-141/lawcat/internal/logging"
	"github.com/vvka-141/lawcat/pkg/lawcat"
)

const egovList = "法令種別,法令番号,法令名,法令名読み,旧法令名,公布日,改正法令名,改正法令番号,改正法令公布日,施行日,施行日備考,法令ID,本文URL,未施行,所管課確認中\n" +
	"憲法,昭和二十一年憲法,日本国憲法,にほんこくけんぽう,,1946/11/03,,,,1947/05/03,,321CONSTITUTION,https://elaws.e-gov.go.jp/document?lawid=321CONSTITUTION,,\n" +
	"法律,昭和二十二年法律第四十九号,労働基準法,ろうどうきじゅんほう,,1947/04/07,,,,,,322AC0000000049,,,\n"

func TestParse_EGovHeaders(t *testing.T) {
	table, err := Parse([]byte(egovList), lawcat.IndexEncodingAuto, logging.NewNullLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"321CONSTITUTION", "322AC0000000049"}, table.LawIDs())

	entry, ok := table.Lookup("322AC0000000049")
	require.True(t, ok)
	assert.Equal(t, lawcat.IndexEntry{
		LawID:            "322AC0000000049",
		Title:            "労働基準法",
		Category:         "法律",
		LawNum:           "昭和二十二年法律第四十九号",
		PromulgationDate: "1947/04/07",
	}, entry)

	_, ok = table.Lookup("999AC0000000001")
	assert.False(t, ok)
}

func TestParse_EnglishHeadersAndOptionalColumns(t *testing.T) {
	content := "Title,Law_ID\n  Some Act  ,ABC\n"
	table, err := Parse([]byte(content), lawcat.IndexEncodingUTF8, logging.NewNullLogger())
	require.NoError(t, err)

	entry, ok := table.Lookup("ABC")
	require.True(t, ok)
	assert.Equal(t, "Some Act", entry.Title)
	assert.Empty(t, entry.Category)
}

func TestParse_BOMStripped(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("law_id,title\nA,t\n")...)

	for _, enc := range []string{lawcat.IndexEncodingAuto, lawcat.IndexEncodingUTF8} {
		table, err := Parse(content, enc, logging.NewNullLogger())
		require.NoError(t, err, enc)
		assert.Equal(t, 1, table.Len(), enc)
	}
}

func TestParse_ShiftJIS(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(egovList)
	require.NoError(t, err)

	for _, enc := range []string{lawcat.IndexEncodingAuto, lawcat.IndexEncodingShiftJIS} {
		table, err := Parse([]byte(encoded), enc, logging.NewNullLogger())
		require.NoError(t, err, enc)
		entry, ok := table.Lookup("321CONSTITUTION")
		require.True(t, ok, enc)
		assert.Equal(t, "日本国憲法", entry.Title, enc)
		assert.Equal(t, "憲法", entry.Category, enc)
	}
}

func TestParse_ShiftJISForcedAsUTF8Fails(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(egovList)
	require.NoError(t, err)

	_, err = Parse([]byte(encoded), lawcat.IndexEncodingUTF8, logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawcat.ErrInvalidConfig))
}

func TestParse_DuplicateRowsLastWins(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewConsoleLoggerTo(&logs, false, false)

	content := "law_id,title\nA,first\nB,other\nA,second\n"
	table, err := Parse([]byte(content), lawcat.IndexEncodingAuto, logger)
	require.NoError(t, err)

	entry, _ := table.Lookup("A")
	assert.Equal(t, "second", entry.Title)
	assert.Equal(t, 2, table.Len())
	assert.Contains(t, logs.String(), "index lists A twice (lines 2 and 4)")
}

func TestParse_SkipsRowsWithoutLawID(t *testing.T) {
	content := "law_id,title\n,orphan\nA,t\nshort\n"
	table, err := Parse([]byte(content), lawcat.IndexEncodingAuto, logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "short"}, table.LawIDs())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		encoding string
		wantMsg  string
	}{
		{"empty", "", lawcat.IndexEncodingAuto, "empty"},
		{"no law id column", "title,category\nx,y\n", lawcat.IndexEncodingAuto, "law_id"},
		{"no title column", "法令ID\nA\n", lawcat.IndexEncodingAuto, "title"},
		{"unknown encoding", "law_id,title\n", "latin1", "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), tt.encoding, logging.NewNullLogger())
			require.Error(t, err)
			assert.True(t, errors.Is(err, lawcat.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "all_law_list.csv")
	require.NoError(t, os.WriteFile(path, []byte(egovList), 0o644))

	table, err := LoadFile(path, lawcat.IndexEncodingAuto, logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"), lawcat.IndexEncodingAuto, logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, lawcat.ErrInvalidConfig))
	assert.Equal(t, lawcat.ExitConfigError, lawcat.ExitCodeForError(err))
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestTable_LawIDsIsCopy(t *testing.T) {
	table := NewTable([]lawcat.IndexEntry{{LawID: "A"}, {LawID: "B"}})
	ids := table.LawIDs()
	ids[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, table.LawIDs())
}
