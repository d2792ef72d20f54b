package lawxml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

const laborStandardsAct = `<?xml version="1.0" encoding="UTF-8"?>
<Law Era="Showa" Year="22" Num="049" LawType="Act" Lang="ja" PromulgateMonth="04" PromulgateDay="07">
  <LawNum>昭和二十二年法律第四十九号</LawNum>
  <LawBody>
    <LawTitle Kana="ろうどうきじゅんほう" Abbrev="労基法">労働基準法</LawTitle>
    <MainProvision>
      <Article Num="1"><ArticleTitle>第一条</ArticleTitle></Article>
    </MainProvision>
  </LawBody>
</Law>
`

func TestDecode_FullDocument(t *testing.T) {
	law, err := NewParser().Decode([]byte(laborStandardsAct), "322AC0000000049.xml")
	require.NoError(t, err)

	assert.Equal(t, Showa, law.Era)
	assert.Equal(t, 22, law.Year)
	assert.Equal(t, "049", law.Num)
	assert.Equal(t, LawTypeAct, law.LawType)
	assert.Equal(t, "ja", law.Lang)
	assert.Equal(t, 4, law.PromulgateMonth)
	assert.Equal(t, 7, law.PromulgateDay)
	assert.Equal(t, "昭和二十二年法律第四十九号", law.LawNum)
	assert.Equal(t, "労働基準法", law.Title)
	assert.Equal(t, "ろうどうきじゅんほう", law.TitleKana)
	assert.Equal(t, "法律", law.Category())
	assert.Equal(t, "1947-04-07", law.PromulgationDate().String())
}

func TestParse_ProjectsDocumentFields(t *testing.T) {
	fields, err := NewParser().Parse([]byte(laborStandardsAct), "a.xml")
	require.NoError(t, err)

	assert.Equal(t, "労働基準法", fields.Title)
	assert.Equal(t, "1947-04-07", fields.PromulgationDate)
	assert.Equal(t, "Act", fields.LawType)
	assert.Equal(t, "法律", fields.Category)
	assert.Equal(t, "昭和二十二年法律第四十九号", fields.LawNum)
}

func TestDecode_RubyReadingsExcluded(t *testing.T) {
	doc := `<Law Era="Heisei" Year="5" LawType="CabinetOrder">
  <LawNum>平成五年政令第百号</LawNum>
  <LawBody>
    <LawTitle><Ruby>漁<Rt>ぎよ</Rt></Ruby>港法施行令</LawTitle>
  </LawBody>
</Law>`

	law, err := NewParser().Decode([]byte(doc), "x.xml")
	require.NoError(t, err)
	assert.Equal(t, "漁港法施行令", law.Title)
	assert.Equal(t, "政令", law.Category())
}

func TestDecode_TitleWhitespaceCollapsed(t *testing.T) {
	doc := `<Law Era="Reiwa" Year="3" LawType="Rule"><LawBody><LawTitle>
      規則
      第一号
    </LawTitle></LawBody></Law>`

	law, err := NewParser().Decode([]byte(doc), "x.xml")
	require.NoError(t, err)
	assert.Equal(t, "規則 第一号", law.Title)
	assert.Empty(t, law.LawNum)
}

func TestDecode_NestedLawTitleIgnored(t *testing.T) {
	doc := `<Law Era="Reiwa" Year="1" LawType="Act">
  <LawBody>
    <LawTitle>本則の法律</LawTitle>
    <AppdxTable><LawBody><LawTitle>別の題名</LawTitle></LawBody></AppdxTable>
  </LawBody>
</Law>`

	law, err := NewParser().Decode([]byte(doc), "x.xml")
	require.NoError(t, err)
	assert.Equal(t, "本則の法律", law.Title)
}

func TestDecode_AlternateDateAttributes(t *testing.T) {
	doc := `<Law Era="Meiji" Year="29" LawType="Act" Month="4" Day="27"><LawBody><LawTitle>民法</LawTitle></LawBody></Law>`

	law, err := NewParser().Decode([]byte(doc), "x.xml")
	require.NoError(t, err)
	assert.Equal(t, "1896-04-27", law.PromulgationDate().String())
}

func TestDecode_PartialDates(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		want  string
	}{
		{"year only", ``, "1946"},
		{"year and month", `PromulgateMonth="11"`, "1946-11"},
		{"day without month is dropped", `PromulgateDay="3"`, "1946"},
		{"full date", `PromulgateMonth="11" PromulgateDay="3"`, "1946-11-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<Law Era="Showa" Year="21" LawType="Constitution" ` + tt.attrs +
				`><LawBody><LawTitle>日本国憲法</LawTitle></LawBody></Law>`
			law, err := NewParser().Decode([]byte(doc), "x.xml")
			require.NoError(t, err)
			assert.Equal(t, tt.want, law.PromulgationDate().String())
		})
	}
}

func TestDecode_ShiftJIS(t *testing.T) {
	doc := `<?xml version="1.0" encoding="Shift_JIS"?>
<Law Era="Showa" Year="22" LawType="Act"><LawNum>昭和二十二年法律第四十九号</LawNum><LawBody><LawTitle>労働基準法</LawTitle></LawBody></Law>`
	encoded, err := japanese.ShiftJIS.NewEncoder().String(doc)
	require.NoError(t, err)

	law, err := NewParser().Decode([]byte(encoded), "sjis.xml")
	require.NoError(t, err)
	assert.Equal(t, "労働基準法", law.Title)
	assert.Equal(t, "昭和二十二年法律第四十九号", law.LawNum)
}

func TestDecode_BOMStripped(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(laborStandardsAct)...)

	law, err := NewParser().Decode(content, "bom.xml")
	require.NoError(t, err)
	assert.Equal(t, "労働基準法", law.Title)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
		wantMsg   string
	}{
		{
			name:    "empty",
			content: ``,
			wantMsg: "no root element",
		},
		{
			name:    "wrong root",
			content: `<Statute Era="Showa" Year="1" LawType="Act"/>`,
			wantMsg: "root element must be <Law>",
		},
		{
			name:      "missing era",
			content:   `<Law Year="1" LawType="Act"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "Era",
		},
		{
			name:      "unknown era",
			content:   `<Law Era="Edo" Year="1" LawType="Act"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "Era",
			wantMsg:   "unknown era",
		},
		{
			name:      "non-numeric year",
			content:   `<Law Era="Showa" Year="twenty" LawType="Act"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "Year",
		},
		{
			name:      "zero year",
			content:   `<Law Era="Showa" Year="0" LawType="Act"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "Year",
		},
		{
			name:      "missing law type",
			content:   `<Law Era="Showa" Year="1"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "LawType",
		},
		{
			name:      "unknown law type",
			content:   `<Law Era="Showa" Year="1" LawType="Treaty"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "LawType",
		},
		{
			name:      "month out of range",
			content:   `<Law Era="Showa" Year="1" LawType="Act" PromulgateMonth="13"><LawBody><LawTitle>x</LawTitle></LawBody></Law>`,
			wantField: "PromulgateMonth",
		},
		{
			name:      "missing title",
			content:   `<Law Era="Showa" Year="1" LawType="Act"><LawNum>x</LawNum></Law>`,
			wantField: "LawTitle",
		},
		{
			name:      "title only ruby reading",
			content:   `<Law Era="Showa" Year="1" LawType="Act"><LawBody><LawTitle><Ruby><Rt>よみ</Rt></Ruby></LawTitle></LawBody></Law>`,
			wantField: "LawTitle",
		},
		{
			name: "multiple root elements",
			content: `<Law Era="Heisei" Year="15" LawType="Act"><LawBody><LawTitle>甲法</LawTitle></LawBody></Law>` +
				`<Law Era="Reiwa" Year="1" LawType="Rule"><LawBody><LawTitle>乙法</LawTitle></LawBody></Law>`,
			wantMsg: "multiple root elements",
		},
		{
			name:    "invalid utf-8",
			content: "<Law Era=\"Showa\" Year=\"1\" LawType=\"Act\"><LawBody><LawTitle>\xff\xfe</LawTitle></LawBody></Law>",
			wantMsg: "not valid UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Decode([]byte(tt.content), "bad.xml")
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "expected *ParseError, got %T", err)
			assert.Equal(t, "bad.xml", parseErr.Path)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, parseErr.Field)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, parseErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestDecode_MalformedBodyReportsLine(t *testing.T) {
	doc := "<Law Era=\"Showa\" Year=\"1\" LawType=\"Act\">\n" +
		"<LawBody><LawTitle>題名</LawTitle>\n" +
		"<MainProvision>\n" +
		"</LawBody>\n" +
		"</Law>\n"

	_, err := NewParser().Decode([]byte(doc), "broken.xml")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 4, parseErr.Line)
	assert.NotEmpty(t, parseErr.Hint)
	assert.Contains(t, parseErr.Error(), "broken.xml (line 4)")
}

func TestDecode_UnknownEncoding(t *testing.T) {
	doc := `<?xml version="1.0" encoding="x-no-such-charset"?><Law Era="Showa" Year="1" LawType="Act"/>`

	_, err := NewParser().Decode([]byte(doc), "enc.xml")
	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Message, "x-no-such-charset")
}

func TestParseError_HintIsFlattened(t *testing.T) {
	err := &ParseError{Path: "a.xml", Message: "boom", Hint: "fix it"}

	assert.Equal(t, "law document a.xml: boom", err.Error())
	assert.Contains(t, errors.FlattenHints(err), "fix it")
}

const miniSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="Law">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="LawNum" type="xs:string"/>
        <xs:element name="LawBody">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="LawTitle" type="xs:string"/>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
      <xs:attribute name="Era" type="xs:string" use="required"/>
      <xs:attribute name="Year" type="xs:positiveInteger" use="required"/>
      <xs:attribute name="LawType" type="xs:string" use="required"/>
      <xs:attribute name="Num" type="xs:string"/>
      <xs:attribute name="Lang" type="xs:string"/>
      <xs:attribute name="PromulgateMonth" type="xs:string"/>
      <xs:attribute name="PromulgateDay" type="xs:string"/>
    </xs:complexType>
  </xs:element>
</xs:schema>
`

func TestStrictMode(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "law.xsd")
	require.NoError(t, os.WriteFile(schemaPath, []byte(miniSchema), 0o644))

	schema, err := LoadSchema(schemaPath)
	require.NoError(t, err)

	p := NewParser(WithSchema(schema))
	require.True(t, p.Strict())

	t.Run("valid document", func(t *testing.T) {
		doc := `<Law Era="Showa" Year="22" LawType="Act"><LawNum>番号</LawNum><LawBody><LawTitle>題名</LawTitle></LawBody></Law>`
		law, err := p.Decode([]byte(doc), "ok.xml")
		require.NoError(t, err)
		assert.Equal(t, "題名", law.Title)
	})

	t.Run("schema violation", func(t *testing.T) {
		// Accepted by the lenient decoder, rejected by the schema (no LawNum).
		doc := `<Law Era="Showa" Year="22" LawType="Act"><LawBody><LawTitle>題名</LawTitle></LawBody></Law>`
		_, err := NewParser().Decode([]byte(doc), "lenient.xml")
		require.NoError(t, err)

		_, err = p.Decode([]byte(doc), "strict.xml")
		require.Error(t, err)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Contains(t, parseErr.Message, "schema")
	})
}

func TestLoadSchema_MissingFile(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.xsd"))
	assert.Error(t, err)
}
