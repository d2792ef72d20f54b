package lawxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/jacoelho/xsd"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

var (
	utf8BOM           = []byte{0xEF, 0xBB, 0xBF}
	encodingDeclRegex = regexp.MustCompile(`^<\?xml[^>]*\bencoding\s*=\s*["']([^"']+)["']`)
)

// Parser decodes law documents. The zero value is not usable; use NewParser.
// A Parser is safe for concurrent use.
type Parser struct {
	schema *xsd.Schema
}

// Option configures a Parser.
type Option func(*Parser)

// WithSchema enables strict mode: documents must validate against schema
// before they are decoded.
func WithSchema(schema *xsd.Schema) Option {
	return func(p *Parser) {
		p.schema = schema
	}
}

// NewParser creates a parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadSchema compiles the XSD at path for use with WithSchema.
func LoadSchema(path string) (*xsd.Schema, error) {
	schema, err := xsd.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load law schema %s", path)
	}
	return schema, nil
}

// Strict reports whether documents are validated against a schema.
func (p *Parser) Strict() bool {
	return p.schema != nil
}

// Parse implements lawcat.DocumentParser.
func (p *Parser) Parse(content []byte, path string) (lawcat.DocumentFields, error) {
	law, err := p.Decode(content, path)
	if err != nil {
		return lawcat.DocumentFields{}, err
	}
	return lawcat.DocumentFields{
		Title:            law.Title,
		PromulgationDate: law.PromulgationDate().String(),
		LawType:          law.LawType,
		Category:         law.Category(),
		LawNum:           law.LawNum,
	}, nil
}

// Decode reads one law document. The whole input is consumed so that
// malformed markup after the header is still reported.
func (p *Parser) Decode(content []byte, path string) (*Law, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	charset := declaredEncoding(content)
	if isUTF8Label(charset) && !utf8.Valid(content) {
		return nil, &ParseError{
			Path:    path,
			Message: "document is not valid UTF-8",
			Hint:    "Declare the actual encoding in the XML prolog, e.g. <?xml version=\"1.0\" encoding=\"Shift_JIS\"?>.",
		}
	}

	if p.schema != nil {
		if err := p.schema.Validate(bytes.NewReader(content)); err != nil {
			return nil, wrapSchemaError(err, path)
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charsetReader

	law, err := decodeLaw(dec, path)
	if err != nil {
		return nil, err
	}
	return law, nil
}

// declaredEncoding returns the encoding named in the XML prolog, or "".
func declaredEncoding(content []byte) string {
	head := content
	if len(head) > 256 {
		head = head[:256]
	}
	m := encodingDeclRegex.FindSubmatch(head)
	if m == nil {
		return ""
	}
	return string(m[1])
}

func isUTF8Label(label string) bool {
	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Newf("unsupported document encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// decodeLaw walks the token stream, collecting the Law attributes, the law
// number and the title. Text inside <Rt> is skipped.
func decodeLaw(dec *xml.Decoder, path string) (*Law, error) {
	var (
		law      *Law
		stack    []string
		rtDepth  int
		inLawNum bool
		inTitle  bool
		seenNum  bool
		seenTtl  bool
		lawNum   strings.Builder
		title    strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapXMLError(err, path)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if len(stack) == 0 {
				if law != nil {
					return nil, &ParseError{
						Path:    path,
						Line:    lineOf(dec),
						Message: "multiple root elements: unexpected <" + name + "> after </Law>",
						Hint:    "A law document holds exactly one <Law> element.",
					}
				}
				if name != "Law" {
					return nil, &ParseError{
						Path:    path,
						Line:    lineOf(dec),
						Message: "root element must be <Law>, got <" + name + ">",
						Hint:    "Only e-Gov law XML documents are supported.",
					}
				}
				law, err = lawFromAttrs(t.Attr, path)
				if err != nil {
					return nil, err
				}
			}
			stack = append(stack, name)

			switch {
			case name == "Rt":
				rtDepth++
			case !seenNum && pathIs(stack, "Law", "LawNum"):
				inLawNum = true
			case !seenTtl && pathIs(stack, "Law", "LawBody", "LawTitle"):
				inTitle = true
				law.TitleKana = attr(t.Attr, "Kana")
			}

		case xml.EndElement:
			name := t.Name.Local
			switch {
			case name == "Rt":
				rtDepth--
			case inLawNum && pathIs(stack, "Law", "LawNum"):
				inLawNum = false
				seenNum = true
			case inTitle && pathIs(stack, "Law", "LawBody", "LawTitle"):
				inTitle = false
				seenTtl = true
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if rtDepth > 0 {
				continue
			}
			if inLawNum {
				lawNum.Write(t)
			}
			if inTitle {
				title.Write(t)
			}
		}
	}

	if law == nil {
		return nil, &ParseError{
			Path:    path,
			Message: "document has no root element",
			Hint:    "The file is empty or contains only an XML prolog.",
		}
	}

	law.LawNum = collapseSpace(lawNum.String())
	law.Title = collapseSpace(title.String())
	if law.Title == "" {
		return nil, &ParseError{
			Path:    path,
			Field:   "LawTitle",
			Message: "missing or empty <LawBody><LawTitle>",
		}
	}
	return law, nil
}

func lawFromAttrs(attrs []xml.Attr, path string) (*Law, error) {
	law := &Law{
		Era:     Era(attr(attrs, "Era")),
		Num:     attr(attrs, "Num"),
		LawType: attr(attrs, "LawType"),
		Lang:    attr(attrs, "Lang"),
	}

	if law.Era == "" {
		return nil, fieldError(path, "Era", "required attribute is missing")
	}
	if !law.Era.Valid() {
		return nil, fieldError(path, "Era", "unknown era %q", string(law.Era))
	}

	yearText := attr(attrs, "Year")
	if yearText == "" {
		return nil, fieldError(path, "Year", "required attribute is missing")
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearText))
	if err != nil || year < 1 {
		return nil, fieldError(path, "Year", "expected a positive integer, got %q", yearText)
	}
	law.Year = year

	if law.LawType == "" {
		return nil, fieldError(path, "LawType", "required attribute is missing")
	}
	if CategoryFor(law.LawType) == "" {
		return nil, fieldError(path, "LawType", "unknown law type %q", law.LawType)
	}

	month, err := optionalInt(attrs, 12, "PromulgateMonth", "Month")
	if err != nil {
		return nil, fieldError(path, "PromulgateMonth", "%s", err.Error())
	}
	day, err := optionalInt(attrs, 31, "PromulgateDay", "Day")
	if err != nil {
		return nil, fieldError(path, "PromulgateDay", "%s", err.Error())
	}
	if month == 0 && day != 0 {
		day = 0
	}
	law.PromulgateMonth = month
	law.PromulgateDay = day

	return law, nil
}

// optionalInt reads the first present attribute of names as an integer in
// [1, upper]. Absent attributes yield 0.
func optionalInt(attrs []xml.Attr, upper int, names ...string) (int, error) {
	for _, name := range names {
		text := strings.TrimSpace(attr(attrs, name))
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > upper {
			return 0, errors.Newf("%s must be between 1 and %d, got %q", name, upper, text)
		}
		return n, nil
	}
	return 0, nil
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func pathIs(stack []string, names ...string) bool {
	if len(stack) != len(names) {
		return false
	}
	for i := range names {
		if stack[i] != names[i] {
			return false
		}
	}
	return true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lineOf(dec *xml.Decoder) int {
	line, _ := dec.InputPos()
	return line
}
