package index

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/japanese"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type column int

const (
	colLawID column = iota
	colTitle
	colCategory
	colLawNum
	colPromulgationDate
	numColumns
)

// headerAliases maps a normalised header cell to its column.
var headerAliases = map[string]column{
	"law_id":            colLawID,
	"法令id":              colLawID,
	"title":             colTitle,
	"法令名":               colTitle,
	"category":          colCategory,
	"法令種別":              colCategory,
	"law_num":           colLawNum,
	"法令番号":              colLawNum,
	"promulgation_date": colPromulgationDate,
	"公布日":               colPromulgationDate,
}

// LoadFile reads the index at path. A missing or unreadable file, or one
// without the required columns, is a configuration error.
func LoadFile(path, encoding string, logger lawcat.Logger) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(lawcat.ErrInvalidConfig, "cannot read index %s: %v", path, err),
			"check --index, or omit it to build without reconciliation",
		)
	}
	table, err := Parse(raw, encoding, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", path)
	}
	return table, nil
}

// Parse decodes index content in the given encoding
// (lawcat.IndexEncodingAuto, IndexEncodingUTF8 or IndexEncodingShiftJIS).
func Parse(raw []byte, encoding string, logger lawcat.Logger) (*Table, error) {
	text, err := decode(raw, encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.Wrap(lawcat.ErrInvalidConfig, "index is empty")
	}
	if err != nil {
		return nil, errors.Wrapf(lawcat.ErrInvalidConfig, "index header: %v", err)
	}

	positions, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	var entries []lawcat.IndexEntry
	seen := make(map[string]int)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(lawcat.ErrInvalidConfig, "index row: %v", err)
		}

		entry := lawcat.IndexEntry{
			LawID:            cell(row, positions[colLawID]),
			Title:            cell(row, positions[colTitle]),
			Category:         cell(row, positions[colCategory]),
			LawNum:           cell(row, positions[colLawNum]),
			PromulgationDate: cell(row, positions[colPromulgationDate]),
		}
		if entry.LawID == "" {
			continue
		}

		line, _ := r.FieldPos(0)
		if prev, dup := seen[entry.LawID]; dup {
			logger.Warn("index lists %s twice (lines %d and %d); using line %d", entry.LawID, prev, line, line)
		}
		seen[entry.LawID] = line
		entries = append(entries, entry)
	}

	table := NewTable(entries)
	logger.Verbose("loaded %d index entries", table.Len())
	return table, nil
}

func decode(raw []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case lawcat.IndexEncodingUTF8:
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return "", errors.WithHint(
				errors.Wrap(lawcat.ErrInvalidConfig, "index is not valid UTF-8"),
				"use --index-encoding shift_jis or auto",
			)
		}
		return string(raw), nil
	case lawcat.IndexEncodingShiftJIS:
		return decodeShiftJIS(raw)
	case lawcat.IndexEncodingAuto, "":
		if trimmed := bytes.TrimPrefix(raw, utf8BOM); utf8.Valid(trimmed) {
			return string(trimmed), nil
		}
		return decodeShiftJIS(raw)
	default:
		return "", errors.Wrapf(lawcat.ErrInvalidConfig, "unsupported index encoding %q", encoding)
	}
}

func decodeShiftJIS(raw []byte) (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Wrapf(lawcat.ErrInvalidConfig, "index is not valid Shift_JIS: %v", err)
	}
	return string(out), nil
}

// resolveHeader returns the position of every known column, -1 when absent.
func resolveHeader(header []string) ([numColumns]int, error) {
	var positions [numColumns]int
	for i := range positions {
		positions[i] = -1
	}
	for i, name := range header {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if ok && positions[col] == -1 {
			positions[col] = i
		}
	}

	var missing []string
	if positions[colLawID] == -1 {
		missing = append(missing, "law_id (法令ID)")
	}
	if positions[colTitle] == -1 {
		missing = append(missing, "title (法令名)")
	}
	if len(missing) > 0 {
		return positions, errors.WithHint(
			errors.Wrapf(lawcat.ErrInvalidConfig, "index header lacks required column(s): %s", strings.Join(missing, ", ")),
			"the first row must name the columns, e.g. 法令ID,法令名,法令種別",
		)
	}
	return positions, nil
}

func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}
