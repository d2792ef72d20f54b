package lawxml

import (
	"encoding/xml"
	"fmt"

	"github.com/cockroachdb/errors"
	xsderrors "github.com/jacoelho/xsd/errors"
)

// ParseError describes why a law document could not be decoded.
// Line is zero when the position is unknown.
type ParseError struct {
	Path    string
	Line    int
	Field   string
	Message string
	Hint    string
}

func (e *ParseError) Error() string {
	location := e.Path
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.Path, e.Line)
	}

	msg := fmt.Sprintf("law document %s: %s", location, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("law document %s [field: %s]: %s", location, e.Field, e.Message)
	}
	return msg
}

// ErrorHint returns the hint, if any. It is picked up by errors.FlattenHints.
func (e *ParseError) ErrorHint() string {
	return e.Hint
}

func fieldError(path, field, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Path:    path,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapXMLError converts encoding/xml errors to ParseError, keeping the line.
func wrapXMLError(err error, path string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{
			Path:    path,
			Line:    syntaxErr.Line,
			Message: syntaxErr.Msg,
			Hint:    "Check that every element is closed and attribute values are quoted.",
		}
	}
	return &ParseError{
		Path:    path,
		Message: err.Error(),
		Hint:    "The file is not a well-formed law XML document.",
	}
}

// wrapSchemaError converts XSD validation failures to ParseError. Only the
// first violation is kept in the message; the count is appended.
func wrapSchemaError(err error, path string) error {
	violations, ok := xsderrors.AsValidations(err)
	if !ok || len(violations) == 0 {
		return &ParseError{
			Path:    path,
			Message: "schema validation failed: " + err.Error(),
		}
	}

	first := violations[0]
	msg := first.Message
	if first.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, first.Path)
	}
	if extra := len(violations) - 1; extra > 0 {
		msg = fmt.Sprintf("%s (and %d more)", msg, extra)
	}
	return &ParseError{
		Path:    path,
		Line:    first.Line,
		Message: "schema violation: " + msg,
		Hint:    "Validate the document against the law schema (XSD) given with --schema.",
	}
}
