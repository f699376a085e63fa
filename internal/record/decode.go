package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ParseError is returned when input is not valid JSON or has the wrong shape.
// Line and Column are 1-based; they are zero when no position is known.
type ParseError struct {
	Message string
	Offset  int64
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return "parse error: " + e.Message
}

// MaxNesting is the deepest container nesting Decode accepts.
const MaxNesting = 10000

// Decode parses a single JSON document, preserving object key order.
// Duplicate keys keep their first position and their last value.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return nil, newParseError(data, dec.InputOffset(), err)
	}

	// Anything but whitespace after the top-level value is an error
	tok, err := dec.Token()
	if err != io.EOF {
		if err == nil {
			err = fmt.Errorf("invalid data after top-level value: %v", tok)
		}
		return nil, newParseError(data, dec.InputOffset(), err)
	}

	return v, nil
}

// DecodeRecords parses a fixture document. A top-level object is one record,
// a top-level array is a list of records. Anything else is a ParseError.
func DecodeRecords(data []byte) ([]any, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case *Object:
		return []any{x}, nil
	case []any:
		return x, nil
	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("top-level value must be an object or an array, got %s", TypeOf(v)),
			Offset:  0,
			Line:    1,
			Column:  1,
		}
	}
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if (t == '{' || t == '[') && depth >= MaxNesting {
			return nil, fmt.Errorf("exceeded max nesting depth of %d", MaxNesting)
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s out of range", t.String())
		}
		return f, nil
	case string, bool, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder, depth int) (any, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder, depth int) (any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// Consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

func newParseError(data []byte, offset int64, err error) *ParseError {
	msg := err.Error()

	// The decoder's input offset points at the start of the token that
	// failed; SyntaxError offsets are not stream-relative in token mode.
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		msg = "unexpected end of JSON input"
		offset = int64(len(data))
	}

	line, col := position(data, offset)
	return &ParseError{
		Message: msg,
		Offset:  offset,
		Line:    line,
		Column:  col,
	}
}

// position converts the byte offset of a character into its 1-based line
// and column.
func position(data []byte, offset int64) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := 1 + bytes.Count(prefix, []byte{'\n'})
	col := len(prefix) - (bytes.LastIndexByte(prefix, '\n') + 1) + 1
	return line, col
}
