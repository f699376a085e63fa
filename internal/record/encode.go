package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dbsmedya/personpad/internal/types"
)

// ErrCyclicValue is returned by Encode when a value contains itself.
var ErrCyclicValue = errors.New("value contains a reference cycle")

// Encode serializes v as JSON in key order. An empty indent produces compact
// output. Shared (non-cyclic) references are written out at every occurrence.
func Encode(v any, indent string) ([]byte, error) {
	e := &encoder{indent: indent, active: make(map[ID]bool)}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	indent string
	active map[ID]bool // containers on the current path
}

func (e *encoder) encode(v any, depth int) error {
	switch TypeOf(v) {
	case TypeNull:
		e.buf.WriteString("null")
		return nil
	case TypeBoolean:
		if v.(bool) {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
		return nil
	case TypeNumber:
		f, _ := types.ToFloat64(v)
		return e.writeNumber(f)
	case TypeString:
		return e.writeString(v.(string))
	case TypeObject, TypeArray:
		return e.encodeContainer(v, depth)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}

func (e *encoder) encodeContainer(v any, depth int) error {
	id, tracked := Identity(v)
	if tracked {
		if e.active[id] {
			return ErrCyclicValue
		}
		e.active[id] = true
		defer delete(e.active, id)
	}

	members, _ := Members(v)
	open, closing := byte('['), byte(']')
	isObject := TypeOf(v) == TypeObject
	if isObject {
		open, closing = '{', '}'
	}

	e.buf.WriteByte(open)
	if len(members) == 0 {
		e.buf.WriteByte(closing)
		return nil
	}

	for i, m := range members {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if isObject {
			if err := e.writeString(m.Key); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if e.indent != "" {
				e.buf.WriteByte(' ')
			}
		}
		if err := e.encode(m.Value, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(closing)
	return nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(e.indent, depth))
}

// writeNumber follows JSON.stringify: non-finite numbers become null.
func (e *encoder) writeNumber(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.buf.WriteString("null")
		return nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	e.buf.Write(b)
	return nil
}

func (e *encoder) writeString(s string) error {
	var sb bytes.Buffer
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	e.buf.Write(bytes.TrimRight(sb.Bytes(), "\n"))
	return nil
}
