package script

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/dop251/goja"
)

// Phase is the execution step a ScriptError was raised in.
type Phase string

const (
	PhaseCompile Phase = "compile"
	PhaseRun     Phase = "run"
)

// ScriptError describes an exception raised by user code, or code that does
// not compile. Line and Column are 1-based positions in the user's source and
// are zero when unknown.
type ScriptError struct {
	Phase   Phase
	Name    string // JS error name such as TypeError; empty for thrown non-Error values
	Message string
	Line    int
	Column  int
}

func (e *ScriptError) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = e.Name + ": " + e.Message
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", msg, e.Line, e.Column)
	}
	return msg
}

// syntaxPosition matches the parser's "name: Line 3:14 message" form.
var syntaxPosition = regexp.MustCompile(`Line (\d+):(\d+) (.*)$`)

// compileError converts a goja compile failure. lineOffset is the number of
// wrapper lines that precede the user's source.
func compileError(err error, lineOffset int) *ScriptError {
	se := &ScriptError{Phase: PhaseCompile, Name: "SyntaxError", Message: err.Error()}

	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		se.Message = syntaxErr.Message
		if syntaxErr.File != nil {
			pos := syntaxErr.File.Position(syntaxErr.Offset)
			se.Line, se.Column = pos.Line, pos.Column
		} else if m := syntaxPosition.FindStringSubmatch(syntaxErr.Message); m != nil {
			se.Line, _ = strconv.Atoi(m[1])
			se.Column, _ = strconv.Atoi(m[2])
			se.Message = m[3]
		}
	}

	se.Line = shiftLine(se.Line, lineOffset)
	return se
}

// runtimeError converts an error returned while running user code.
func runtimeError(err error, scriptName string, lineOffset int) *ScriptError {
	se := &ScriptError{Phase: PhaseRun, Message: err.Error()}

	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		se.Name = "RangeError"
		se.Message = "Maximum call stack size exceeded"
		return se
	}

	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return se
	}

	if val := ex.Value(); val != nil {
		se.Message = val.String()
		if obj, ok := val.(*goja.Object); ok && obj.ClassName() == "Error" {
			se.Name = obj.Get("name").String()
			se.Message = obj.Get("message").String()
		}
	}

	// The innermost frame from the user's program; native frames are skipped
	for _, frame := range ex.Stack() {
		if frame.SrcName() != scriptName {
			continue
		}
		pos := frame.Position()
		se.Line = shiftLine(pos.Line, lineOffset)
		se.Column = pos.Column
		break
	}
	return se
}

func shiftLine(line, offset int) int {
	if line <= offset {
		return 0
	}
	return line - offset
}
