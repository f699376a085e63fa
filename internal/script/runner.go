// Package script runs user JavaScript against loaded person records.
//
// Source is compiled as the body of a function whose parameters are the
// binding names and executed in an embedded goja runtime. This is a trust
// boundary: the source can use everything the runtime exposes. No sandboxing
// and no timeout are applied; each call gets a fresh runtime and is
// independent of every other call.
package script

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/logger"
	"github.com/dbsmedya/personpad/internal/record"
)

// wrapperLines is the number of lines the function wrapper adds before the
// user's source.
const wrapperLines = 1

// Undefined binds a name to the JS undefined value.
var Undefined any = undefined{}

type undefined struct{}

// Result is the outcome of one execution.
type Result struct {
	Output    []string // captured console lines, in call order
	Value     any      // returned value in the record model; nil on failure
	JSON      string   // JSON text of Value; empty when undefined or failed
	Undefined bool     // the script returned nothing or undefined
	Err       *ScriptError
	Duration  time.Duration
}

// OK reports whether the script completed without raising.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Runner executes scripts. Calls are serialized.
type Runner struct {
	cfg      config.RunnerConfig
	log      *logger.Logger
	observer Observer

	mu    sync.Mutex
	state State
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(cfg config.RunnerConfig, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.ScriptName == "" {
		cfg.ScriptName = "script.js"
	}
	return &Runner{
		cfg:   cfg,
		log:   log.WithScript(cfg.ScriptName),
		state: StateIdle,
	}
}

// SetObserver registers fn to receive state transitions. fn runs while the
// runner is busy and must not call back into it.
func (r *Runner) SetObserver(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = fn
}

// State returns the current lifecycle state. Outside Execute it is always Idle.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) transition(to State) {
	from := r.state
	r.state = to
	r.log.Debugw("Script state changed", "from", from.String(), "to", to.String())
	if r.observer != nil {
		r.observer(from, to)
	}
}

// Execute compiles source as a function body with one parameter per binding,
// calls it with the bound values and returns the captured output plus either
// the returned value or a ScriptError. Execute never panics.
func (r *Runner) Execute(source string, bindings map[string]any) (result *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	result = &Result{Output: []string{}}
	var con *console

	defer func() {
		if rec := recover(); rec != nil {
			result.Value, result.JSON, result.Undefined = nil, "", false
			result.Err = &ScriptError{Phase: PhaseRun, Name: "InternalError", Message: fmt.Sprint(rec)}
			r.log.Errorw("Script runtime panicked", "panic", rec)
		}
		if con != nil {
			result.Output = append(result.Output, con.lines...)
		}
		result.Duration = time.Since(start)

		if result.Err != nil {
			if r.state != StateFailed {
				r.transition(StateFailed)
			}
		} else {
			r.transition(StateCompleted)
		}
		r.transition(StateIdle)
	}()

	r.transition(StateCompiling)

	names, bindErr := bindingNames(bindings)
	if bindErr != nil {
		result.Err = bindErr
		return result
	}

	wrapped := "(function(" + strings.Join(names, ", ") + ") {\n" + source + "\n})"
	parsed, parseErr := goja.Parse(r.cfg.ScriptName, wrapped)
	if parseErr != nil {
		result.Err = compileError(parseErr, wrapperLines)
		r.log.Debugw("Script failed to compile", "error", result.Err.Error())
		return result
	}
	// An unmatched '}' in source closes the wrapper early and leaves more than
	// the one function expression behind.
	if !isFunctionBody(parsed) {
		result.Err = &ScriptError{
			Phase:   PhaseCompile,
			Name:    "SyntaxError",
			Message: "Unexpected token '}': the script closes its own function body",
		}
		return result
	}
	program, compileErr := goja.CompileAST(parsed, false)
	if compileErr != nil {
		result.Err = compileError(compileErr, wrapperLines)
		r.log.Debugw("Script failed to compile", "error", result.Err.Error())
		return result
	}

	vm := goja.New()
	if r.cfg.MaxCallStack > 0 {
		vm.SetMaxCallStackSize(r.cfg.MaxCallStack)
	}

	var echo *logger.Logger
	if r.cfg.EchoConsole {
		echo = r.log
	}
	con = newConsole(vm, echo)
	if err := con.install(); err != nil {
		result.Err = &ScriptError{Phase: PhaseCompile, Message: fmt.Sprintf("failed to install console: %v", err)}
		return result
	}

	fnValue, err := vm.RunProgram(program)
	if err != nil {
		result.Err = runtimeError(err, r.cfg.ScriptName, wrapperLines)
		return result
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		result.Err = &ScriptError{Phase: PhaseCompile, Message: "source did not compile to a function body"}
		return result
	}

	b := newBridge(vm)
	args := make([]goja.Value, len(names))
	for i, name := range names {
		args[i] = b.toJS(bindings[name])
	}

	r.transition(StateRunning)

	ret, err := fn(goja.Undefined(), args...)
	if err != nil {
		result.Err = runtimeError(err, r.cfg.ScriptName, wrapperLines)
		r.log.Debugw("Script raised", "error", result.Err.Error(), "output_lines", len(con.lines))
		return result
	}

	if err := r.coerce(con, ret, result); err != nil {
		result.Value, result.JSON = nil, ""
		result.Err = runtimeError(err, r.cfg.ScriptName, wrapperLines)
	}
	return result
}

// isFunctionBody reports whether prg is exactly the wrapper's single function
// expression.
func isFunctionBody(prg *ast.Program) bool {
	if len(prg.Body) != 1 {
		return false
	}
	stmt, ok := prg.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	_, ok = stmt.Expression.(*ast.FunctionLiteral)
	return ok
}

// coerce stores the returned value in the record model. Values without a
// JSON form (functions, cyclic objects) are kept as their JS string form.
// A user toString that throws is returned as the error.
func (r *Runner) coerce(con *console, ret goja.Value, result *Result) error {
	if ret == nil || goja.IsUndefined(ret) {
		result.Undefined = true
		return nil
	}

	if text, ok := con.json(ret, ""); ok {
		if v, err := record.Decode([]byte(text)); err == nil {
			result.Value = v
			result.JSON = text
			return nil
		}
	}

	str, err := jsString(ret)
	if err != nil {
		return err
	}
	result.Value = str
	if encoded, err := record.Encode(result.Value, ""); err == nil {
		result.JSON = string(encoded)
	}
	return nil
}

// jsString converts v with String(), returning a JS exception raised by user
// code instead of panicking.
func jsString(v goja.Value) (s string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ex, ok := rec.(*goja.Exception)
			if !ok {
				panic(rec)
			}
			err = ex
		}
	}()
	return v.String(), nil
}

// bindingNames returns the binding names in sorted order, rejecting any that
// cannot be used as a parameter name.
func bindingNames(bindings map[string]any) ([]string, *ScriptError) {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		if !record.IsIdentifier(name) || reserved[name] {
			return nil, &ScriptError{
				Phase:   PhaseCompile,
				Name:    "SyntaxError",
				Message: fmt.Sprintf("invalid binding name %q", name),
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "let": true, "static": true, "await": true,
}
