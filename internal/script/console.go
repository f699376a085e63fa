package script

import (
	"strings"

	"github.com/dop251/goja"

	"github.com/dbsmedya/personpad/internal/logger"
)

var consoleMethods = []string{"log", "info", "warn", "error", "debug"}

// console collects the lines a script logs, in call order.
type console struct {
	vm        *goja.Runtime
	stringify goja.Callable
	lines     []string
	echo      *logger.Logger
}

func newConsole(vm *goja.Runtime, echo *logger.Logger) *console {
	c := &console{vm: vm, echo: echo}
	if jsonObj, ok := vm.Get("JSON").(*goja.Object); ok {
		c.stringify, _ = goja.AssertFunction(jsonObj.Get("stringify"))
	}
	return c
}

// install binds the console object into the runtime's global scope.
func (c *console) install() error {
	obj := c.vm.NewObject()
	for _, method := range consoleMethods {
		if err := obj.Set(method, c.method(method)); err != nil {
			return err
		}
	}
	return c.vm.Set("console", obj)
}

func (c *console) method(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = c.format(arg)
		}
		line := strings.Join(parts, " ")
		c.lines = append(c.lines, line)

		if c.echo != nil {
			switch level {
			case "error":
				c.echo.Errorw(line, "console", level)
			case "warn":
				c.echo.Warnw(line, "console", level)
			case "debug":
				c.echo.Debugw(line, "console", level)
			default:
				c.echo.Infow(line, "console", level)
			}
		}
		return goja.Undefined()
	}
}

// format renders one console argument: strings raw, Error objects as
// "Name: message", everything else as JSON with the JS string form as a
// fallback.
func (c *console) format(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if s, ok := v.Export().(string); ok {
		return s
	}
	if obj, ok := v.(*goja.Object); ok {
		if obj.ClassName() == "Error" {
			return obj.String()
		}
		if _, isFunc := goja.AssertFunction(obj); isFunc {
			return obj.String()
		}
	}
	if text, ok := c.json(v, ""); ok {
		return text
	}
	return v.String()
}

// json runs JSON.stringify on v. It reports false when the value has no JSON
// form or stringify throws, e.g. on a cycle.
func (c *console) json(v goja.Value, indent string) (string, bool) {
	if c.stringify == nil {
		return "", false
	}
	args := []goja.Value{v}
	if indent != "" {
		args = append(args, goja.Undefined(), c.vm.ToValue(indent))
	}
	out, err := c.stringify(goja.Undefined(), args...)
	if err != nil || out == nil || goja.IsUndefined(out) {
		return "", false
	}
	return out.String(), true
}
