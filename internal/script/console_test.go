package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/logger"
)

func TestConsoleFormatting(t *testing.T) {
	source := `
console.log("raw string", 42, true, null, undefined);
console.log({a: 1, b: [1, "x"]});
console.error(new TypeError("bad input"));
console.warn(function named() {});
console.debug();
`
	result := newTestRunner().Execute(source, nil)

	require.Nil(t, result.Err)
	require.Len(t, result.Output, 5)
	assert.Equal(t, "raw string 42 true null undefined", result.Output[0])
	assert.Equal(t, `{"a":1,"b":[1,"x"]}`, result.Output[1])
	assert.Equal(t, "TypeError: bad input", result.Output[2])
	assert.Contains(t, result.Output[3], "function named()")
	assert.Equal(t, "", result.Output[4])
}

func TestConsoleEcho(t *testing.T) {
	cfg := config.RunnerConfig{ScriptName: "echo.js", EchoConsole: true}
	runner := NewRunner(cfg, logger.NewNop())

	result := runner.Execute("console.log('hello'); console.error('oops'); return 'done';", nil)

	require.Nil(t, result.Err)
	assert.Equal(t, []string{"hello", "oops"}, result.Output)
	assert.Equal(t, "done", result.Value)
}

func TestScriptErrorMessage(t *testing.T) {
	withPos := &ScriptError{Phase: PhaseRun, Name: "TypeError", Message: "x is undefined", Line: 3, Column: 7}
	assert.Equal(t, "TypeError: x is undefined (line 3, column 7)", withPos.Error())

	plain := &ScriptError{Phase: PhaseRun, Message: "thrown"}
	assert.Equal(t, "thrown", plain.Error())
}
