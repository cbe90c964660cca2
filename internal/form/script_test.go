package form

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptAdapterLoadRejectsSyntaxError(t *testing.T) {
	a := newScriptAdapter()
	err := a.load("function Main( {")
	requireFormError(t, err, ScriptLoadFailed)
}

func TestScriptAdapterLoadRequiresMain(t *testing.T) {
	a := newScriptAdapter()
	err := a.load("function NotMain() { return 1; }")
	requireFormError(t, err, NoMainFunction)
}

func TestScriptAdapterLoadRejectsNonFunctionMain(t *testing.T) {
	a := newScriptAdapter()
	err := a.load("var Main = 42;")
	requireFormError(t, err, NoMainFunction)
}

func TestScriptAdapterInvokeRoundTrip(t *testing.T) {
	a := newScriptAdapter()
	require.NoError(t, a.load(`
function Main(state, answer, params) {
    if (answer === null) {
        return ["question", {id: "q1", type: "simple", text: "hi " + params.who}, {seen: true}];
    }
    return ["done", {got: answer.text}, null];
}
`))

	step, err := a.invoke(nullSnapshot, nil, Snapshot(`{"who":"world"}`))
	require.NoError(t, err)
	require.Equal(t, "question", step.tag)

	step, err = a.invoke(step.snapshot, Text("yo"), Snapshot(`{"who":"world"}`))
	require.NoError(t, err)
	require.Equal(t, "done", step.tag)
}

func TestScriptAdapterInvokeRejectsNonArrayResult(t *testing.T) {
	a := newScriptAdapter()
	require.NoError(t, a.load(`function Main(state, answer, params) { return "oops"; }`))
	_, err := a.invoke(nullSnapshot, nil, nullSnapshot)
	requireFormError(t, err, InvalidResult)
}

func TestScriptAdapterInvokeRejectsRuntimeError(t *testing.T) {
	a := newScriptAdapter()
	require.NoError(t, a.load(`function Main(state, answer, params) { throw new Error("boom"); }`))
	_, err := a.invoke(nullSnapshot, nil, nullSnapshot)
	requireFormError(t, err, RunDriverFailed)
}
