package form

import (
	"github.com/dop251/goja"
)

// rawStep is the raw (tag, payload, new snapshot) triple a driver call
// returns, before codec.go decodes it into a scriptState.
type rawStep struct {
	tag      string
	payload  interface{}
	snapshot Snapshot
}

// scriptAdapter wraps an embedded goja runtime: loads the form script,
// resolves its Main entry point, and invokes it with
// (prior-state, answer, params), translating goja's return value back
// into a rawStep. This is C1 of the design.
type scriptAdapter struct {
	rt     *goja.Runtime
	driver goja.Callable
}

func newScriptAdapter() *scriptAdapter {
	return &scriptAdapter{rt: goja.New()}
}

// load executes the script body and resolves its driver function.
func (a *scriptAdapter) load(script string) error {
	if _, err := a.rt.RunString(script); err != nil {
		return wrapErr(ScriptLoadFailed, "execute script body", err)
	}
	mainVal := a.rt.Get("Main")
	if mainVal == nil {
		return newErr(NoMainFunction, "script does not define a global \"Main\"")
	}
	fn, ok := goja.AssertFunction(mainVal)
	if !ok {
		return newErr(NoMainFunction, "script's \"Main\" is not callable")
	}
	a.driver = fn
	return nil
}

// invoke calls the driver function with (priorSnapshot, answer, params)
// and decodes its return value into a rawStep. A nil answer encodes as
// the VM's null value, used only for the very first call.
func (a *scriptAdapter) invoke(priorSnapshot Snapshot, answer Answer, params Snapshot) (rawStep, error) {
	priorVal, err := priorSnapshot.toGoja(a.rt)
	if err != nil {
		return rawStep{}, err
	}

	var answerVal goja.Value
	if answer == nil {
		answerVal = goja.Null()
	} else {
		answerVal = a.rt.ToValue(encodeAnswer(answer))
	}

	paramsVal, err := params.toGoja(a.rt)
	if err != nil {
		return rawStep{}, wrapErr(SerializeParamsFailed, "reconstitute form parameters", err)
	}

	ret, err := a.driver(goja.Undefined(), priorVal, answerVal, paramsVal)
	if err != nil {
		return rawStep{}, wrapErr(RunDriverFailed, "invoke driver function", err)
	}

	exported := ret.Export()
	tuple, ok := exported.([]interface{})
	if !ok || len(tuple) != 3 {
		return rawStep{}, newErr(InvalidResult, "driver must return a 3-element array")
	}
	tag, ok := tuple[0].(string)
	if !ok {
		return rawStep{}, newErr(InvalidResult, "result tag must be a string")
	}

	snap, err := snapshotFromValue(tuple[2])
	if err != nil {
		return rawStep{}, err
	}

	return rawStep{tag: tag, payload: tuple[1], snapshot: snap}, nil
}
