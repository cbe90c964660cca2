package form

import (
	"encoding/json"

	"github.com/dop251/goja"
)

// Snapshot is the opaque, value-typed record of the script's internal
// state at the boundary of one invocation. It is stored as compact JSON
// rather than a live goja.Value so that re-injecting it on a later call
// can never alias the runtime's own mutable heap — goja happily hands
// back the same backing object on two calls if you let it, and the
// engine's correctness depends on every snapshot being a fresh, owned
// copy. See lib.rs's equivalent comment about Lua doing the same thing.
type Snapshot []byte

// nullSnapshot is the canonical empty/absent snapshot, used for the
// very first driver call (prior_snapshot == VM null).
var nullSnapshot = Snapshot("null")

// Clone returns a copy of the snapshot's backing bytes. The engine
// itself hands snapshots to the ledger and to pending without cloning,
// since nothing in this package mutates a Snapshot in place; Clone is
// for callers that need their own independent copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// snapshotFromValue performs the exactly-once conversion from a driver
// call's already-exported return value into a portable Snapshot. It
// must be applied immediately after a driver invocation returns, before
// the runtime has any chance to run further script code that could
// mutate the underlying value.
func snapshotFromValue(exported interface{}) (Snapshot, error) {
	if exported == nil {
		return nullSnapshot, nil
	}
	raw, err := json.Marshal(exported)
	if err != nil {
		return nil, wrapErr(SerializeStateFailed, "marshal script state", err)
	}
	return Snapshot(raw), nil
}

// toGoja reconstitutes the script's view of its own prior state: a
// fresh value decoded from JSON and re-injected into rt, never a
// reference to anything the runtime has seen before.
func (s Snapshot) toGoja(rt *goja.Runtime) (goja.Value, error) {
	if len(s) == 0 || string(s) == "null" {
		return goja.Null(), nil
	}
	var decoded interface{}
	if err := json.Unmarshal(s, &decoded); err != nil {
		return nil, wrapErr(SerializeStateFailed, "unmarshal script state", err)
	}
	return rt.ToValue(decoded), nil
}
