// Package form implements the script-driven form engine: the state
// machine and history/rewind model that invokes a sandboxed script one
// question at a time, caches every intermediate script state, and
// enforces answer/question type compatibility. See SPEC_FULL.md for the
// full design.
package form

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mrdon/birocrat/internal/formlog"
)

// pendingStep is the next (ScriptState, Snapshot) the engine will act
// on. It is always populated — before completion its state is Asking,
// and it becomes Done once the script finishes, staying Done unless a
// rewind re-answers an earlier question.
type pendingStep struct {
	state    scriptState
	snapshot Snapshot
}

// Engine is the public-facing state machine (C5). It coordinates the
// script adapter (C1), question codec (C2), snapshots (C3), and history
// ledger (C4), validates answer/question compatibility, and issues
// FormPoll results. An Engine is single-consumer and not reentrant —
// see SPEC_FULL.md §5.
type Engine struct {
	adapter *scriptAdapter
	ledger  *historyLedger
	pending pendingStep

	paramsSnapshot Snapshot
	sessionID      uuid.UUID
}

// New loads script into a fresh embedded runtime, invokes its driver
// with (null, null, params) to obtain the first question, and returns
// an Engine ready to be driven with Progress. params is any
// JSON-shaped value, passed verbatim to the script on every call.
//
// New fails with Kind ScriptLoadFailed / NoMainFunction if the script
// itself is broken, FirstPollFailed if the script's first answer is a
// script-level error, or FirstPollDone if the script completes without
// ever asking a question (it isn't a form).
func New(script string, params interface{}) (*Engine, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, wrapErr(SerializeParamsFailed, "marshal form parameters", err)
	}

	adapter := newScriptAdapter()
	if err := adapter.load(script); err != nil {
		return nil, err
	}

	sessionID := uuid.New()

	step, err := adapter.invoke(nullSnapshot, nil, Snapshot(paramsJSON))
	if err != nil {
		return nil, err
	}
	state, scriptErr, err := decodeScriptState(step.tag, step.payload)
	if err != nil {
		return nil, err
	}
	if scriptErr != "" {
		return nil, wrapErr(FirstPollFailed, scriptErr, nil)
	}
	if state.done {
		return nil, newErr(FirstPollDone, "script completed without asking a single question")
	}

	formlog.WithSession(sessionID).Debug("form engine created", "question_id", state.id)

	return &Engine{
		adapter:        adapter,
		ledger:         newHistoryLedger(),
		pending:        pendingStep{state: state, snapshot: step.snapshot},
		paramsSnapshot: Snapshot(paramsJSON),
		sessionID:      sessionID,
	}, nil
}

// SessionID identifies this engine instance for log correlation only;
// it plays no role in engine semantics.
func (e *Engine) SessionID() uuid.UUID {
	return e.sessionID
}

// FirstQuestion returns the very first question, the one New()
// obtained. It is a programmer error to call this after any answer has
// been accepted; rather than panic (as the original implementation
// does), this returns a hard error with Kind
// FirstQuestionAlreadyProgressed, per SPEC_FULL.md §9.
func (e *Engine) FirstQuestion() (Question, error) {
	if e.ledger.Len() != 0 {
		return nil, newErr(FirstQuestionAlreadyProgressed, "form has already been progressed")
	}
	if e.pending.state.done {
		return nil, newErr(FirstQuestionAlreadyProgressed, "form has already been progressed")
	}
	return e.pending.state.question, nil
}

// NextQuestion returns the question in pending, paired with any cached
// answer for its id, or ok=false if the form is already Done.
func (e *Engine) NextQuestion() (q Question, cached Answer, ok bool) {
	if e.pending.state.done {
		return nil, nil, false
	}
	cached, _ = e.ledger.CachedAnswer(e.pending.state.id)
	return e.pending.state.question, cached, true
}

// GetQuestion returns the i-th accepted entry from the ledger, paired
// with the cached answer for its id. It never invokes the script.
func (e *Engine) GetQuestion(i int) (q Question, cached Answer, ok bool) {
	id, question, _, found := e.ledger.Get(i)
	if !found {
		return nil, nil, false
	}
	cached, _ = e.ledger.CachedAnswer(id)
	return question, cached, true
}

// FormPollKind discriminates the three shapes Progress can report.
type FormPollKind int

const (
	// FormPollQuestion reports a new question to ask, with any
	// previously cached answer for it as a suggestion.
	FormPollQuestion FormPollKind = iota
	// FormPollError reports a script-validated rejection of the
	// answer just submitted. pending is left unchanged.
	FormPollError
	// FormPollDone reports that the form has completed.
	FormPollDone
)

// FormPoll is the result of Progress: the canonical sum type over a new
// question, a script-level error, or completion.
type FormPoll struct {
	Kind            FormPollKind
	Question        Question
	SuggestedAnswer Answer
	ErrorMessage    string
}

// Progress answers the question at ledger index i and advances (or
// rewinds) the form. This is the heart of the engine — see
// SPEC_FULL.md §4.5 for the full algorithm this implements verbatim.
func (e *Engine) Progress(i int, answer Answer) (FormPoll, error) {
	n := e.ledger.Len()

	var id string
	var question Question
	var priorSnapshot Snapshot
	var clobber bool

	switch {
	case i < n:
		// Rewind: re-answer an already-accepted question, which will
		// clobber any later history once the script confirms the new
		// answer is accepted.
		var ok bool
		id, question, priorSnapshot, ok = e.ledger.Get(i)
		if !ok {
			// Reached only for a negative i; keep the zero value path
			// explicit rather than indexing blindly.
			return FormPoll{}, newErr(InvalidResult, "ledger entry vanished during rewind")
		}
		clobber = true
	default:
		// Advance (i == n), or i > n treated identically per the
		// preserved legacy behaviour (SPEC_FULL.md §9 Open Questions).
		if e.pending.state.done {
			return FormPoll{Kind: FormPollDone}, nil
		}
		id = e.pending.state.id
		question = e.pending.state.question
		priorSnapshot = e.pending.snapshot
		clobber = false
	}

	if err := validateAnswer(question, answer); err != nil {
		return FormPoll{}, err
	}

	step, err := e.adapter.invoke(priorSnapshot, answer, e.paramsSnapshot)
	if err != nil {
		// Hard error: no state mutated.
		return FormPoll{}, err
	}
	newState, scriptErrMsg, err := decodeScriptState(step.tag, step.payload)
	if err != nil {
		// Malformed script output: hard error, no state mutated.
		return FormPoll{}, err
	}
	if scriptErrMsg != "" {
		// Soft error: pending, answers, and ledger are all left
		// exactly as they were. The caller re-asks with a different
		// answer.
		formlog.WithSession(e.sessionID).Debug("script rejected answer", "question_id", id, "error", scriptErrMsg)
		return FormPoll{Kind: FormPollError, ErrorMessage: scriptErrMsg}, nil
	}

	// Commit: cache the accepted answer, then either clobber (rewind)
	// or append (advance) the previous pending step into the ledger.
	e.ledger.SetAnswer(id, answer)
	if clobber {
		e.ledger.Truncate(i + 1)
		formlog.WithSession(e.sessionID).Debug("rewind clobbered history", "index", i, "new_len", e.ledger.Len())
	} else {
		e.ledger.Push(id, question, priorSnapshot, answer)
	}
	e.pending = pendingStep{state: newState, snapshot: step.snapshot}

	if e.pending.state.done {
		return FormPoll{Kind: FormPollDone}, nil
	}
	suggested, _ := e.ledger.CachedAnswer(e.pending.state.id)
	return FormPoll{
		Kind:            FormPollQuestion,
		Question:        e.pending.state.question,
		SuggestedAnswer: suggested,
	}, nil
}

// IntoResult returns the script's final document once the form is
// Done. If the form is still asking questions, it returns an error with
// Kind NotDone and leaves the engine untouched so the caller can keep
// using it.
func (e *Engine) IntoResult() (interface{}, error) {
	if !e.pending.state.done {
		return nil, newErr(NotDone, "form has not finished asking questions")
	}
	return e.pending.state.result, nil
}
