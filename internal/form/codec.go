package form

import "fmt"

// scriptState is the internal tagged result of decoding one driver
// call: either the script wants to ask something (asking), or it has
// produced a final document (done). A script-level error is reported
// out-of-band as a plain string, matching lib.rs's nested
// Result<Result<ScriptState, String>, Error> shape.
type scriptState struct {
	done     bool
	id       string
	question Question
	result   interface{}
}

// decodeScriptState turns the (tag, payload) pair a driver call
// returned into a scriptState, or a script-level error string, or a
// hard *Error if the payload is malformed in a way the engine cannot
// recover from.
func decodeScriptState(tag string, payload interface{}) (scriptState, string, error) {
	switch tag {
	case "question":
		q, id, err := decodeQuestion(payload)
		if err != nil {
			return scriptState{}, "", err
		}
		return scriptState{id: id, question: q}, "", nil
	case "error":
		msg, ok := payload.(string)
		if !ok {
			return scriptState{}, "", newErr(NonStringErrorMessage, "error payload must be a string")
		}
		return scriptState{}, msg, nil
	case "done":
		return scriptState{done: true, result: payload}, "", nil
	default:
		return scriptState{}, "", newErr(InvalidState, fmt.Sprintf("unrecognized tag %q", tag))
	}
}

// decodeQuestion decodes a "question" tag's payload into a Question and
// its script-assigned id, per the schema in spec.md §4.2 / §6.1.
func decodeQuestion(payload interface{}) (Question, string, error) {
	data, ok := payload.(map[string]interface{})
	if !ok {
		return nil, "", newErr(NonTableQuestion, "question payload must be an object")
	}

	id, ok := stringField(data, "id")
	if !ok {
		return nil, "", newErr(NoIDInQuestionData, "missing required field \"id\"")
	}
	qType, ok := stringField(data, "type")
	if !ok {
		return nil, "", newErr(NoTypeInQuestionData, "missing required field \"type\"")
	}
	text, ok := stringField(data, "text")
	if !ok {
		return nil, "", newErr(NoBodyInQuestionData, "missing required field \"text\"")
	}
	def := optionalStringField(data, "default")

	switch qType {
	case "simple":
		return Simple{PromptText: text, Default: def}, id, nil
	case "multiline":
		return Multiline{PromptText: text, Default: def}, id, nil
	case "select":
		multiple, err := optionalBoolField(data, "multiple")
		if err != nil {
			return nil, "", err
		}
		options, ok := stringSliceField(data, "options")
		if !ok {
			return nil, "", newErr(NoOptionsInQuestionData, "missing required field \"options\" for select question")
		}
		if def != nil {
			found := false
			for _, o := range options {
				if o == *def {
					found = true
					break
				}
			}
			if !found {
				return nil, "", newErr(DefaultNotInOptions, fmt.Sprintf("default %q not in options", *def))
			}
		}
		return Select{PromptText: text, Default: def, Options: options, Multiple: multiple}, id, nil
	default:
		return nil, "", newErr(InvalidQuestionType, fmt.Sprintf("unrecognized question type %q", qType))
	}
}

func stringField(data map[string]interface{}, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func optionalStringField(data map[string]interface{}, key string) *string {
	v, ok := data[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// optionalBoolField decodes the select-only "multiple" property: absent
// or null defaults to false; present and non-boolean is a hard error.
func optionalBoolField(data map[string]interface{}, key string) (bool, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, newErr(InvalidMultipleProperty, "\"multiple\" must be a boolean")
	}
	return b, nil
}

func stringSliceField(data map[string]interface{}, key string) ([]string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, false
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
