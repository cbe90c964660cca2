package form

// Question is a tagged variant over the three shapes a script can ask
// for: Simple, Multiline, and Select. It is deliberately a small closed
// set of concrete types behind an interface rather than a class
// hierarchy — each variant only ever needs to carry its own prompt data
// and validate the shape of an Answer against itself.
type Question interface {
	// Prompt returns the question text shown to the user.
	Prompt() string
	// isQuestion restricts implementations to this package's variants.
	isQuestion()
}

// Simple is a single-line text question (an HTML <input> equivalent).
type Simple struct {
	PromptText string
	Default    *string
}

func (s Simple) Prompt() string { return s.PromptText }
func (Simple) isQuestion()      {}

// Multiline is a multi-line text question (an HTML <textarea> equivalent).
type Multiline struct {
	PromptText string
	Default    *string
}

func (m Multiline) Prompt() string { return m.PromptText }
func (Multiline) isQuestion()      {}

// Select offers a fixed, ordered set of options. If Default is present
// it is guaranteed (by the codec that constructs this value) to appear
// in Options. If Multiple is false, an Answer may select at most one
// option.
type Select struct {
	PromptText string
	Default    *string
	Options    []string
	Multiple   bool
}

func (s Select) Prompt() string { return s.PromptText }
func (Select) isQuestion()      {}

// Answer is a tagged variant over the two shapes a user can respond
// with: free text, or a selection from a Select question's options.
type Answer interface {
	isAnswer()
}

// Text answers a Simple or Multiline question.
type Text string

func (Text) isAnswer() {}

// Options answers a Select question. Order is preserved because some
// select widgets (e.g. ranked choice) care about selection order, even
// though the core engine itself never reorders or dedupes it.
type Options []string

func (Options) isAnswer() {}

// validateAnswer checks that answer is shape-compatible with question,
// per spec: Simple/Multiline require Text; Select requires Options,
// further constrained by Multiple and membership in Options.
func validateAnswer(q Question, a Answer) error {
	switch qq := q.(type) {
	case Simple:
		if _, ok := a.(Text); !ok {
			return newErr(InvalidAnswerType, "text for simple/multiline question")
		}
	case Multiline:
		if _, ok := a.(Text); !ok {
			return newErr(InvalidAnswerType, "text for simple/multiline question")
		}
	case Select:
		opts, ok := a.(Options)
		if !ok {
			return newErr(InvalidAnswerType, "options for select question")
		}
		if !qq.Multiple && len(opts) > 1 {
			return newErr(InvalidAnswerType, "single option for non-multiple select question")
		}
		valid := make(map[string]struct{}, len(qq.Options))
		for _, o := range qq.Options {
			valid[o] = struct{}{}
		}
		for _, s := range opts {
			if _, ok := valid[s]; !ok {
				return newErr(InvalidAnswerType, "all options to be valid")
			}
		}
	default:
		return newErr(InvalidAnswerType, "unrecognized question variant")
	}
	return nil
}

// encodeAnswer converts an Answer into the VM-native representation the
// script's Main function expects as its second argument.
func encodeAnswer(a Answer) map[string]interface{} {
	switch v := a.(type) {
	case Text:
		return map[string]interface{}{"type": "text", "text": string(v)}
	case Options:
		selected := make([]interface{}, len(v))
		for i, s := range v {
			selected[i] = s
		}
		return map[string]interface{}{"type": "options", "selected": selected}
	default:
		return nil
	}
}
