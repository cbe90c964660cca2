package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnswerSimpleRequiresText(t *testing.T) {
	err := validateAnswer(Simple{PromptText: "p"}, Options{"a"})
	assert.Error(t, err)
	assert.NoError(t, validateAnswer(Simple{PromptText: "p"}, Text("hi")))
}

func TestValidateAnswerMultilineRequiresText(t *testing.T) {
	err := validateAnswer(Multiline{PromptText: "p"}, Options{"a"})
	assert.Error(t, err)
	assert.NoError(t, validateAnswer(Multiline{PromptText: "p"}, Text("hi\nthere")))
}

func TestValidateAnswerSelectRejectsText(t *testing.T) {
	err := validateAnswer(Select{PromptText: "p", Options: []string{"a", "b"}}, Text("a"))
	assert.Error(t, err)
}

func TestValidateAnswerSelectSingleRejectsMultiple(t *testing.T) {
	q := Select{PromptText: "p", Options: []string{"a", "b"}, Multiple: false}
	assert.Error(t, validateAnswer(q, Options{"a", "b"}))
	assert.NoError(t, validateAnswer(q, Options{"a"}))
	assert.NoError(t, validateAnswer(q, Options{}))
}

func TestValidateAnswerSelectRejectsUnknownOption(t *testing.T) {
	q := Select{PromptText: "p", Options: []string{"a", "b"}, Multiple: true}
	assert.Error(t, validateAnswer(q, Options{"c"}))
}

func TestEncodeAnswer(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"type": "text", "text": "hi"}, encodeAnswer(Text("hi")))
	assert.Equal(t, map[string]interface{}{"type": "options", "selected": []interface{}{"a", "b"}}, encodeAnswer(Options{"a", "b"}))
}
