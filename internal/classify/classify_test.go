package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want PromptType
	}{
		// --- Corrections ---
		{name: "leading no", text: "no, use camelCase here", want: TypeCorrection},
		{name: "leading actually", text: "actually, put it in internal/", want: TypeCorrection},
		{name: "leading wait", text: "wait, that breaks the build", want: TypeCorrection},
		{name: "leading sorry", text: "sorry, I meant the other file", want: TypeCorrection},
		{name: "change this to", text: "please change this to a switch statement", want: TypeCorrection},
		{name: "embedded instead", text: "use tabs instead, not spaces", want: TypeCorrection},
		{name: "not like that", text: "not like that, keep the old signature", want: TypeCorrection},
		{name: "i meant", text: "I meant the config loader", want: TypeCorrection},
		{name: "thats not right", text: "that's not right, the port is 9090", want: TypeCorrection},
		{name: "leading undo", text: "undo the last change", want: TypeCorrection},
		{name: "leading revert", text: "revert that commit please", want: TypeCorrection},
		{name: "go back to", text: "let's go back to the previous approach", want: TypeCorrection},

		// --- Instructions ---
		{name: "always", text: "always run the tests before committing", want: TypeInstruction},
		{name: "never", text: "never use panic in library code", want: TypeInstruction},
		{name: "make sure to", text: "make sure to close the file handle", want: TypeInstruction},
		{name: "dont forget", text: "don't forget the error wrapping", want: TypeInstruction},
		{name: "remember to", text: "remember to update the changelog", want: TypeInstruction},
		{name: "i prefer", text: "I prefer table-driven tests", want: TypeInstruction},
		{name: "use x instead of y", text: "use zap instead of the standard logger", want: TypeInstruction},
		{name: "should be", text: "the timeout should be configurable", want: TypeInstruction},

		// --- General ---
		{name: "plain request", text: "add a health endpoint to the server", want: TypeGeneral},
		{name: "question", text: "why does the scheduler fire twice?", want: TypeGeneral},

		// --- Rule priority ---
		{name: "correction shadows always", text: "no, always use TypeScript for new files", want: TypeCorrection},
		{name: "actually shadows never", text: "actually, never mind the linter", want: TypeCorrection},

		// --- Edge cases ---
		{name: "empty text", text: "", want: TypeGeneral},
		{name: "case insensitive", text: "NO, USE SNAKE_CASE", want: TypeCorrection},
		{name: "no without separator is general", text: "nothing else needed", want: TypeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "no, always use tabs instead, I prefer them"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
	assert.Equal(t, TypeCorrection, first)
}
