package phrase

import (
	"context"
	"errors"
	"testing"

	"github.com/daikw/rookery/internal/completion"
	"github.com/daikw/rookery/internal/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testBird = persona.Persona{
	Name:        "TestBird",
	Persona:     "TestPersona",
	Description: "TestDescription",
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt(testBird, []string{"be witty", "short"}, []string{"Funny", "Witty"})
	want := "Character: TestBird\n" +
		"Persona: TestPersona\n" +
		"Description: TestDescription\n" +
		"Generate a phrase for this character.  It should be be witty, short.\n" +
		"TestBird [Funny,Witty]: \""
	assert.Equal(t, want, got)
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	instructions := []string{"a", "b", "c"}
	labels := []string{"X", "Y"}
	first := BuildPrompt(testBird, instructions, labels)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildPrompt(testBird, instructions, labels))
	}
}

func TestBuildPromptEmptyInstructions(t *testing.T) {
	got := BuildPrompt(testBird, nil, []string{"Witty"})
	assert.Contains(t, got, "It should be .\n")
	assert.Contains(t, got, "TestBird [Witty]: \"")
}

func TestComposerGenerate(t *testing.T) {
	t.Run("returns raw text", func(t *testing.T) {
		m := new(MockCompleter)
		prompt := BuildPrompt(testBird, []string{"be witty"}, []string{"Funny"})
		m.On("Complete", mock.Anything, prompt).Return("  Generated text ", nil).Once()

		got, err := NewComposer(m).Generate(context.Background(), testBird, []string{"be witty"}, []string{"Funny"})
		require.NoError(t, err)
		assert.Equal(t, "  Generated text ", got)
		m.AssertExpectations(t)
	})

	t.Run("propagates error unchanged", func(t *testing.T) {
		m := new(MockCompleter)
		want := &completion.RequestError{StatusCode: 500, Body: "boom"}
		m.On("Complete", mock.Anything, mock.Anything).Return("", want).Once()

		_, err := NewComposer(m).Generate(context.Background(), testBird, nil, nil)
		assert.Same(t, want, err)

		var reqErr *completion.RequestError
		assert.True(t, errors.As(err, &reqErr))
		m.AssertNumberOfCalls(t, "Complete", 1)
	})
}
