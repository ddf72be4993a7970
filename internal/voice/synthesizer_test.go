package voice

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/daikw/rookery/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveTo(t *testing.T) {
	t.Run("writes audio", func(t *testing.T) {
		m := &MockPollyClient{}
		m.On("SynthesizeSpeech", mock.Anything, mock.Anything).Return(&polly.SynthesizeSpeechOutput{
			AudioStream: io.NopCloser(strings.NewReader("mp3 bytes")),
		}, nil)

		path := filepath.Join(t.TempDir(), "out.mp3")
		err := SaveTo(context.Background(), NewPollySynthesizerWithClient(m, ""), "Hark!", path, Options{})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "mp3 bytes", string(data))
	})

	t.Run("synthesis error leaves no file", func(t *testing.T) {
		m := &MockPollyClient{}
		m.On("SynthesizeSpeech", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		path := filepath.Join(t.TempDir(), "out.mp3")
		err := SaveTo(context.Background(), NewPollySynthesizerWithClient(m, ""), "Hark!", path, Options{})
		assert.Error(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	_, err = New(context.Background(), &config.Voice{Provider: "elevenlabs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown voice provider")
}

func TestOptionsFrom(t *testing.T) {
	assert.Equal(t, Options{}, OptionsFrom(nil))
	assert.Equal(t, Options{Voice: "Joanna", Format: "ogg", Language: "en-US", Speed: 1.5},
		OptionsFrom(&config.Voice{Provider: "polly", Voice: "Joanna", Format: "ogg", Language: "en-US", Speed: 1.5}))
}
