package voice

import (
	"context"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultPollyRegion = "us-east-1"
	DefaultPollyVoice  = "Joanna"
)

// PollyClient interface defines the methods we need from the Polly client
type PollyClient interface {
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollySynthesizer speaks through Amazon Polly.
type PollySynthesizer struct {
	client PollyClient
	voice  string
}

// NewPollySynthesizer loads AWS credentials from the default chain.
func NewPollySynthesizer(ctx context.Context, region, voice string) (*PollySynthesizer, error) {
	if region == "" {
		region = DefaultPollyRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewPollySynthesizerWithClient(polly.NewFromConfig(cfg), voice), nil
}

// NewPollySynthesizerWithClient wraps an existing client.
func NewPollySynthesizerWithClient(client PollyClient, voice string) *PollySynthesizer {
	if voice == "" {
		voice = DefaultPollyVoice
	}
	return &PollySynthesizer{client: client, voice: voice}
}

// Name returns the provider name
func (p *PollySynthesizer) Name() string {
	return "polly"
}

// ListVoices returns available Amazon Polly voices
func (p *PollySynthesizer) ListVoices(ctx context.Context) ([]Voice, error) {
	result, err := p.client.DescribeVoices(ctx, &polly.DescribeVoicesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list Polly voices: %w", err)
	}

	title := cases.Title(language.English)
	voices := make([]Voice, 0, len(result.Voices))
	for _, v := range result.Voices {
		voice := Voice{
			ID:       string(v.Id),
			Name:     aws.ToString(v.Name),
			Language: string(v.LanguageCode),
			Description: fmt.Sprintf("%s voice, %s engine supported",
				title.String(strings.ToLower(string(v.Gender))),
				formatSupportedEngines(v.SupportedEngines)),
		}

		switch v.Gender {
		case types.GenderFemale:
			voice.Gender = "female"
		case types.GenderMale:
			voice.Gender = "male"
		}

		voices = append(voices, voice)
	}

	return voices, nil
}

// Synthesize generates audio from text using Amazon Polly
func (p *PollySynthesizer) Synthesize(ctx context.Context, text string, options Options) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voiceID := options.Voice
	if voiceID == "" {
		voiceID = p.voice
	}

	var format types.OutputFormat
	switch strings.ToLower(options.Format) {
	case "", "mp3":
		format = types.OutputFormatMp3
	case "ogg":
		format = types.OutputFormatOggVorbis
	case "pcm", "wav":
		format = types.OutputFormatPcm
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", options.Format)
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: format,
		Engine:       types.EngineNeural,
		TextType:     types.TextTypeText,
	}
	if options.Language != "" {
		input.LanguageCode = types.LanguageCode(options.Language)
	}
	if rate := prosodyRate(options.Speed); rate != "" {
		input.Text = aws.String(fmt.Sprintf(`<speak><prosody rate="%s">%s</prosody></speak>`, rate, html.EscapeString(text)))
		input.TextType = types.TextTypeSsml
	}

	log.Debug().
		Str("voice_id", voiceID).
		Str("output_format", string(format)).
		Msg("Making Polly synthesis request")

	result, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	return result.AudioStream, nil
}

// formatSupportedEngines formats the list of supported engines for display
func formatSupportedEngines(engines []types.Engine) string {
	if len(engines) == 0 {
		return "unknown"
	}

	names := make([]string, len(engines))
	for i, engine := range engines {
		names[i] = string(engine)
	}
	return strings.Join(names, ", ")
}

// prosodyRate converts speed to an SSML rate within the 20-200% Polly accepts.
// Normal speed needs no SSML and yields "".
func prosodyRate(speed float64) string {
	if speed <= 0 || speed == 1 {
		return ""
	}
	speed = math.Max(0.2, math.Min(2.0, speed))
	return fmt.Sprintf("%d%%", int(math.Round(speed*100)))
}
