package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultGCPVoice    = "en-US-Neural2-D"
	DefaultGCPLanguage = "en-US"
)

// GCPClient is the subset of the Cloud Text-to-Speech client used here.
type GCPClient interface {
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GCPSynthesizer speaks through Google Cloud Text-to-Speech.
type GCPSynthesizer struct {
	client   GCPClient
	voice    string
	language string
}

// NewGCPSynthesizer creates a client using Application Default Credentials.
// A non-empty projectID is billed as the quota project.
func NewGCPSynthesizer(ctx context.Context, voice, lang, projectID string) (*GCPSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx, gcpClientOptions(projectID)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}
	return NewGCPSynthesizerWithClient(client, voice, lang), nil
}

func gcpClientOptions(projectID string) []option.ClientOption {
	if projectID == "" {
		return nil
	}
	return []option.ClientOption{option.WithQuotaProject(projectID)}
}

// NewGCPSynthesizerWithClient wraps an existing client.
func NewGCPSynthesizerWithClient(client GCPClient, voice, lang string) *GCPSynthesizer {
	if voice == "" {
		voice = DefaultGCPVoice
	}
	if lang == "" {
		lang = languageFromVoice(voice)
	}
	return &GCPSynthesizer{client: client, voice: voice, language: lang}
}

// Name returns the provider name
func (p *GCPSynthesizer) Name() string {
	return "gcp"
}

// ListVoices returns the voices for the configured language.
func (p *GCPSynthesizer) ListVoices(ctx context.Context) ([]Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{LanguageCode: p.language})
	if err != nil {
		return nil, describeRPCError("failed to list GCP voices", err)
	}

	voices := make([]Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		gender := "unknown"
		switch v.SsmlGender {
		case texttospeechpb.SsmlVoiceGender_MALE:
			gender = "male"
		case texttospeechpb.SsmlVoiceGender_FEMALE:
			gender = "female"
		case texttospeechpb.SsmlVoiceGender_NEUTRAL:
			gender = "neutral"
		}

		lang := p.language
		if len(v.LanguageCodes) > 0 {
			lang = v.LanguageCodes[0]
		}

		voices = append(voices, Voice{
			ID:          v.Name,
			Name:        v.Name,
			Language:    lang,
			Gender:      gender,
			Description: fmt.Sprintf("%d Hz natural sample rate", v.NaturalSampleRateHertz),
		})
	}
	return voices, nil
}

// Synthesize generates audio from text using Google Cloud TTS.
func (p *GCPSynthesizer) Synthesize(ctx context.Context, text string, options Options) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voice := p.voice
	if options.Voice != "" {
		voice = options.Voice
	}

	lang := p.language
	if options.Language != "" {
		lang = options.Language
	} else if options.Voice != "" {
		lang = languageFromVoice(voice)
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: lang,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: audioEncoding(options.Format),
			SpeakingRate:  speakingRate(options.Speed),
		},
	}

	log.Debug().
		Str("voice", voice).
		Str("language", lang).
		Str("format", options.Format).
		Msg("Making GCP TTS synthesis request")

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, describeRPCError("failed to synthesize speech", err)
	}

	return io.NopCloser(bytes.NewReader(resp.AudioContent)), nil
}

// Close closes the GCP client
func (p *GCPSynthesizer) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// describeRPCError adds a hint for the gRPC status codes caused by setup problems.
func describeRPCError(msg string, err error) error {
	switch status.Code(err) {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%s (check GOOGLE_APPLICATION_CREDENTIALS): %w", msg, err)
	case codes.InvalidArgument:
		return fmt.Errorf("%s (check voice and language settings): %w", msg, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

// languageFromVoice extracts the language from a voice name (en-US-Neural2-D -> en-US).
func languageFromVoice(voice string) string {
	parts := strings.Split(voice, "-")
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return DefaultGCPLanguage
}

func audioEncoding(format string) texttospeechpb.AudioEncoding {
	switch strings.ToLower(format) {
	case "wav", "linear16", "pcm":
		return texttospeechpb.AudioEncoding_LINEAR16
	case "ogg", "ogg_opus":
		return texttospeechpb.AudioEncoding_OGG_OPUS
	default:
		return texttospeechpb.AudioEncoding_MP3
	}
}

// speakingRate clamps speed to the 0.25-4.0 range GCP accepts.
func speakingRate(speed float64) float64 {
	switch {
	case speed <= 0:
		return 1.0
	case speed < 0.25:
		return 0.25
	case speed > 4.0:
		return 4.0
	default:
		return speed
	}
}
