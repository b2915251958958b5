package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You summarize video transcripts. Produce a concise, well-structured " +
	"summary of the key points. Use short paragraphs. Do not mention that you are " +
	"working from a transcript."

// maxTranscriptChars bounds the prompt; transcripts beyond this are truncated
// from the end, which keeps the opening context intact.
const maxTranscriptChars = 48000

// Summarizer streams LLM summaries of video transcripts.
type Summarizer struct {
	transcripts *TranscriptClient
	client      *openai.Client
	model       string
	configured  bool
	log         *logrus.Logger
}

// NewSummarizer builds a summarizer. An empty API key leaves it unconfigured;
// Stream then fails fast with ErrRelay.
func NewSummarizer(transcripts *TranscriptClient, apiKey, baseURL, model string, log *logrus.Logger) *Summarizer {
	s := &Summarizer{
		transcripts: transcripts,
		model:       model,
		configured:  apiKey != "",
		log:         log,
	}
	if s.model == "" {
		s.model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	s.client = openai.NewClientWithConfig(cfg)
	return s
}

// Configured reports whether a completion-API credential is present.
func (s *Summarizer) Configured() bool { return s.configured }

// TranscriptHealthy probes the transcript collaborator.
func (s *Summarizer) TranscriptHealthy(ctx context.Context) bool {
	return s.transcripts.Healthy(ctx)
}

// Stream fetches the transcript for videoURL and relays the completion stream
// through emit, one content delta per call. It stops promptly when ctx is
// cancelled or emit returns an error (caller disconnected), closing the
// upstream stream rather than draining it.
func (s *Summarizer) Stream(ctx context.Context, videoURL string, emit func(delta string) error) error {
	if !s.configured {
		return fmt.Errorf("%w: completion API credential not configured", ErrRelay)
	}

	transcript, err := s.transcripts.Fetch(ctx, videoURL)
	if err != nil {
		return err
	}

	text := transcript.Text
	if len(text) > maxTranscriptChars {
		text = text[:maxTranscriptChars]
	}
	userPrompt := fmt.Sprintf("Video title: %s\n\nTranscript:\n%s", transcript.VideoTitle, text)

	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Stream: true,
	})
	if err != nil {
		return fmt.Errorf("%w: completion request: %v", ErrRelay, err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: completion stream: %v", ErrRelay, err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := emit(delta); err != nil {
			s.log.WithError(err).Debug("summary consumer went away")
			return nil
		}
	}
}
