package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	Temperature float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// Runtime adapts streaming chat completions to the agent runtime contract.
// Each session accumulates its message history, so follow-up questions carry
// the context of earlier exchanges.
type Runtime struct {
	client       *openaisdk.Client
	model        string
	temperature  float64
	systemPrompt string
}

var _ contractx.AgentRuntime = (*Runtime)(nil)

func NewRuntime(cfg Config, systemPrompt string) (*Runtime, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &Runtime{
		client:       &client,
		model:        strings.TrimSpace(cfg.Model),
		temperature:  cfg.Temperature,
		systemPrompt: strings.TrimSpace(systemPrompt),
	}, nil
}

type session struct {
	id string

	mu       sync.Mutex
	messages []openaisdk.ChatCompletionMessageParamUnion
}

func (s *session) ID() string { return s.id }

func (s *session) snapshotWith(question string) []openaisdk.ChatCompletionMessageParamUnion {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, openaisdk.UserMessage(question))
	out := make([]openaisdk.ChatCompletionMessageParamUnion, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *session) remember(answer string) {
	if answer == "" {
		return
	}
	s.mu.Lock()
	s.messages = append(s.messages, openaisdk.AssistantMessage(answer))
	s.mu.Unlock()
}

func (r *Runtime) CreateSession(ctx context.Context, appName, userID, sessionID string) (contractx.AgentSession, error) {
	s := &session{id: sessionID}
	if r.systemPrompt != "" {
		s.messages = append(s.messages, openaisdk.SystemMessage(r.systemPrompt))
	}
	return s, nil
}

func (r *Runtime) Run(ctx context.Context, sess contractx.AgentSession, question string) (contractx.AnswerStream, error) {
	s, ok := sess.(*session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type %T", sess)
	}

	raw := r.client.Chat.Completions.NewStreaming(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(r.model),
		Messages:    s.snapshotWith(question),
		Temperature: openaisdk.Float(r.temperature),
	})

	return &answerStream{raw: raw, session: s}, nil
}

// answerStream surfaces non-empty content deltas one at a time. When the
// underlying stream ends cleanly, the joined answer is written back to the
// session so the next exchange sees it.
type answerStream struct {
	raw     *ssestream.Stream[openaisdk.ChatCompletionChunk]
	session *session

	current    string
	answer     strings.Builder
	remembered bool
}

func (a *answerStream) Next() bool {
	for a.raw.Next() {
		chunk := a.raw.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		a.current = delta
		a.answer.WriteString(delta)
		return true
	}

	if !a.remembered && a.raw.Err() == nil {
		a.remembered = true
		a.session.remember(a.answer.String())
	}
	return false
}

func (a *answerStream) Current() string { return a.current }

func (a *answerStream) Err() error { return a.raw.Err() }
