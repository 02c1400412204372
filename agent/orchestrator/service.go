package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/i2gether/lic-agent/agent/contract"
	intentx "github.com/i2gether/lic-agent/agent/intent"
)

type Config struct {
	AppName string
}

// Orchestrator drives one exchange: it resolves identity, records the user
// turn, runs the external agent, records the answer and classifies the
// exchange.
type Orchestrator struct {
	store   contractx.ConversationLog
	runtime contractx.AgentRuntime

	sessions *sessionCache
	appName  string
}

func New(store contractx.ConversationLog, runtime contractx.AgentRuntime, cfg Config) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("conversation store is required")
	}
	if runtime == nil {
		return nil, errors.New("agent runtime is required")
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = "lic-agent"
	}

	return &Orchestrator{
		store:    store,
		runtime:  runtime,
		sessions: newSessionCache(),
		appName:  appName,
	}, nil
}

// Interact handles one user question. The user turn is recorded before the
// agent runs; an agent failure keeps that turn in history, discards any
// partial output and surfaces ErrAgentInvoke instead of an empty success.
func (o *Orchestrator) Interact(ctx context.Context, req contractx.ExchangeRequest) (contractx.ExchangeResult, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return contractx.ExchangeResult{}, fmt.Errorf("%w: question is required", contractx.ErrValidation)
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = uuid.NewString()
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	o.store.Append(sessionID, "User: "+question)

	session, err := o.sessions.getOrCreate(ctx, o.runtime, o.appName, userID, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("agent session creation failed")
		return contractx.ExchangeResult{}, fmt.Errorf("%w: create session: %v", contractx.ErrAgentInvoke, err)
	}

	stream, err := o.runtime.Run(ctx, session, question)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("agent run failed")
		return contractx.ExchangeResult{}, fmt.Errorf("%w: %v", contractx.ErrAgentInvoke, err)
	}

	var builder strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		builder.WriteString(chunk)
	}
	if err := stream.Err(); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("agent stream failed")
		return contractx.ExchangeResult{}, fmt.Errorf("%w: %v", contractx.ErrAgentInvoke, err)
	}
	answer := builder.String()

	o.store.Append(sessionID, "Agent: "+answer)

	return contractx.ExchangeResult{
		UserID:              userID,
		SessionID:           sessionID,
		Answer:              answer,
		ConversationState:   intentx.ClassifyState(question, answer),
		RequiresLeadCapture: intentx.DetectPurchaseIntent(question, answer),
	}, nil
}
