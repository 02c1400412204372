package contract

import "context"

// AgentSession is an opaque handle to one conversation inside the external
// agent runtime.
type AgentSession interface {
	ID() string
}

// AnswerStream yields the runtime's answer as ordered text fragments.
// Next advances to the next fragment; once it returns false, Err reports
// whether the stream ended cleanly.
type AnswerStream interface {
	Next() bool
	Current() string
	Err() error
}

// AgentRuntime is the external language-model collaborator. The core treats it
// as a black box that returns zero or more text fragments per question.
type AgentRuntime interface {
	CreateSession(ctx context.Context, appName, userID, sessionID string) (AgentSession, error)
	Run(ctx context.Context, session AgentSession, question string) (AnswerStream, error)
}

// ConversationLog owns per-session message history. Append never fails;
// History returns turns in insertion order, empty when the session is unknown.
type ConversationLog interface {
	Append(sessionID, message string)
	History(sessionID string) []string
}

// LeadRegistry owns the lead collection and its lifecycle. Get, UpdateStatus
// and AppendNotes fail with ErrNotFound for unknown ids; the read-modify-write
// of the two mutators is atomic per lead id.
type LeadRegistry interface {
	Create(ctx context.Context, sessionID, userID string, info CustomerInfo, conversationSnapshot string) (Lead, error)
	Get(ctx context.Context, leadID string) (Lead, error)
	List(ctx context.Context) ([]Lead, error)
	UpdateStatus(ctx context.Context, leadID, status string) (Lead, error)
	AppendNotes(ctx context.Context, leadID, note string) (Lead, error)
}
