package contract

import "time"

// ConversationState is a coarse label of what phase an exchange is in.
// It is derived per exchange, never stored.
type ConversationState string

const (
	StateGreeting              ConversationState = "GREETING"
	StateNeedsAssessment       ConversationState = "NEEDS_ASSESSMENT"
	StateProductRecommendation ConversationState = "PRODUCT_RECOMMENDATION"
	StateLeadCapture           ConversationState = "LEAD_CAPTURE"
)

// ExchangeRequest is one inbound user question. UserID and SessionID may be
// empty; the orchestrator generates fresh identifiers when they are.
type ExchangeRequest struct {
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Question  string `json:"question"`
}

// ExchangeResult is the structured outcome of one exchange.
type ExchangeResult struct {
	UserID              string            `json:"user_id"`
	SessionID           string            `json:"session_id"`
	Answer              string            `json:"answer"`
	ConversationState   ConversationState `json:"conversation_state"`
	RequiresLeadCapture bool              `json:"requires_lead_capture"`
}

// CustomerInfo is the contact detail block submitted when a conversation is
// converted into a lead. FullName, PhoneNumber and Email must be non-blank.
type CustomerInfo struct {
	FullName            string            `json:"fullName" validate:"notblank"`
	PhoneNumber         string            `json:"phoneNumber" validate:"notblank"`
	Email               string            `json:"email" validate:"notblank"`
	ConversationSummary string            `json:"conversationSummary,omitempty"`
	MentionedProducts   []string          `json:"mentionedProducts,omitempty"`
	CustomerConcerns    []string          `json:"customerConcerns,omitempty"`
	AdditionalNotes     map[string]string `json:"additionalNotes,omitempty"`
}

// LeadStatusNew is the status every freshly created lead carries.
const LeadStatusNew = "NEW"

// Lead is a qualified sales opportunity. FullConversationHistory is a snapshot
// joined at creation time, decoupled from the live conversation afterwards.
// Mutations (status, notes) replace the stored value under the same LeadID.
type Lead struct {
	LeadID                  string       `json:"leadId"`
	SessionID               string       `json:"sessionId"`
	UserID                  string       `json:"userId"`
	CustomerInfo            CustomerInfo `json:"customerInfo"`
	FullConversationHistory string       `json:"fullConversationHistory"`
	CreatedAt               time.Time    `json:"createdAt"`
	Status                  string       `json:"status"`
	Notes                   string       `json:"notes,omitempty"`
}

// WithStatus returns a copy of the lead carrying the new status.
func (l Lead) WithStatus(status string) Lead {
	l.Status = status
	return l
}

// WithNotes returns a copy of the lead carrying the new notes value.
func (l Lead) WithNotes(notes string) Lead {
	l.Notes = notes
	return l
}
