package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

// CreatedMessage is the confirmation returned to the customer after a lead
// has been created.
const CreatedMessage = "Lead created successfully. A human agent will contact you soon."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "required" accepts all-whitespace strings; the lead contract does not.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Intake converts a finished conversation plus submitted contact details into
// a stored lead, and fronts the registry for the HTTP boundary.
type Intake struct {
	store    contractx.ConversationLog
	registry contractx.LeadRegistry
}

func NewIntake(store contractx.ConversationLog, registry contractx.LeadRegistry) (*Intake, error) {
	if store == nil {
		return nil, errors.New("conversation store is required")
	}
	if registry == nil {
		return nil, errors.New("lead registry is required")
	}
	return &Intake{store: store, registry: registry}, nil
}

// Submit validates the contact details, snapshots the session's conversation
// and creates the lead. A missing user id gets a fresh identifier, matching
// the interact flow.
func (s *Intake) Submit(ctx context.Context, sessionID, userID string, info contractx.CustomerInfo) (contractx.Lead, error) {
	if strings.TrimSpace(sessionID) == "" {
		return contractx.Lead{}, fmt.Errorf("%w: session id is required", contractx.ErrValidation)
	}
	if err := validate.Struct(info); err != nil {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrValidation, describeFieldErrors(err))
	}
	if strings.TrimSpace(userID) == "" {
		userID = uuid.NewString()
	}

	snapshot := strings.Join(s.store.History(sessionID), "\n")
	return s.registry.Create(ctx, sessionID, userID, info, snapshot)
}

// History is a pass-through to the conversation store.
func (s *Intake) History(sessionID string) []string {
	return s.store.History(sessionID)
}

// Leads is a pass-through to the registry.
func (s *Intake) Leads(ctx context.Context) ([]contractx.Lead, error) {
	return s.registry.List(ctx)
}

// Lead is a pass-through to the registry; unknown ids surface ErrNotFound.
func (s *Intake) Lead(ctx context.Context, leadID string) (contractx.Lead, error) {
	return s.registry.Get(ctx, leadID)
}

// UpdateStatus moves a lead through its lifecycle, for human agents.
func (s *Intake) UpdateStatus(ctx context.Context, leadID, status string) (contractx.Lead, error) {
	if strings.TrimSpace(status) == "" {
		return contractx.Lead{}, fmt.Errorf("%w: status is required", contractx.ErrValidation)
	}
	return s.registry.UpdateStatus(ctx, leadID, status)
}

// AppendNotes adds a human agent note to a lead.
func (s *Intake) AppendNotes(ctx context.Context, leadID, note string) (contractx.Lead, error) {
	if strings.TrimSpace(note) == "" {
		return contractx.Lead{}, fmt.Errorf("%w: notes are required", contractx.ErrValidation)
	}
	return s.registry.AppendNotes(ctx, leadID, note)
}

func describeFieldErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, strings.ToLower(fe.Field())+" is required")
	}
	return strings.Join(parts, ", ")
}
