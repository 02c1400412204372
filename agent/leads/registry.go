package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

// MemoryRegistry keeps leads in process memory, keyed by lead id. A single
// mutex guards the map, so the read-modify-write in UpdateStatus and
// AppendNotes is atomic per lead id and concurrent edits cannot lose updates.
type MemoryRegistry struct {
	mu    sync.Mutex
	leads map[string]contractx.Lead

	now func() time.Time
}

var _ contractx.LeadRegistry = (*MemoryRegistry)(nil)

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		leads: make(map[string]contractx.Lead),
		now:   time.Now,
	}
}

func (r *MemoryRegistry) Create(ctx context.Context, sessionID, userID string, info contractx.CustomerInfo, conversationSnapshot string) (contractx.Lead, error) {
	lead := contractx.Lead{
		LeadID:                  uuid.NewString(),
		SessionID:               sessionID,
		UserID:                  userID,
		CustomerInfo:            info,
		FullConversationHistory: conversationSnapshot,
		CreatedAt:               r.now().UTC(),
		Status:                  contractx.LeadStatusNew,
	}

	r.mu.Lock()
	r.leads[lead.LeadID] = lead
	r.mu.Unlock()

	return lead, nil
}

func (r *MemoryRegistry) Get(ctx context.Context, leadID string) (contractx.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[leadID]
	if !ok {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, leadID)
	}
	return lead, nil
}

// List returns a snapshot of all leads, safe to iterate while the registry
// keeps mutating. Order is unspecified.
func (r *MemoryRegistry) List(ctx context.Context) ([]contractx.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]contractx.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (r *MemoryRegistry) UpdateStatus(ctx context.Context, leadID, status string) (contractx.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[leadID]
	if !ok {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, leadID)
	}
	updated := lead.WithStatus(status)
	r.leads[leadID] = updated
	return updated, nil
}

func (r *MemoryRegistry) AppendNotes(ctx context.Context, leadID, note string) (contractx.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[leadID]
	if !ok {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, leadID)
	}
	notes := note
	if lead.Notes != "" {
		notes = lead.Notes + "\n" + note
	}
	updated := lead.WithNotes(notes)
	r.leads[leadID] = updated
	return updated, nil
}
