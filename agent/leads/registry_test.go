package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

func customerInfoFixture() contractx.CustomerInfo {
	return contractx.CustomerInfo{
		FullName:    "Jane Doe",
		PhoneNumber: "+15550100",
		Email:       "jane@example.com",
	}
}

func TestCreateLeadDefaults(t *testing.T) {
	t.Parallel()

	registry := NewMemoryRegistry()
	lead, err := registry.Create(context.Background(), "s1", "u1", customerInfoFixture(), "User: hi\nAgent: hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.LeadID == "" {
		t.Fatal("lead id must be generated")
	}
	if lead.Status != contractx.LeadStatusNew {
		t.Fatalf("expected status NEW, got %q", lead.Status)
	}
	if lead.CreatedAt.IsZero() {
		t.Fatal("created at must be set")
	}
	if lead.FullConversationHistory != "User: hi\nAgent: hello" {
		t.Fatalf("unexpected snapshot: %q", lead.FullConversationHistory)
	}
}

func TestGetUnknownLead(t *testing.T) {
	t.Parallel()

	registry := NewMemoryRegistry()
	if _, err := registry.Get(context.Background(), "missing"); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := registry.UpdateStatus(context.Background(), "missing", "CONTACTED"); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from UpdateStatus, got %v", err)
	}
	if _, err := registry.AppendNotes(context.Background(), "missing", "note"); !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from AppendNotes, got %v", err)
	}
}

func TestUpdateStatusReplacesStoredLead(t *testing.T) {
	t.Parallel()

	registry := NewMemoryRegistry()
	lead, err := registry.Create(context.Background(), "s1", "u1", customerInfoFixture(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := registry.UpdateStatus(context.Background(), lead.LeadID, "CONTACTED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "CONTACTED" {
		t.Fatalf("expected CONTACTED, got %q", updated.Status)
	}

	stored, err := registry.Get(context.Background(), lead.LeadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != "CONTACTED" {
		t.Fatalf("stored lead not replaced, status %q", stored.Status)
	}
}

func TestAppendNotesAccumulates(t *testing.T) {
	t.Parallel()

	registry := NewMemoryRegistry()
	lead, err := registry.Create(context.Background(), "s1", "u1", customerInfoFixture(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := registry.AppendNotes(context.Background(), lead.LeadID, "called, no answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Notes != "called, no answer" {
		t.Fatalf("unexpected notes: %q", first.Notes)
	}

	second, err := registry.AppendNotes(context.Background(), lead.LeadID, "reached, call back tomorrow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Notes != "called, no answer\nreached, call back tomorrow" {
		t.Fatalf("unexpected notes: %q", second.Notes)
	}
}

func TestConcurrentAppendNotesLosesNothing(t *testing.T) {
	t.Parallel()

	registry := NewMemoryRegistry()
	lead, err := registry.Create(context.Background(), "s1", "u1", customerInfoFixture(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := registry.AppendNotes(context.Background(), lead.LeadID, fmt.Sprintf("note-%d", i)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	stored, err := registry.Get(context.Background(), lead.LeadID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(stored.Notes, "\n")
	if len(lines) != writers {
		t.Fatalf("expected %d note lines, got %d", writers, len(lines))
	}
	seen := make(map[string]bool, writers)
	for _, line := range lines {
		seen[line] = true
	}
	for i := 0; i < writers; i++ {
		if !seen[fmt.Sprintf("note-%d", i)] {
			t.Fatalf("note-%d was lost", i)
		}
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	t.Parallel()

	registry := NewMemoryRegistry()
	for i := 0; i < 3; i++ {
		if _, err := registry.Create(context.Background(), fmt.Sprintf("s%d", i), "u1", customerInfoFixture(), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	leads, err := registry.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(leads))
	}

	// The snapshot must stay stable while the registry keeps mutating.
	if _, err := registry.Create(context.Background(), "s-late", "u1", customerInfoFixture(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("snapshot mutated, got %d leads", len(leads))
	}
}
