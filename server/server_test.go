package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

type fakeOrchestrator struct {
	result contractx.ExchangeResult
	err    error
}

func (f *fakeOrchestrator) Interact(ctx context.Context, req contractx.ExchangeRequest) (contractx.ExchangeResult, error) {
	if f.err != nil {
		return contractx.ExchangeResult{}, f.err
	}
	return f.result, nil
}

type fakeIntake struct {
	lead    contractx.Lead
	history []string
	err     error
}

func (f *fakeIntake) Submit(ctx context.Context, sessionID, userID string, info contractx.CustomerInfo) (contractx.Lead, error) {
	if f.err != nil {
		return contractx.Lead{}, f.err
	}
	return f.lead, nil
}

func (f *fakeIntake) History(sessionID string) []string { return f.history }

func (f *fakeIntake) Leads(ctx context.Context) ([]contractx.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []contractx.Lead{f.lead}, nil
}

func (f *fakeIntake) Lead(ctx context.Context, leadID string) (contractx.Lead, error) {
	if f.err != nil {
		return contractx.Lead{}, f.err
	}
	return f.lead, nil
}

func (f *fakeIntake) UpdateStatus(ctx context.Context, leadID, status string) (contractx.Lead, error) {
	if f.err != nil {
		return contractx.Lead{}, f.err
	}
	return f.lead.WithStatus(status), nil
}

func (f *fakeIntake) AppendNotes(ctx context.Context, leadID, note string) (contractx.Lead, error) {
	if f.err != nil {
		return contractx.Lead{}, f.err
	}
	return f.lead.WithNotes(note), nil
}

func newTestServer(orch Conversationalist, intake LeadIntake) *Server {
	return New(Config{Port: 0}, orch, intake)
}

func TestInteractEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{result: contractx.ExchangeResult{
		UserID:              "u1",
		SessionID:           "s1",
		Answer:              "Hi there, welcome!",
		ConversationState:   contractx.StateGreeting,
		RequiresLeadCapture: false,
	}}, &fakeIntake{})

	body := bytes.NewBufferString(`{"question":"Hello!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/interact", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res interactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if res.Answer != "Hi there, welcome!" {
		t.Fatalf("unexpected answer: %q", res.Answer)
	}
	if res.ConversationState != contractx.StateGreeting {
		t.Fatalf("unexpected state: %s", res.ConversationState)
	}
}

func TestInteractValidationMapsTo400(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{
		err: fmt.Errorf("%w: question is required", contractx.ErrValidation),
	}, &fakeIntake{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/interact", bytes.NewBufferString(`{"question":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInteractAgentFailureMapsTo502(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{
		err: fmt.Errorf("%w: model timeout", contractx.ErrAgentInvoke),
	}, &fakeIntake{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/interact", bytes.NewBufferString(`{"question":"Hello!"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestSubmitLeadReturnsConfirmation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{}, &fakeIntake{lead: contractx.Lead{
		LeadID: "lead-1",
		Status: contractx.LeadStatusNew,
	}})

	body := bytes.NewBufferString(`{"sessionId":"s1","name":"Jane Doe","phone":"+15550100","email":"jane@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/leads", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res leadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if res.LeadID != "lead-1" || res.Status != contractx.LeadStatusNew {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.Message == "" {
		t.Fatal("confirmation message missing")
	}
}

func TestGetLeadNotFoundMapsTo404(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{}, &fakeIntake{
		err: fmt.Errorf("%w: missing", contractx.ErrNotFound),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agent/admin/leads/missing", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSessionHistoryEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{}, &fakeIntake{
		history: []string{"User: hello", "Agent: hi"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agent/session/s1", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var res sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if res.SessionID != "s1" || len(res.ConversationHistory) != 2 {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestProductsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(&fakeOrchestrator{}, &fakeIntake{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agent/products", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var res []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(res) != 5 {
		t.Fatalf("expected 5 products, got %d", len(res))
	}
}
