package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	contractx "github.com/i2gether/lic-agent/agent/contract"
	"github.com/i2gether/lic-agent/agent/leads"
	productx "github.com/i2gether/lic-agent/agent/product"
)

type interactRequest struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

type interactResponse struct {
	UserID              string                      `json:"userId"`
	SessionID           string                      `json:"sessionId"`
	Answer              string                      `json:"answer"`
	ConversationState   contractx.ConversationState `json:"conversationState"`
	RequiresLeadCapture bool                        `json:"requiresLeadCapture"`
}

type leadRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type leadResponse struct {
	LeadID  string `json:"leadId"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type sessionResponse struct {
	SessionID           string   `json:"sessionId"`
	ConversationHistory []string `json:"conversationHistory"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) handleInteract(c *gin.Context) {
	var req interactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := s.orchestrator.Interact(c.Request.Context(), contractx.ExchangeRequest{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Question:  req.Question,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, interactResponse{
		UserID:              res.UserID,
		SessionID:           res.SessionID,
		Answer:              res.Answer,
		ConversationState:   res.ConversationState,
		RequiresLeadCapture: res.RequiresLeadCapture,
	})
}

func (s *Server) handleSubmitLead(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lead, err := s.intake.Submit(c.Request.Context(), req.SessionID, req.UserID, contractx.CustomerInfo{
		FullName:    req.Name,
		PhoneNumber: req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, leadResponse{
		LeadID:  lead.LeadID,
		Message: leads.CreatedMessage,
		Status:  lead.Status,
	})
}

func (s *Server) handleSessionHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")
	c.JSON(http.StatusOK, sessionResponse{
		SessionID:           sessionID,
		ConversationHistory: s.intake.History(sessionID),
	})
}

func (s *Server) handleListLeads(c *gin.Context) {
	all, err := s.intake.Leads(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (s *Server) handleGetLead(c *gin.Context) {
	lead, err := s.intake.Lead(c.Request.Context(), c.Param("leadId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (s *Server) handleUpdateLeadStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lead, err := s.intake.UpdateStatus(c.Request.Context(), c.Param("leadId"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (s *Server) handleAppendLeadNotes(c *gin.Context) {
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lead, err := s.intake.AppendNotes(c.Request.Context(), c.Param("leadId"), req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (s *Server) handleListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, productx.All())
}

func (s *Server) handleSearchProducts(c *gin.Context) {
	results := productx.Search(c.Query("keyword"))
	if results == nil {
		results = []productx.Product{}
	}
	c.JSON(http.StatusOK, results)
}

// writeError maps the core error taxonomy onto HTTP statuses. Agent failures
// are a distinct server error, never an empty success.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contractx.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, contractx.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, contractx.ErrAgentInvoke):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
