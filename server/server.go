package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

type Config struct {
	Port  int  `envconfig:"PORT" split_words:"true" default:"8080"`
	Debug bool `envconfig:"DEBUG" split_words:"true" default:"false"`
}

// Conversationalist is the orchestrator surface the HTTP layer needs.
type Conversationalist interface {
	Interact(ctx context.Context, req contractx.ExchangeRequest) (contractx.ExchangeResult, error)
}

// LeadIntake is the lead surface the HTTP layer needs.
type LeadIntake interface {
	Submit(ctx context.Context, sessionID, userID string, info contractx.CustomerInfo) (contractx.Lead, error)
	History(sessionID string) []string
	Leads(ctx context.Context) ([]contractx.Lead, error)
	Lead(ctx context.Context, leadID string) (contractx.Lead, error)
	UpdateStatus(ctx context.Context, leadID, status string) (contractx.Lead, error)
	AppendNotes(ctx context.Context, leadID, note string) (contractx.Lead, error)
}

type Server struct {
	engine       *gin.Engine
	orchestrator Conversationalist
	intake       LeadIntake
	port         int
}

var setModeOnce sync.Once

func New(cfg Config, orchestrator Conversationalist, intake LeadIntake) *Server {
	setModeOnce.Do(func() {
		if !cfg.Debug {
			gin.SetMode(gin.ReleaseMode)
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	// Dev CORS: any origin with credentials, mirroring the frontend contract.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		engine:       r,
		orchestrator: orchestrator,
		intake:       intake,
		port:         cfg.Port,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1/agent")
	api.POST("/interact", s.handleInteract)
	api.POST("/leads", s.handleSubmitLead)
	api.GET("/session/:sessionId", s.handleSessionHistory)
	api.GET("/products", s.handleListProducts)
	api.GET("/products/search", s.handleSearchProducts)

	admin := api.Group("/admin")
	admin.GET("/leads", s.handleListLeads)
	admin.GET("/leads/:leadId", s.handleGetLead)
	admin.PUT("/leads/:leadId/status", s.handleUpdateLeadStatus)
	admin.POST("/leads/:leadId/notes", s.handleAppendLeadNotes)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("starting http server")
	return s.engine.Run(fmt.Sprintf(":%d", s.port))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
