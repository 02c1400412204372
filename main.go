package main

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/i2gether/lic-agent/agent/contract"
	conversationx "github.com/i2gether/lic-agent/agent/conversation"
	leadsx "github.com/i2gether/lic-agent/agent/leads"
	orchestratorx "github.com/i2gether/lic-agent/agent/orchestrator"
	productx "github.com/i2gether/lic-agent/agent/product"
	promptx "github.com/i2gether/lic-agent/agent/prompt"
	configx "github.com/i2gether/lic-agent/pkg/config"
	logx "github.com/i2gether/lic-agent/pkg/logger"
	openaix "github.com/i2gether/lic-agent/pkg/openai"
	"github.com/i2gether/lic-agent/server"
)

type AppConfig struct {
	AppName     string `envconfig:"APP_NAME" split_words:"true" default:"lic-agent"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" split_words:"true"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("")
	openaiCfg := configx.MustNew[openaix.Config]("OPENAI")

	runtime, err := openaix.NewRuntime(*openaiCfg, promptx.System(productx.KnowledgeBase()))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize agent runtime")
	}

	store := conversationx.NewStore()
	registry := newRegistry(*appCfg)

	orchestrator, err := orchestratorx.New(store, runtime, orchestratorx.Config{AppName: appCfg.AppName})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize orchestrator")
	}

	intake, err := leadsx.NewIntake(store, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize lead intake")
	}

	httpCfg := configx.MustNew[server.Config]("HTTP")
	srv := server.New(*httpCfg, orchestrator, intake)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}

// newRegistry picks the durable Postgres registry when a DSN is configured,
// in-memory otherwise.
func newRegistry(cfg AppConfig) contractx.LeadRegistry {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return leadsx.NewMemoryRegistry()
	}

	registry, err := leadsx.NewPostgresRegistry(leadsx.PostgresConfig{DSN: cfg.PostgresDSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize postgres lead registry")
	}
	if err := registry.Init(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare leads table")
	}
	log.Info().Msg("using postgres lead registry")
	return registry
}
