package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/i2gether/lic-agent/agent/contract"
)

// PostgresConfig configures the optional durable lead registry.
type PostgresConfig struct {
	DSN     string        `envconfig:"DSN" split_words:"true" required:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type leadRow struct {
	bun.BaseModel `bun:"table:leads,alias:l"`

	LeadID                  string                 `bun:"lead_id,pk"`
	SessionID               string                 `bun:"session_id,notnull"`
	UserID                  string                 `bun:"user_id,notnull"`
	CustomerInfo            contractx.CustomerInfo `bun:"customer_info,type:jsonb,notnull"`
	FullConversationHistory string                 `bun:"full_conversation_history,notnull"`
	CreatedAt               time.Time              `bun:"created_at,notnull"`
	Status                  string                 `bun:"status,notnull"`
	Notes                   string                 `bun:"notes,notnull,default:''"`
}

func (r leadRow) lead() contractx.Lead {
	return contractx.Lead{
		LeadID:                  r.LeadID,
		SessionID:               r.SessionID,
		UserID:                  r.UserID,
		CustomerInfo:            r.CustomerInfo,
		FullConversationHistory: r.FullConversationHistory,
		CreatedAt:               r.CreatedAt,
		Status:                  r.Status,
		Notes:                   r.Notes,
	}
}

// PostgresRegistry stores leads in Postgres through bun. Status and notes
// updates run as single UPDATE ... RETURNING statements, so concurrent edits
// of the same lead cannot lose each other's writes.
type PostgresRegistry struct {
	db *bun.DB
}

var _ contractx.LeadRegistry = (*PostgresRegistry)(nil)

func NewPostgresRegistry(cfg PostgresConfig) (*PostgresRegistry, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &PostgresRegistry{db: db}, nil
}

// Init creates the leads table when it does not exist yet.
func (r *PostgresRegistry) Init(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*leadRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create leads table: %w", err)
	}
	return nil
}

func (r *PostgresRegistry) Close() error {
	return r.db.Close()
}

func (r *PostgresRegistry) Create(ctx context.Context, sessionID, userID string, info contractx.CustomerInfo, conversationSnapshot string) (contractx.Lead, error) {
	row := &leadRow{
		LeadID:                  uuid.NewString(),
		SessionID:               sessionID,
		UserID:                  userID,
		CustomerInfo:            info,
		FullConversationHistory: conversationSnapshot,
		CreatedAt:               time.Now().UTC(),
		Status:                  contractx.LeadStatusNew,
	}

	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return contractx.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return row.lead(), nil
}

func (r *PostgresRegistry) Get(ctx context.Context, leadID string) (contractx.Lead, error) {
	row := new(leadRow)
	err := r.db.NewSelect().Model(row).Where("lead_id = ?", leadID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, leadID)
	}
	if err != nil {
		return contractx.Lead{}, fmt.Errorf("select lead: %w", err)
	}
	return row.lead(), nil
}

func (r *PostgresRegistry) List(ctx context.Context) ([]contractx.Lead, error) {
	var rows []leadRow
	if err := r.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select leads: %w", err)
	}

	out := make([]contractx.Lead, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.lead())
	}
	return out, nil
}

func (r *PostgresRegistry) UpdateStatus(ctx context.Context, leadID, status string) (contractx.Lead, error) {
	row := new(leadRow)
	err := r.db.NewUpdate().
		Model(row).
		Set("status = ?", status).
		Where("lead_id = ?", leadID).
		Returning("*").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, leadID)
	}
	if err != nil {
		return contractx.Lead{}, fmt.Errorf("update lead status: %w", err)
	}
	return row.lead(), nil
}

func (r *PostgresRegistry) AppendNotes(ctx context.Context, leadID, note string) (contractx.Lead, error) {
	row := new(leadRow)
	err := r.db.NewUpdate().
		Model(row).
		Set("notes = CASE WHEN notes = '' THEN ? ELSE notes || chr(10) || ? END", note, note).
		Where("lead_id = ?", leadID).
		Returning("*").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Lead{}, fmt.Errorf("%w: %s", contractx.ErrNotFound, leadID)
	}
	if err != nil {
		return contractx.Lead{}, fmt.Errorf("append lead notes: %w", err)
	}
	return row.lead(), nil
}
