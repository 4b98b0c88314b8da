package transcript

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"codefitter/internal/agent"
)

// writeTimeout bounds a single transcript insert.
const writeTimeout = 2 * time.Second

// Recorder appends dialogue messages to a DuckDB database.
type Recorder struct {
	db        *sql.DB
	sessionID string
	now       func() time.Time
}

// Open opens (or creates) the database at path and registers a new session.
func Open(ctx context.Context, path, model string) (*Recorder, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrapf(err, "transcript: open %s", path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "transcript: ping %s", path)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	r := &Recorder{db: db, sessionID: uuid.NewString(), now: time.Now}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO sessions (session_id, model, started_at) VALUES (?, ?, ?)",
		r.sessionID, model, r.now().UTC(),
	); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "transcript: insert session")
	}
	return r, nil
}

// SessionID identifies the rows written by this recorder.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record stores one message at position seq.
func (r *Recorder) Record(ctx context.Context, seq int, msg agent.Message) error {
	row := messageRow{role: string(msg.Role())}
	switch m := msg.(type) {
	case agent.SystemMessage:
		row.content = nullString(m.Content)
	case agent.UserMessage:
		row.content = nullString(m.Content)
	case agent.AssistantMessage:
		row.content = nullString(m.Content)
		row.reasoning = nullString(m.Reasoning)
		if m.ToolCall != nil {
			row.toolCallID = nullString(m.ToolCall.ID)
			row.toolName = nullString(m.ToolCall.Name)
			row.toolArguments = nullString(m.ToolCall.Arguments)
		}
	case agent.ToolMessage:
		row.content = nullString(m.Content)
		row.toolCallID = nullString(m.ToolCallID)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, seq, role, content, reasoning, tool_call_id, tool_name, tool_arguments, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.sessionID, seq, row.role, row.content, row.reasoning, row.toolCallID, row.toolName, row.toolArguments, r.now().UTC(),
	)
	return errors.Wrapf(err, "transcript: insert message %d", seq)
}

// Observe records a message and only logs failures. It matches agent.AppendFunc.
func (r *Recorder) Observe(seq int, msg agent.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := r.Record(ctx, seq, msg); err != nil {
		log.Warn().Err(err).Str("session_id", r.sessionID).Int("seq", seq).Msg("transcript write failed")
	}
}

// Close releases the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

type messageRow struct {
	role          string
	content       sql.NullString
	reasoning     sql.NullString
	toolCallID    sql.NullString
	toolName      sql.NullString
	toolArguments sql.NullString
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
