package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Archive stores chat transcripts in a SQLite database so conversations can
// be reviewed or replayed as training data later.
type Archive struct {
	db         *sql.DB
	stmtInsert *sql.Stmt
}

// NewArchive initializes the transcript schema on db and returns an Archive.
// It is idempotent and safe to call on an existing database.
func NewArchive(db *sql.DB) (*Archive, error) {
	const schema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
    session_id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS chat_messages (
    message_id INTEGER PRIMARY KEY,
    session_id TEXT NOT NULL,
    input TEXT NOT NULL,
    reply TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES chat_sessions(session_id)
);
`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("could not create archive schema: %w", err)
	}

	stmtInsert, err := db.Prepare(`INSERT INTO chat_messages (session_id, input, reply, created_at) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	return &Archive{db: db, stmtInsert: stmtInsert}, nil
}

// StartSession registers a new chat session and returns its id.
func (a *Archive) StartSession() (string, error) {
	id := uuid.NewString()
	_, err := a.db.Exec(`INSERT INTO chat_sessions (session_id, started_at) VALUES (?, ?);`,
		id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("could not start session: %w", err)
	}
	return id, nil
}

// Record appends one input/reply exchange to a session. Exchanges the brain
// declined to answer are stored with a NULL reply, so they never mix with
// genuine replies that happen to be empty.
func (a *Archive) Record(sessionID, input, reply string, answered bool) error {
	_, err := a.stmtInsert.Exec(sessionID, input,
		sql.NullString{String: reply, Valid: answered},
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("could not record exchange: %w", err)
	}
	return nil
}

// Close releases the archive's prepared statements. The database connection
// itself stays owned by the caller.
func (a *Archive) Close() {
	_ = a.stmtInsert.Close()
}
