package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/schoolportal/portal/internal/fixtures"
	"github.com/schoolportal/portal/internal/models"
	"github.com/schoolportal/portal/internal/store"
)

// Schema creates the portal tables. Participants are stored ordered as
// given; the pair is matched in either direction on read.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id     TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	email  TEXT NOT NULL UNIQUE COLLATE NOCASE,
	role   TEXT NOT NULL,
	avatar TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS conversations (
	id                TEXT PRIMARY KEY,
	participant_a     TEXT NOT NULL,
	participant_b     TEXT NOT NULL,
	last_message_date DATETIME NOT NULL,
	unread_count      INTEGER NOT NULL DEFAULT 0 CHECK (unread_count >= 0),
	CHECK (participant_a <> participant_b)
);

CREATE TABLE IF NOT EXISTS messages (
	id           TEXT PRIMARY KEY,
	sender_id    TEXT NOT NULL,
	recipient_id TEXT NOT NULL,
	subject      TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL,
	sent_at      DATETIME NOT NULL,
	is_read      BOOLEAN NOT NULL DEFAULT 0,
	CHECK (sender_id <> recipient_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(sender_id, recipient_id, sent_at);
CREATE INDEX IF NOT EXISTS idx_conversations_a ON conversations(participant_a);
CREATE INDEX IF NOT EXISTS idx_conversations_b ON conversations(participant_b);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ store.Store = (*SQLiteStore)(nil)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// New opens the SQLite database at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(Schema)
		return err
	})
}

// NewWithSetup opens a SQLite store and runs a setup function.
// Useful for tests to apply a schema or seed rows directly.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Seed validates ds and inserts it in a single transaction.
func (s *SQLiteStore) Seed(ctx context.Context, ds models.Dataset) error {
	if err := fixtures.Validate(ds); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range ds.Users {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, name, email, role, avatar) VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, string(u.Role), u.Avatar)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	for _, c := range ds.Conversations {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO conversations (id, participant_a, participant_b, last_message_date, unread_count)
			 VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Participants[0], c.Participants[1], c.LastMessageDate.UTC(), c.UnreadCount)
		if err != nil {
			return fmt.Errorf("insert conversation %s: %w", c.ID, err)
		}
	}
	for _, m := range ds.Messages {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO messages (id, sender_id, recipient_id, subject, content, sent_at, is_read)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.SenderID, m.RecipientID, m.Subject, m.Content, m.Date.UTC(), m.Read)
		if err != nil {
			return fmt.Errorf("insert message %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// ==== UserStore implementation ====

// ListUsers returns every user ordered by ID.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return listUsers(ctx, s.db)
}

func listUsers(ctx context.Context, q queryer) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, email, role, avatar FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Avatar); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, name, email, role, avatar FROM users WHERE id = ?`
	return s.getUser(ctx, query, id)
}

// GetUserByEmail retrieves a user by email, ignoring case.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, role, avatar FROM users WHERE email = ?`
	return s.getUser(ctx, query, email)
}

func (s *SQLiteStore) getUser(ctx context.Context, query, arg string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", arg, store.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// ==== ConversationStore implementation ====

// ListConversations returns every conversation ordered by ID.
func (s *SQLiteStore) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return listConversations(ctx, s.db)
}

func listConversations(ctx context.Context, q queryer) ([]models.Conversation, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, participant_a, participant_b, last_message_date, unread_count
		FROM conversations
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.Participants[0], &c.Participants[1], &c.LastMessageDate, &c.UnreadCount); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// GetConversation retrieves a conversation by ID.
func (s *SQLiteStore) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	query := `
		SELECT id, participant_a, participant_b, last_message_date, unread_count
		FROM conversations
		WHERE id = ?
	`
	var c models.Conversation
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Participants[0],
		&c.Participants[1],
		&c.LastMessageDate,
		&c.UnreadCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conversation %s: %w", id, store.ErrNotFound)
		}
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	return &c, nil
}

// ==== MessageStore implementation ====

// ListMessages returns every message ordered by ID.
func (s *SQLiteStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	return listMessages(ctx, s.db)
}

func listMessages(ctx context.Context, q queryer) ([]models.Message, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, sender_id, recipient_id, subject, content, sent_at, is_read
		FROM messages
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Content, &m.Date, &m.Read); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Snapshot reads all collections inside one transaction so the three
// collections are mutually consistent.
func (s *SQLiteStore) Snapshot(ctx context.Context) (models.Dataset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var ds models.Dataset
	if ds.Users, err = listUsers(ctx, tx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Conversations, err = listConversations(ctx, tx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Messages, err = listMessages(ctx, tx); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}
