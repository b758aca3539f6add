// Package store is the panel's durable state: nodes, node auth tokens,
// failed auth attempts, peak events and accumulated user traffic. It is a
// thin layer over an embedded sqlite database; callers get model types in
// and out, never SQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	_ "modernc.org/sqlite"

	"github.com/wildosvpn/fleet/structs"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	address           TEXT    NOT NULL,
	port              INTEGER NOT NULL,
	usage_coefficient REAL    NOT NULL DEFAULT 1.0,
	status            TEXT    NOT NULL DEFAULT 'healthy',
	message           TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS node_tokens (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	node_id     INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	token_hash  TEXT    NOT NULL UNIQUE,
	created_at  INTEGER NOT NULL,
	expires_at  INTEGER NOT NULL,
	is_active   INTEGER NOT NULL DEFAULT 1,
	last_used   INTEGER NOT NULL DEFAULT 0,
	usage_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS node_tokens_node_id ON node_tokens(node_id);

CREATE TABLE IF NOT EXISTS failed_auth_attempts (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	node_id      INTEGER NOT NULL,
	attempted_at INTEGER NOT NULL,
	reason       TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS failed_auth_node_time ON failed_auth_attempts(node_id, attempted_at);

CREATE TABLE IF NOT EXISTS peak_events (
	node_id        INTEGER NOT NULL,
	dedupe_key     TEXT    NOT NULL,
	seq            INTEGER NOT NULL,
	category       TEXT    NOT NULL,
	metric         TEXT    NOT NULL,
	level          TEXT    NOT NULL,
	value          REAL    NOT NULL,
	threshold      REAL    NOT NULL,
	context_json   TEXT    NOT NULL DEFAULT '',
	started_at_ms  INTEGER NOT NULL,
	resolved_at_ms INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (node_id, dedupe_key, started_at_ms)
);

CREATE INDEX IF NOT EXISTS peak_events_started ON peak_events(node_id, started_at_ms);

CREATE TABLE IF NOT EXISTS node_backends (
	node_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	name    TEXT    NOT NULL,
	type    TEXT    NOT NULL,
	version TEXT    NOT NULL DEFAULT '',
	running INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (node_id, name)
);

CREATE TABLE IF NOT EXISTS node_inbounds (
	node_id  INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	backend  TEXT    NOT NULL,
	tag      TEXT    NOT NULL,
	protocol TEXT    NOT NULL DEFAULT '',
	port     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (node_id, backend, tag)
);

CREATE TABLE IF NOT EXISTS user_usages (
	user_id    INTEGER PRIMARY KEY,
	used_bytes INTEGER NOT NULL DEFAULT 0
);
`

// Store wraps the panel database.
type Store struct {
	logger hclog.Logger
	db     *sql.DB
}

// Open opens (or creates) the panel database at path and applies the schema.
func Open(logger hclog.Logger, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open panel database: %w", err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{logger: logger.Named("store"), db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateNode inserts a node and returns it with its assigned id.
func (s *Store) CreateNode(ctx context.Context, node *structs.Node) (*structs.Node, error) {
	if node.Status == "" {
		node.Status = structs.NodeStatusHealthy
	}
	if node.UsageCoefficient == 0 {
		node.UsageCoefficient = 1.0
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO nodes (address, port, usage_coefficient, status, message) VALUES (?, ?, ?, ?, ?)`,
		node.Address, node.Port, node.UsageCoefficient, string(node.Status), node.Message)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	node.ID = id
	return node, nil
}

// GetNode returns a node by id, or nil when absent.
func (s *Store) GetNode(ctx context.Context, id int64) (*structs.Node, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, address, port, usage_coefficient, status, message FROM nodes WHERE id = ?`, id)
	return scanNode(row)
}

// ListNodes returns all nodes ordered by id.
func (s *Store) ListNodes(ctx context.Context) ([]*structs.Node, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, address, port, usage_coefficient, status, message FROM nodes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*structs.Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanNode(row scanner) (*structs.Node, error) {
	var node structs.Node
	var status string
	err := row.Scan(&node.ID, &node.Address, &node.Port, &node.UsageCoefficient, &status, &node.Message)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	node.Status = structs.NodeStatus(status)
	return &node, nil
}

// UpdateNodeStatus records a node's health transition.
func (s *Store) UpdateNodeStatus(ctx context.Context, id int64, status structs.NodeStatus, message string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE nodes SET status = ?, message = ? WHERE id = ?`, string(status), message, id)
	return err
}

// DeleteNode removes a node. Its tokens cascade.
func (s *Store) DeleteNode(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
	return err
}

// CreateToken persists a new token record and returns its id.
func (s *Store) CreateToken(ctx context.Context, token *structs.NodeToken) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO node_tokens (node_id, token_hash, created_at, expires_at, is_active) VALUES (?, ?, ?, ?, 1)`,
		token.NodeID, token.TokenHash, token.CreatedAt.UnixMilli(), token.ExpiresAt.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetTokenByHash looks a token up by its hash, or nil when absent.
func (s *Store) GetTokenByHash(ctx context.Context, hash string) (*structs.NodeToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, node_id, token_hash, created_at, expires_at, is_active, last_used, usage_count
		 FROM node_tokens WHERE token_hash = ?`, hash)
	return scanToken(row)
}

// ActiveTokens returns all active tokens for a node.
func (s *Store) ActiveTokens(ctx context.Context, nodeID int64) ([]*structs.NodeToken, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, node_id, token_hash, created_at, expires_at, is_active, last_used, usage_count
		 FROM node_tokens WHERE node_id = ? AND is_active = 1 ORDER BY id`, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*structs.NodeToken
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func scanToken(row scanner) (*structs.NodeToken, error) {
	var token structs.NodeToken
	var createdAt, expiresAt, lastUsed int64
	var active int
	err := row.Scan(&token.ID, &token.NodeID, &token.TokenHash, &createdAt, &expiresAt, &active, &lastUsed, &token.UsageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	token.CreatedAt = time.UnixMilli(createdAt)
	token.ExpiresAt = time.UnixMilli(expiresAt)
	token.IsActive = active == 1
	if lastUsed != 0 {
		token.LastUsed = time.UnixMilli(lastUsed)
	}
	return &token, nil
}

// DeactivateTokens marks every active token of a node inactive and returns
// the number revoked.
func (s *Store) DeactivateTokens(ctx context.Context, nodeID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE node_tokens SET is_active = 0 WHERE node_id = ? AND is_active = 1`, nodeID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RecordTokenUsage folds batched usage counts into token rows.
func (s *Store) RecordTokenUsage(ctx context.Context, counts map[int64]int64, lastUsed time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for tokenID, n := range counts {
		if _, err := tx.ExecContext(ctx,
			`UPDATE node_tokens SET usage_count = usage_count + ?, last_used = ? WHERE id = ?`,
			n, lastUsed.UnixMilli(), tokenID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PruneExpiredTokens deletes token rows past their expiry. Tokens without
// an expiry are kept.
func (s *Store) PruneExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM node_tokens WHERE expires_at > 0 AND expires_at < ?`, now.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RecordFailedAuth stores one rejected validation attempt.
func (s *Store) RecordFailedAuth(ctx context.Context, attempt *structs.FailedAuthAttempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO failed_auth_attempts (node_id, attempted_at, reason) VALUES (?, ?, ?)`,
		attempt.NodeID, attempt.AttemptedAt.UnixMilli(), attempt.Reason)
	return err
}

// CountFailedAuthSince counts a node's failed attempts at or after since.
func (s *Store) CountFailedAuthSince(ctx context.Context, nodeID int64, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM failed_auth_attempts WHERE node_id = ? AND attempted_at >= ?`,
		nodeID, since.UnixMilli()).Scan(&n)
	return n, err
}

// PruneFailedAuth deletes attempts older than before.
func (s *Store) PruneFailedAuth(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM failed_auth_attempts WHERE attempted_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearFailedAuth drops a node's failed attempts. A successful validation
// closes the lockout window, so stale failures must not count against the
// next one.
func (s *Store) ClearFailedAuth(ctx context.Context, nodeID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM failed_auth_attempts WHERE node_id = ?`, nodeID)
	return err
}

// UpsertPeakEvent records a peak observation. A peak interval is identified
// by (node_id, dedupe_key, started_at_ms); its start, upgrade and resolve
// events each carry a fresh sequence number and fold into that one row. The
// seq guard makes replays idempotent: an event older than what the row has
// already absorbed is a no-op, so a replayed warning start never downgrades
// a critical row and a resolved row stays resolved.
func (s *Store) UpsertPeakEvent(ctx context.Context, e *structs.PeakEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO peak_events
			(node_id, dedupe_key, seq, category, metric, level, value, threshold, context_json, started_at_ms, resolved_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (node_id, dedupe_key, started_at_ms) DO UPDATE SET
			seq            = excluded.seq,
			level          = excluded.level,
			value          = excluded.value,
			resolved_at_ms = CASE WHEN excluded.resolved_at_ms != 0
				THEN excluded.resolved_at_ms ELSE peak_events.resolved_at_ms END
		WHERE excluded.seq > peak_events.seq`,
		e.NodeID, e.DedupeKey, e.Seq, string(e.Category), e.Metric, string(e.Level),
		e.Value, e.Threshold, e.ContextJSON, e.StartedAtMs, e.ResolvedAtMs)
	return err
}

// PeakEventFilter narrows ListPeakEvents. Zero values mean no filter.
type PeakEventFilter struct {
	NodeID   int64
	Category structs.PeakCategory
	SinceMs  int64
	OpenOnly bool
	Limit    int
}

// ListPeakEvents returns events matching the filter, newest first.
func (s *Store) ListPeakEvents(ctx context.Context, filter PeakEventFilter) ([]*structs.PeakEvent, error) {
	query := `SELECT node_id, dedupe_key, seq, category, metric, level, value, threshold, context_json, started_at_ms, resolved_at_ms
		FROM peak_events WHERE 1=1`
	var args []interface{}

	if filter.NodeID != 0 {
		query += ` AND node_id = ?`
		args = append(args, filter.NodeID)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.SinceMs != 0 {
		query += ` AND started_at_ms >= ?`
		args = append(args, filter.SinceMs)
	}
	if filter.OpenOnly {
		query += ` AND resolved_at_ms = 0`
	}
	query += ` ORDER BY started_at_ms DESC, seq DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*structs.PeakEvent
	for rows.Next() {
		var e structs.PeakEvent
		var category, level string
		if err := rows.Scan(&e.NodeID, &e.DedupeKey, &e.Seq, &category, &e.Metric, &level,
			&e.Value, &e.Threshold, &e.ContextJSON, &e.StartedAtMs, &e.ResolvedAtMs); err != nil {
			return nil, err
		}
		e.Category = structs.PeakCategory(category)
		e.Level = structs.PeakLevel(level)
		events = append(events, &e)
	}
	return events, rows.Err()
}

// ReplaceNodeBackends overwrites the recorded back-end inventory of a node
// with what the node just reported during synchronization.
func (s *Store) ReplaceNodeBackends(ctx context.Context, nodeID int64, backends []structs.Backend) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM node_backends WHERE node_id = ?`, nodeID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM node_inbounds WHERE node_id = ?`, nodeID); err != nil {
		return err
	}

	for _, backend := range backends {
		running := 0
		if backend.Running {
			running = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO node_backends (node_id, name, type, version, running) VALUES (?, ?, ?, ?, ?)`,
			nodeID, backend.Name, string(backend.Type), backend.Version, running); err != nil {
			return err
		}
		for _, inbound := range backend.Inbounds {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO node_inbounds (node_id, backend, tag, protocol, port) VALUES (?, ?, ?, ?, ?)`,
				nodeID, backend.Name, inbound.Tag, inbound.Protocol, inbound.Port); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// ListNodeBackends returns the last reported back-end inventory of a node.
func (s *Store) ListNodeBackends(ctx context.Context, nodeID int64) ([]structs.Backend, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, version, running FROM node_backends WHERE node_id = ? ORDER BY name`, nodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var backends []structs.Backend
	index := make(map[string]int)
	for rows.Next() {
		var backend structs.Backend
		var btype string
		var running int
		if err := rows.Scan(&backend.Name, &btype, &backend.Version, &running); err != nil {
			return nil, err
		}
		backend.NodeID = nodeID
		backend.Type = structs.BackendType(btype)
		backend.Running = running == 1
		index[backend.Name] = len(backends)
		backends = append(backends, backend)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	inRows, err := s.db.QueryContext(ctx,
		`SELECT backend, tag, protocol, port FROM node_inbounds WHERE node_id = ? ORDER BY backend, tag`, nodeID)
	if err != nil {
		return nil, err
	}
	defer inRows.Close()

	for inRows.Next() {
		var backend string
		var inbound structs.Inbound
		if err := inRows.Scan(&backend, &inbound.Tag, &inbound.Protocol, &inbound.Port); err != nil {
			return nil, err
		}
		inbound.NodeID = nodeID
		if i, ok := index[backend]; ok {
			backends[i].Inbounds = append(backends[i].Inbounds, inbound)
		}
	}
	return backends, inRows.Err()
}

// AddUserUsage folds node-reported traffic deltas into per-user totals.
func (s *Store) AddUserUsage(ctx context.Context, deltas map[int64]uint64) error {
	if len(deltas) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for userID, n := range deltas {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_usages (user_id, used_bytes) VALUES (?, ?)
			ON CONFLICT (user_id) DO UPDATE SET used_bytes = used_bytes + excluded.used_bytes`,
			userID, int64(n)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UserUsage returns a user's accumulated traffic in bytes.
func (s *Store) UserUsage(ctx context.Context, userID int64) (uint64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT used_bytes FROM user_usages WHERE user_id = ?`, userID).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return uint64(n), err
}
