// Package store is the persistent-store wrapper: a SQLite-backed substitute
// for the browser's IndexedDB database (three keyed object stores plus the
// client-session heartbeat table) and for its Cache Storage (one named
// response-cache bucket per manifest-version hash). It follows the same
// shape as the teacher's cache.SQLiteCache: a single *sql.DB guarded by one
// write mutex, schema created with CREATE TABLE IF NOT EXISTS, and WAL mode
// for concurrent readers.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/appcacheshim/appcache/manifest"
)

// ClientBinding records which manifest version a client URL committed to.
type ClientBinding struct {
	ManifestURL string `json:"url"`
	Hash        string `json:"hash"`
}

// ClientSession is the gateway's substitute for a live browser tab: the
// last URL a clientId was seen navigating to, and when it was last seen.
type ClientSession struct {
	URL      string    `json:"url"`
	LastSeen time.Time `json:"lastSeen"`
}

// DB is the gateway's persistent store. One DB instance is opened by the
// caller (cmd/appcached), handed to CreateGateway through Config, and passed
// explicitly to every component that needs it — deliberately not a
// package-level singleton (see spec.md §9, "Singleton
// database handle").
type DB struct {
	sql   *sql.DB
	write sync.Mutex
}

// Open opens (creating if necessary) the SQLite database at path. Pass
// "memory" for an in-memory database, matching the teacher's own
// `-db memory` CLI convention.
func Open(path string) (*DB, error) {
	dsn := path
	if dsn == "memory" || dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	sdb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}
	db := &DB{sql: sdb}
	if err := db.migrate(); err != nil {
		sdb.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.sql.Close()
}

const schemaVersion = 1

func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS manifest_history (
			manifest_url TEXT PRIMARY KEY,
			history_json BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS path_to_manifest (
			client_url TEXT PRIMARY KEY,
			binding_json BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS client_id_to_hash (
			client_id TEXT PRIMARY KEY,
			hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS client_sessions (
			client_id TEXT PRIMARY KEY,
			session_json BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cache_entries (
			bucket TEXT NOT NULL,
			url TEXT NOT NULL,
			bytes BLOB NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (bucket, url)
		)`,
		`CREATE TABLE IF NOT EXISTS schema_meta (version INTEGER NOT NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.sql.Exec(stmt); err != nil {
			return fmt.Errorf("store: migrating schema: %w", err)
		}
	}
	if _, err := db.sql.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("store: enabling WAL mode: %w", err)
	}
	var count int
	if err := db.sql.QueryRow("SELECT COUNT(*) FROM schema_meta").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := db.sql.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
			return err
		}
	}
	return nil
}

// History returns the ManifestHistory recorded for manifestURL, or an empty
// History if none has been installed yet.
func (db *DB) History(manifestURL string) (manifest.History, error) {
	var blob []byte
	err := db.sql.QueryRow(
		"SELECT history_json FROM manifest_history WHERE manifest_url = ?", manifestURL,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return manifest.History{}, nil
	}
	if err != nil {
		return nil, err
	}
	var h manifest.History
	if err := json.Unmarshal(blob, &h); err != nil {
		return nil, err
	}
	return h, nil
}

// PutHistory persists h as the ManifestHistory for manifestURL.
func (db *DB) PutHistory(manifestURL string, h manifest.History) error {
	db.write.Lock()
	defer db.write.Unlock()
	blob, err := json.Marshal(h)
	if err != nil {
		return err
	}
	_, err = db.sql.Exec(
		`INSERT INTO manifest_history (manifest_url, history_json) VALUES (?, ?)
		 ON CONFLICT(manifest_url) DO UPDATE SET history_json = excluded.history_json`,
		manifestURL, blob,
	)
	return err
}

// AllManifestURLs returns every manifest URL with a recorded history.
func (db *DB) AllManifestURLs() ([]string, error) {
	rows, err := db.sql.Query("SELECT manifest_url FROM manifest_history")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// Binding returns the ClientBinding recorded for clientURL, if any.
func (db *DB) Binding(clientURL string) (ClientBinding, bool, error) {
	var blob []byte
	err := db.sql.QueryRow(
		"SELECT binding_json FROM path_to_manifest WHERE client_url = ?", clientURL,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return ClientBinding{}, false, nil
	}
	if err != nil {
		return ClientBinding{}, false, err
	}
	var b ClientBinding
	if err := json.Unmarshal(blob, &b); err != nil {
		return ClientBinding{}, false, err
	}
	return b, true, nil
}

// PutBinding records clientURL's manifest association. Never explicitly
// deleted: client URLs are a bounded set and stale entries are harmless
// (spec.md §3).
func (db *DB) PutBinding(clientURL string, b ClientBinding) error {
	db.write.Lock()
	defer db.write.Unlock()
	blob, err := json.Marshal(b)
	if err != nil {
		return err
	}
	_, err = db.sql.Exec(
		`INSERT INTO path_to_manifest (client_url, binding_json) VALUES (?, ?)
		 ON CONFLICT(client_url) DO UPDATE SET binding_json = excluded.binding_json`,
		clientURL, blob,
	)
	return err
}

// ClientHash returns the hash bound to clientID, if recorded.
func (db *DB) ClientHash(clientID string) (string, bool, error) {
	var hash string
	err := db.sql.QueryRow(
		"SELECT hash FROM client_id_to_hash WHERE client_id = ?", clientID,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hash, true, nil
}

// PutClientHash records that clientID committed to hash. Called by the
// Association Recorder on every navigation of a bound client, overwriting
// any hash recorded earlier for clientID.
func (db *DB) PutClientHash(clientID, hash string) error {
	db.write.Lock()
	defer db.write.Unlock()
	_, err := db.sql.Exec(
		`INSERT INTO client_id_to_hash (client_id, hash) VALUES (?, ?)
		 ON CONFLICT(client_id) DO UPDATE SET hash = excluded.hash`,
		clientID, hash,
	)
	return err
}

// AllClientHashes returns every recorded clientId -> hash binding.
func (db *DB) AllClientHashes() (map[string]string, error) {
	rows, err := db.sql.Query("SELECT client_id, hash FROM client_id_to_hash")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			return nil, err
		}
		out[id] = hash
	}
	return out, rows.Err()
}

// DeleteClientHash removes clientID's binding. Called by the GC Sweeper
// once clientID is no longer among the live client sessions.
func (db *DB) DeleteClientHash(clientID string) error {
	db.write.Lock()
	defer db.write.Unlock()
	_, err := db.sql.Exec("DELETE FROM client_id_to_hash WHERE client_id = ?", clientID)
	return err
}

// TouchSession records a heartbeat for clientID at url, creating the
// session if it does not yet exist. This is the gateway's substitute for a
// live `clients.matchAll()` enumeration (spec.md §4.7, remapped per
// SPEC_FULL.md §0).
func (db *DB) TouchSession(clientID, url string, at time.Time) error {
	db.write.Lock()
	defer db.write.Unlock()
	blob, err := json.Marshal(ClientSession{URL: url, LastSeen: at})
	if err != nil {
		return err
	}
	_, err = db.sql.Exec(
		`INSERT INTO client_sessions (client_id, session_json) VALUES (?, ?)
		 ON CONFLICT(client_id) DO UPDATE SET session_json = excluded.session_json`,
		clientID, blob,
	)
	return err
}

// Session returns the recorded session for clientID, if any.
func (db *DB) Session(clientID string) (ClientSession, bool, error) {
	var blob []byte
	err := db.sql.QueryRow(
		"SELECT session_json FROM client_sessions WHERE client_id = ?", clientID,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return ClientSession{}, false, nil
	}
	if err != nil {
		return ClientSession{}, false, err
	}
	var s ClientSession
	if err := json.Unmarshal(blob, &s); err != nil {
		return ClientSession{}, false, err
	}
	return s, true, nil
}

// AllSessions returns every recorded clientId -> ClientSession.
func (db *DB) AllSessions() (map[string]ClientSession, error) {
	rows, err := db.sql.Query("SELECT client_id, session_json FROM client_sessions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]ClientSession)
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, err
		}
		var s ClientSession
		if err := json.Unmarshal(blob, &s); err != nil {
			return nil, err
		}
		out[id] = s
	}
	return out, rows.Err()
}

// DeleteSession removes clientID's session row.
func (db *DB) DeleteSession(clientID string) error {
	db.write.Lock()
	defer db.write.Unlock()
	_, err := db.sql.Exec("DELETE FROM client_sessions WHERE client_id = ?", clientID)
	return err
}
