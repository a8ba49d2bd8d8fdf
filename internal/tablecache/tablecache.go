// Package tablecache persists a built sltab.Tables as a serialized
// blob in a local sqlite database, keyed by a hash of the two source
// CSV files' contents, so a course running mgolc over and over against
// the same bundled tables skips re-parsing the CSVs on every
// invocation.
//
// Grounded on server/dao/sqlite's sql.Open("sqlite", ...) + rezi
// binary serialization pattern (server/dao/sqlite/sqlite.go's
// convertToDB_GameStatePtr/convertFromDB_GameStatePtr), narrowed from
// a full DAO layer to the one cache table this package needs.
package tablecache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/dekarrin/mgolc/internal/sltab"
	"github.com/dekarrin/rezi"
	_ "modernc.org/sqlite"
)

// snapshot is the rezi-serializable shape of an sltab.Tables: plain
// exported fields rezi can walk by reflection, since sltab.Tables
// itself keeps its maps unexported.
type snapshot struct {
	Terminals    []string
	NonTerminals []string
	States       []int
	ActionRows   [][]sltab.Action
	GotoRows     [][]int
}

// Cache wraps a sqlite-backed blob store of built parse tables.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("tablecache: open %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS parse_tables (
		key BLOB PRIMARY KEY,
		data BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("tablecache: init schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

// Key hashes the contents of the two CSV files so a cache entry is
// invalidated the moment either file's bytes change.
func Key(actionCSVPath, gotoCSVPath string) (string, error) {
	h := sha256.New()
	for _, p := range []string{actionCSVPath, gotoCSVPath} {
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("tablecache: reading %s: %w", p, err)
		}
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached tables for key, if present.
func (c *Cache) Get(key string) (*sltab.Tables, bool, error) {
	var blob []byte
	err := c.db.QueryRow(`SELECT data FROM parse_tables WHERE key = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("tablecache: lookup: %w", err)
	}

	var snap snapshot
	if _, err := rezi.DecBinary(blob, &snap); err != nil {
		return nil, false, fmt.Errorf("tablecache: decode: %w", err)
	}

	tables := sltab.New(snap.Terminals, snap.NonTerminals)
	for i, state := range snap.States {
		tables.SetAction(state, snap.ActionRows[i])
		tables.SetGoto(state, snap.GotoRows[i])
	}
	return tables, true, nil
}

// Put stores tables under key, overwriting any existing entry.
func (c *Cache) Put(key string, tables *sltab.Tables) error {
	snap := snapshot{
		Terminals:    tables.Terminals,
		NonTerminals: tables.NonTerminals,
	}
	for _, state := range tables.States() {
		actionRow := make([]sltab.Action, len(tables.Terminals))
		for i, term := range tables.Terminals {
			actionRow[i] = tables.Action(state, term)
		}
		gotoRow := make([]int, len(tables.NonTerminals))
		for i, nt := range tables.NonTerminals {
			v, _ := tables.Goto(state, nt)
			gotoRow[i] = v
		}
		snap.States = append(snap.States, state)
		snap.ActionRows = append(snap.ActionRows, actionRow)
		snap.GotoRows = append(snap.GotoRows, gotoRow)
	}

	blob := rezi.EncBinary(&snap)
	_, err := c.db.Exec(`INSERT OR REPLACE INTO parse_tables (key, data) VALUES (?, ?)`, key, blob)
	if err != nil {
		return fmt.Errorf("tablecache: store: %w", err)
	}
	return nil
}
