package store

// schemaSQL is the DDL for the catalog tables.
const schemaSQL = `
-- Deck registry with hash-based change detection
CREATE TABLE IF NOT EXISTS decks (
    id INTEGER PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    filename TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    status TEXT DEFAULT 'pending',
    summary JSON,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Conversion run history
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY,
    deck_id INTEGER NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
    status TEXT NOT NULL,
    clues INTEGER DEFAULT 0,
    dropped INTEGER DEFAULT 0,
    images INTEGER DEFAULT 0,
    audio_clips INTEGER DEFAULT 0,
    output_path TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_decks_hash ON decks(content_hash);
CREATE INDEX IF NOT EXISTS idx_runs_deck ON runs(deck_id);
`
