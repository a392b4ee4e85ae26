package storage

const schema = `
-- The 'documents' table holds whole-snapshot JSON records keyed by a
-- profile-derived namespace, e.g. 'deck:default' or 'settings:default'.
-- Snapshots are always written whole; there are no partial updates.
CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);

-- The 'counters' table holds small monotonic integers, currently only
-- the per-profile study session counter.
CREATE TABLE IF NOT EXISTS counters (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);
`
