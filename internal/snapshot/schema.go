package snapshot

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
    id        INTEGER PRIMARY KEY,
    position  INTEGER NOT NULL,
    amount    TEXT    NOT NULL,
    category  TEXT    NOT NULL,
    date      TEXT    NOT NULL,
    notes     TEXT    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
    key       TEXT PRIMARY KEY,
    value     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_position ON expenses(position);
`
