package venuedb

// schema is executed on every Client start; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS stations (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    lat  REAL,
    lng  REAL
);

CREATE TABLE IF NOT EXISTS sources (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    weight   INTEGER NOT NULL DEFAULT 0,
    category TEXT NOT NULL DEFAULT 'crowd'
);

CREATE TABLE IF NOT EXISTS malls (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    station_id    TEXT REFERENCES stations(id),
    lat           REAL,
    lng           REAL,
    distance_m    REAL,
    walk_time_min INTEGER
);

CREATE TABLE IF NOT EXISTS listings (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    address       TEXT,
    lat           REAL,
    lng           REAL,
    station_id    TEXT REFERENCES stations(id),
    distance_m    REAL,
    walk_time_min INTEGER,
    tags          TEXT NOT NULL DEFAULT '',
    active        INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_listings_station ON listings(station_id, active);

CREATE TABLE IF NOT EXISTS brands (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS outlets (
    id       TEXT PRIMARY KEY,
    brand_id TEXT NOT NULL REFERENCES brands(id),
    mall_id  TEXT NOT NULL REFERENCES malls(id),
    name     TEXT NOT NULL,
    active   INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_outlets_mall ON outlets(mall_id, active);

CREATE TABLE IF NOT EXISTS listing_sources (
    listing_id TEXT NOT NULL REFERENCES listings(id),
    source_id  TEXT NOT NULL REFERENCES sources(id),
    url        TEXT,
    is_primary INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (listing_id, source_id)
);

CREATE TABLE IF NOT EXISTS reconcile_actions (
    id           TEXT PRIMARY KEY,
    station_id   TEXT NOT NULL,
    listing_id   TEXT NOT NULL,
    outlet_id    TEXT NOT NULL,
    listing_name TEXT NOT NULL,
    outlet_name  TEXT NOT NULL,
    tier         TEXT NOT NULL,
    auto_retired INTEGER NOT NULL DEFAULT 0,
    created_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reconcile_actions_station ON reconcile_actions(station_id);
`
