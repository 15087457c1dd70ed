package store

// Schema v1 - leagues, teams, players, games and their plate appearances
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS leagues (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT UNIQUE NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS teams (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  league_id INTEGER NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (league_id, name)
);

CREATE TABLE IF NOT EXISTS players (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  UNIQUE (team_id, name)
);

-- One row per (team, season, game number); re-imports replace in place
CREATE TABLE IF NOT EXISTS games (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
  season TEXT NOT NULL,
  game_number INTEGER NOT NULL,
  played_on TEXT,
  source_path TEXT,
  content_sha1 TEXT,
  imported_at DATETIME,
  UNIQUE (team_id, season, game_number)
);

CREATE TABLE IF NOT EXISTS plate_appearances (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
  player_id INTEGER NOT NULL REFERENCES players(id),
  seq INTEGER NOT NULL,
  outcome TEXT NOT NULL,
  notation TEXT NOT NULL,
  rbis INTEGER NOT NULL DEFAULT 0,
  runs_scored INTEGER NOT NULL DEFAULT 0,
  row_num INTEGER,
  col_num INTEGER
);

-- Assumptions made while parsing, kept with the game they came from
CREATE TABLE IF NOT EXISTS parsing_warnings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
  player_name TEXT NOT NULL,
  row_num INTEGER,
  col_num INTEGER,
  filename TEXT,
  original TEXT,
  assumption TEXT NOT NULL
);
`

// Schema v2 - query indexes and processing run bookkeeping
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_games_season ON games(season);
CREATE INDEX IF NOT EXISTS idx_plate_appearances_game ON plate_appearances(game_id, seq);
CREATE INDEX IF NOT EXISTS idx_plate_appearances_player ON plate_appearances(player_id);
CREATE INDEX IF NOT EXISTS idx_parsing_warnings_game ON parsing_warnings(game_id);

CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  mode TEXT NOT NULL,
  started_at DATETIME NOT NULL,
  finished_at DATETIME,
  files INTEGER NOT NULL DEFAULT 0,
  succeeded INTEGER NOT NULL DEFAULT 0,
  failed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_files (
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  path TEXT NOT NULL,
  game_key TEXT,
  status TEXT NOT NULL,
  error TEXT,
  appearances INTEGER NOT NULL DEFAULT 0,
  warnings INTEGER NOT NULL DEFAULT 0,
  processed_at DATETIME NOT NULL,
  PRIMARY KEY (run_id, path)
);

CREATE INDEX IF NOT EXISTS idx_run_files_status ON run_files(status);
`
