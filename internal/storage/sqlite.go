// Package storage provides SQLite-based persistence for scores and round history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Mode      string
	Score     int
	CreatedAt time.Time
}

// Outcome values stored in the rounds table.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// RoundResult is one finished round.
type RoundResult struct {
	ID           int64
	RoundID      string // UUID assigned by the session
	Mode         string // difficulty preset
	Player       string // "local" or the SSH user
	Outcome      string // OutcomeWon or OutcomeLost
	Score        int
	TargetScore  int
	Duration     int // round length in seconds
	Elapsed      int // seconds actually played
	Swaps        int
	Matches      int
	LargestMatch int
	LongestChain int
	Shuffles     int
	CreatedAt    time.Time
}

// RoundFromReport converts a game report into a storable row.
func RoundFromReport(r core.RoundReport, player string) RoundResult {
	outcome := OutcomeLost
	if r.Won {
		outcome = OutcomeWon
	}
	return RoundResult{
		RoundID:      r.RoundID,
		Mode:         r.Mode,
		Player:       player,
		Outcome:      outcome,
		Score:        r.Score,
		TargetScore:  r.TargetScore,
		Duration:     int(r.Duration.Seconds()),
		Elapsed:      int(r.Elapsed.Seconds()),
		Swaps:        r.Swaps,
		Matches:      r.Matches,
		LargestMatch: r.LargestMatch,
		LongestChain: r.LongestChain,
		Shuffles:     r.Shuffles,
	}
}

// ErrInvalidRoundID is returned by SaveRound for a malformed round id.
var ErrInvalidRoundID = errors.New("storage: invalid round id")

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			target_score INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			swaps INTEGER NOT NULL DEFAULT 0,
			matches INTEGER NOT NULL DEFAULT 0,
			largest_match INTEGER NOT NULL DEFAULT 0,
			longest_chain INTEGER NOT NULL DEFAULT 0,
			shuffles INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given mode.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(mode string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, score) VALUES (?, ?)",
		mode, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores and round history for the given mode.
func (s *Store) ClearScores(mode string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM rounds WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// SaveRound records a finished round. An empty RoundID gets a fresh UUID;
// a non-empty one must parse as a UUID.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r RoundResult) (int64, error) {
	if r.RoundID == "" {
		r.RoundID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RoundID); err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidRoundID, r.RoundID, err)
	}
	if r.Player == "" {
		r.Player = "local"
	}

	res, err := s.db.Exec(
		`INSERT INTO rounds
		 (round_id, mode, player, outcome, score, target_score, duration_secs, elapsed_secs,
		  swaps, matches, largest_match, longest_chain, shuffles)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RoundID, r.Mode, r.Player, r.Outcome, r.Score, r.TargetScore, r.Duration, r.Elapsed,
		r.Swaps, r.Matches, r.LargestMatch, r.LongestChain, r.Shuffles,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const roundColumns = `id, round_id, mode, player, outcome, score, target_score, duration_secs,
	elapsed_secs, swaps, matches, largest_match, longest_chain, shuffles, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (RoundResult, error) {
	var r RoundResult
	var createdAt any
	err := row.Scan(
		&r.ID, &r.RoundID, &r.Mode, &r.Player, &r.Outcome, &r.Score, &r.TargetScore,
		&r.Duration, &r.Elapsed, &r.Swaps, &r.Matches, &r.LargestMatch, &r.LongestChain,
		&r.Shuffles, &createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RoundByID retrieves a round by its UUID. Returns nil if it doesn't exist.
func (s *Store) RoundByID(roundID string) (*RoundResult, error) {
	r, err := scanRound(s.db.QueryRow(
		`SELECT `+roundColumns+` FROM rounds WHERE round_id = ?`,
		roundID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// RecentRounds retrieves the most recent rounds across all modes.
func (s *Store) RecentRounds(limit int) ([]RoundResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT `+roundColumns+` FROM rounds ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// PlayerRounds retrieves the round history of one player.
func (s *Store) PlayerRounds(player string, limit int) ([]RoundResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT `+roundColumns+` FROM rounds WHERE player = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryRounds(query string, args ...any) ([]RoundResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var results []RoundResult
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ModeStats contains aggregated statistics for one difficulty mode.
type ModeStats struct {
	Mode         string
	GamesCount   int
	Wins         int
	Losses       int
	HighScore    int
	AvgScore     float64
	LongestChain int
	LargestMatch int
	LastPlayed   time.Time
}

// WinRate returns the fraction of rounds won, or 0 without rounds.
func (m ModeStats) WinRate() float64 {
	if m.GamesCount == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.GamesCount)
}

// GetModeStats retrieves aggregated round statistics for a mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(longest_chain), 0), COALESCE(MAX(largest_match), 0),
		        MAX(created_at)
		 FROM rounds WHERE mode = ?`,
		OutcomeWon, mode,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.HighScore, &stats.AvgScore,
		&stats.LongestChain, &stats.LargestMatch, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.Losses = stats.GamesCount - stats.Wins
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllModeStats retrieves statistics for every mode that has rounds.
func (s *Store) GetAllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT mode FROM rounds`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list modes: %w", err)
	}
	var modes []string
	for rows.Next() {
		var mode string
		if err := rows.Scan(&mode); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan mode: %w", err)
		}
		modes = append(modes, mode)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	stats := make(map[string]*ModeStats, len(modes))
	for _, mode := range modes {
		ms, err := s.GetModeStats(mode)
		if err != nil {
			return nil, err
		}
		stats[mode] = ms
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
