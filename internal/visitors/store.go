// Package visitors is the privacy-conscious visit log: client IPs are kept
// only as salted hashes and old rows are purged.
package visitors

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Visit is one tracked page or view load.
type Visit struct {
	IP        string
	UserAgent string
	Path      string
	// View is the resolved view: home, project:<slug> or not-found.
	View string
}

type ViewCount struct {
	View   string `json:"view"`
	Visits int64  `json:"visits"`
}

// Stats is safe to publish: it holds counts only, never hashes or agents.
type Stats struct {
	TotalVisits    int64       `json:"total_visits"`
	UniqueVisitors int64       `json:"unique_visitors"`
	VisitsToday    int64       `json:"visits_today"`
	VisitsThisWeek int64       `json:"visits_this_week"`
	TopViews       []ViewCount `json:"top_views"`
}

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	view TEXT,
	visited_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_visited_at ON visitors(visited_at);
`

// Open creates or opens the visit log at path. An empty salt gets a random
// one, which makes hashes unlinkable across restarts.
func Open(path, salt string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db, salt)
}

// OpenMemory opens a throwaway in-memory log, mainly for tests.
func OpenMemory(salt string) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newStore(db, salt)
}

func newStore(db *sql.DB, salt string) (*Store, error) {
	if salt == "" {
		var err error
		if salt, err = NewSalt(); err != nil {
			db.Close()
			return nil, err
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

func NewSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashIP returns a stable, salted, truncated hash for ip.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *Store) Track(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, view, visited_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.HashIP(v.IP), v.UserAgent, v.Path, v.View, s.now().Unix())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Cleanup deletes visits older than retention and returns how many went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up visits: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Unix()
	weekAgo := now.Add(-7 * 24 * time.Hour).Unix()

	stats := &Stats{TopViews: []ViewCount{}}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT hashed_ip),
			COALESCE(SUM(CASE WHEN visited_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN visited_at >= ? THEN 1 ELSE 0 END), 0)
		FROM visitors
	`, startOfDay, weekAgo).Scan(&stats.TotalVisits, &stats.UniqueVisitors, &stats.VisitsToday, &stats.VisitsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("counting visits: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT view, COUNT(*) AS n
		FROM visitors
		WHERE view IS NOT NULL AND view != ''
		GROUP BY view
		ORDER BY n DESC, view ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("loading top views: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vc ViewCount
		if err := rows.Scan(&vc.View, &vc.Visits); err != nil {
			return nil, fmt.Errorf("scanning top views: %w", err)
		}
		stats.TopViews = append(stats.TopViews, vc)
	}
	return stats, rows.Err()
}
