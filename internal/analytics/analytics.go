// Package analytics records privacy-conscious visit statistics: hashed IPs,
// project dialog opens and contact form outcomes. Message content is never stored.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"
)

// Privacy-conscious visitor record
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type ProjectStat struct {
	ProjectID int       `json:"project_id"`
	Views     int       `json:"views"`
	LastView  time.Time `json:"last_view"`
}

type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	ProjectViews     int64           `json:"project_views"`
	TopProjects      []ProjectStat   `json:"top_projects"`
	ContactOutcomes  map[string]int  `json:"contact_outcomes"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Contact outcomes recorded by TrackContact.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

// Tracker writes and aggregates analytics rows.
type Tracker struct {
	db   *sql.DB
	salt string
}

// NewTracker creates the analytics tables and a fresh per-process hashing salt.
func NewTracker(ctx context.Context, db *sql.DB) (*Tracker, error) {
	t := &Tracker{db: db, salt: RandomToken()}
	if err := t.migrate(ctx); err != nil {
		return nil, err
	}
	log.Println("Privacy: visitor tracking enabled with hashed IP addresses")
	return t, nil
}

// RandomToken returns 32 random bytes hex encoded.
func RandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate random token:", err)
	}
	return hex.EncodeToString(b)
}

func (t *Tracker) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors(timestamp)`,
		`CREATE TABLE IF NOT EXISTS project_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			outcome TEXT NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, s := range stmts {
		if _, err := t.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate analytics: %w", err)
		}
	}
	return nil
}

// HashIP hashes an address with the process salt (consistent per IP).
func (t *Tracker) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + t.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// SkipPath reports paths that are never recorded as visits.
func SkipPath(path string) bool {
	for _, prefix := range []string{"/static/", "/assets/", "/admin/", "/favicon", "/privacy", "/health", "/particles.json"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (t *Tracker) TrackVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, t.HashIP(ip), userAgent, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record visitor: %w", err)
	}
	return nil
}

func (t *Tracker) TrackProjectView(ctx context.Context, projectID int) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO project_views (project_id, timestamp) VALUES (?, ?)`,
		projectID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record project view: %w", err)
	}
	return nil
}

func (t *Tracker) TrackContact(ctx context.Context, outcome string) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (outcome, timestamp) VALUES (?, ?)`,
		outcome, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record contact outcome: %w", err)
	}
	return nil
}

// Cleanup deletes visitor rows older than retention.
func (t *Tracker) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	res, err := t.db.ExecContext(ctx,
		`DELETE FROM visitors WHERE timestamp < ?`, time.Now().UTC().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("Privacy cleanup: removed %d visitor records older than %s", n, retention)
	}
	return n, nil
}

// Stats aggregates everything the admin dashboard shows.
func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ContactOutcomes: map[string]int{}}
	now := time.Now().UTC()
	startOfDay := now.Truncate(24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
		{&stats.ProjectViews, `SELECT COUNT(*) FROM project_views`, nil},
	}
	for _, c := range counts {
		if err := t.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	top, err := t.topProjects(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopProjects = top

	rows, err := t.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM contact_submissions GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("stats: contact outcomes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			continue
		}
		stats.ContactOutcomes[outcome] = n
	}

	recent, err := t.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent
	return stats, nil
}

func (t *Tracker) topProjects(ctx context.Context, limit int) ([]ProjectStat, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT project_id, COUNT(*) AS views, MAX(timestamp)
		FROM project_views
		GROUP BY project_id
		ORDER BY views DESC, project_id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("stats: top projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectStat
	for rows.Next() {
		var ps ProjectStat
		var last sql.NullString
		if err := rows.Scan(&ps.ProjectID, &ps.Views, &last); err != nil {
			continue
		}
		ps.LastView = parseTimestamp(last.String)
		out = append(out, ps)
	}
	return out, rows.Err()
}

// RecentVisitors lists the newest visitor rows (hashed IPs only).
func (t *Tracker) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// MAX() loses the column type, so the driver hands back text.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05.999999999-07:00", time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
