package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/adekomen/portfolio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTracker(t *testing.T) *Tracker {
	t.Helper()
	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tr, err := NewTracker(ctx, db)
	require.NoError(t, err)
	return tr
}

func TestHashIP(t *testing.T) {
	tr := setupTracker(t)
	a := tr.HashIP("203.0.113.7")
	assert.Len(t, a, 16)
	assert.Equal(t, a, tr.HashIP("203.0.113.7"))
	assert.NotEqual(t, a, tr.HashIP("203.0.113.8"))
	assert.NotContains(t, a, "203")
}

func TestSkipPath(t *testing.T) {
	assert.True(t, SkipPath("/static/app.js"))
	assert.True(t, SkipPath("/assets/ADESU_CV.pdf"))
	assert.True(t, SkipPath("/admin/dashboard"))
	assert.False(t, SkipPath("/"))
	assert.False(t, SkipPath("/projects/3"))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	tr := setupTracker(t)

	require.NoError(t, tr.TrackVisit(ctx, "10.0.0.1", "curl", "/"))
	require.NoError(t, tr.TrackVisit(ctx, "10.0.0.1", "curl", "/projects/1"))
	require.NoError(t, tr.TrackVisit(ctx, "10.0.0.2", "firefox", "/"))
	require.NoError(t, tr.TrackProjectView(ctx, 3))
	require.NoError(t, tr.TrackProjectView(ctx, 3))
	require.NoError(t, tr.TrackProjectView(ctx, 5))
	require.NoError(t, tr.TrackContact(ctx, OutcomeSent))
	require.NoError(t, tr.TrackContact(ctx, OutcomeInvalid))
	require.NoError(t, tr.TrackContact(ctx, OutcomeInvalid))

	stats, err := tr.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalVisitors)
	assert.EqualValues(t, 2, stats.UniqueVisitors)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 3, stats.ProjectViews)
	require.Len(t, stats.TopProjects, 2)
	assert.Equal(t, 3, stats.TopProjects[0].ProjectID)
	assert.Equal(t, 2, stats.TopProjects[0].Views)
	assert.Equal(t, map[string]int{OutcomeSent: 1, OutcomeInvalid: 2}, stats.ContactOutcomes)
	assert.Len(t, stats.RecentVisitors, 3)
	for _, v := range stats.RecentVisitors {
		assert.NotContains(t, v.HashedIP, "10.0.0")
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	tr := setupTracker(t)

	old := time.Now().UTC().AddDate(-2, 0, 0)
	_, err := tr.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		"deadbeefdeadbeef", "old", "/", old)
	require.NoError(t, err)
	require.NoError(t, tr.TrackVisit(ctx, "10.0.0.1", "new", "/"))

	n, err := tr.Cleanup(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	recent, err := tr.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].UserAgent)
}
