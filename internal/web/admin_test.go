package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/adekomen/portfolio/internal/analytics"
	"github.com/adekomen/portfolio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTracker(t *testing.T) (*analytics.Tracker, func(*Config, *Deps)) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tr, err := analytics.NewTracker(ctx, db)
	require.NoError(t, err)
	return tr, func(c *Config, d *Deps) {
		c.AdminUsername = "owner"
		c.AdminPassword = "s3cret"
		d.Analytics = tr
		d.DB = db
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	_, opt := withTracker(t)
	f := newFixture(t, okDeliverer(), opt)
	c := newClient(t, f.srv.Handler())

	w := c.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = c.do(http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	c.cookies[adminCookie] = &http.Cookie{Name: adminCookie, Value: "forged"}
	assert.Equal(t, http.StatusFound, c.do(http.MethodGet, "/admin/api/stats", nil).Code)
}

func TestAdminDashboard(t *testing.T) {
	_, opt := withTracker(t)
	f := newFixture(t, okDeliverer(), opt)
	c := newClient(t, f.srv.Handler())

	c.do(http.MethodGet, "/projects/5", nil)
	c.do(http.MethodPost, "/contact", url.Values{"name": {"x"}})
	require.NoError(t, f.srv.Wait(context.Background()))

	w := c.do(http.MethodPost, "/admin/login", url.Values{"username": {"owner"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = c.do(http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Une application de prise de mesure (#5)")

	w = c.do(http.MethodGet, "/admin/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats analytics.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.ProjectViews)
	assert.Equal(t, 1, stats.ContactOutcomes[analytics.OutcomeInvalid])

	w = c.do(http.MethodGet, "/admin/export/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/admin/visitors", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/admin/privacy/delete-visitor-data", nil).Code)

	c.do(http.MethodGet, "/admin/logout", nil)
	assert.Equal(t, http.StatusFound, c.do(http.MethodGet, "/admin/dashboard", nil).Code)
}

func TestVisitorTracking(t *testing.T) {
	tr, opt := withTracker(t)
	f := newFixture(t, okDeliverer(), opt)
	c := newClient(t, f.srv.Handler())

	c.do(http.MethodGet, "/", nil)
	c.do(http.MethodGet, "/", nil, "DNT", "1")
	c.do(http.MethodGet, "/static/app.css", nil)
	c.do(http.MethodGet, "/privacy", nil)

	assert.Eventually(t, func() bool {
		visitors, err := tr.RecentVisitors(context.Background(), 10)
		return err == nil && len(visitors) == 1
	}, 2*time.Second, 10*time.Millisecond)

	visitors, err := tr.RecentVisitors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "/", visitors[0].Path)
}

func TestPrivacyPage(t *testing.T) {
	_, opt := withTracker(t)
	f := newFixture(t, okDeliverer(), opt)
	w := newClient(t, f.srv.Handler()).do(http.MethodGet, "/privacy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "365 jours")
}

func TestAdminRoutesNeedTracker(t *testing.T) {
	f := newFixture(t, okDeliverer())
	w := newClient(t, f.srv.Handler()).do(http.MethodGet, "/admin/login", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
