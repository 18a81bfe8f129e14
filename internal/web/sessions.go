package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/adekomen/portfolio/internal/prefs"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "portfolio_session"
	// The cookie outlives the in-memory state so a returning visitor keeps
	// the theme stored under the same id.
	sessionCookieMaxAge = 3600 * 24 * 365
)

// Sessions maps visitor ids to their view-state stores.
type Sessions struct {
	mu    sync.RWMutex
	m     map[string]*viewstate.Store
	model viewstate.Model
	prefs prefs.Store
}

func NewSessions(model viewstate.Model, p prefs.Store) *Sessions {
	return &Sessions{
		m:     make(map[string]*viewstate.Store),
		model: model,
		prefs: p,
	}
}

// Get returns the store for id, creating it from the persisted theme when
// the visitor has no live session.
func (s *Sessions) Get(ctx context.Context, id string) *viewstate.Store {
	s.mu.RLock()
	st, ok := s.m[id]
	s.mu.RUnlock()
	if ok {
		st.Touch()
		return st
	}

	theme := prefs.LoadTheme(ctx, s.prefs, prefs.ThemeKeyFor(id))

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.m[id]; ok {
		return st
	}
	st = viewstate.NewStore(s.model, s.model.Init(theme, 0))
	s.m[id] = st
	return st
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Sweep drops sessions idle for longer than ttl and returns how many went.
// Sessions with a delivery in flight are kept.
func (s *Sessions) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, st := range s.m {
		if st.LastSeen().Before(cutoff) && !st.Snapshot().Submission.Pending() {
			delete(s.m, id)
			n++
		}
	}
	return n
}

// sessionID reads the visitor cookie, issuing a new id when it is missing
// or malformed.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
	return id
}
