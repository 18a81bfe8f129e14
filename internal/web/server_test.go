package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/contact"
	"github.com/adekomen/portfolio/internal/diagram"
	"github.com/adekomen/portfolio/internal/prefs"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *testClient {
	return &testClient{t: t, h: h, cookies: map[string]*http.Cookie{}}
}

func (c *testClient) do(method, path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *testClient) sessionID() string {
	ck, ok := c.cookies[sessionCookie]
	require.True(c.t, ok, "no session cookie")
	return ck.Value
}

type fixture struct {
	srv   *Server
	prefs *prefs.Memory
}

func newFixture(t *testing.T, d contact.Deliverer, mutate ...func(*Config, *Deps)) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := prefs.NewMemory()
	cfg := Config{ServiceName: "portfolio-test", Version: "test"}
	deps := Deps{
		Model: viewstate.Model{
			Catalog:    catalog.Default(),
			PageSize:   2,
			Breakpoint: viewstate.WebBreakpoint,
		},
		Prefs:   p,
		Contact: d,
	}
	for _, m := range mutate {
		m(&cfg, &deps)
	}
	srv, err := NewServer(cfg, deps)
	require.NoError(t, err)
	return &fixture{srv: srv, prefs: p}
}

func okDeliverer() contact.Deliverer {
	return contact.DelivererFunc(func(context.Context, contact.Form) error { return nil })
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ama"},
		"email":   {"ama@example.com"},
		"message": {"Bonjour"},
	}
}

func TestNewServerRequiresCatalogAndDeliverer(t *testing.T) {
	_, err := NewServer(Config{}, Deps{Contact: okDeliverer()})
	assert.Error(t, err)

	_, err = NewServer(Config{}, Deps{Model: viewstate.Model{Catalog: catalog.Default()}})
	assert.Error(t, err)
}

func TestHomeRendersSections(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())

	w := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, id := range []string{`id="home"`, `id="projects"`, `id="skills"`, `id="about"`, `id="contact"`, `id="cv"`} {
		assert.Contains(t, body, id)
	}
	assert.Contains(t, body, "ADESU-FLS")
	assert.Contains(t, body, "<strong>Kokouvi François ADESU</strong>")
	assert.Contains(t, body, "Page 1 sur 3")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, c.sessionID())
}

func TestGalleryPagination(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())
	c.do(http.MethodGet, "/", nil)

	w := c.do(http.MethodPost, "/gallery/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Page 2 sur 3")
	assert.Contains(t, w.Body.String(), `hx-get="/projects/3"`)

	c.do(http.MethodPost, "/gallery/next", nil)
	w = c.do(http.MethodPost, "/gallery/next", nil)
	assert.Contains(t, w.Body.String(), "Page 3 sur 3", "cursor stays on the last page")

	w = c.do(http.MethodPost, "/gallery/page/1", nil)
	assert.Contains(t, w.Body.String(), "Page 1 sur 3")

	w = c.do(http.MethodPost, "/gallery/prev", nil)
	assert.Contains(t, w.Body.String(), "Page 1 sur 3")

	w = c.do(http.MethodPost, "/gallery/page/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryFilterResetsCursor(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())
	c.do(http.MethodGet, "/", nil)
	c.do(http.MethodPost, "/gallery/page/3", nil)

	w := c.do(http.MethodPost, "/gallery/filter", url.Values{"tag": {"Flutter"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hx-get="/projects/3"`)
	assert.Contains(t, body, `hx-get="/projects/5"`)
	assert.NotContains(t, body, `hx-get="/projects/1"`)
	assert.NotContains(t, body, "Page 1 sur", "a single page hides pagination")
	assert.Contains(t, body, `<option value="Flutter" selected>`)

	w = c.do(http.MethodPost, "/gallery/filter", url.Values{"tag": {"Cobol"}})
	assert.Contains(t, w.Body.String(), "Page 1 sur 3")
}

func TestProjectModal(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())
	c.do(http.MethodGet, "/", nil)

	w := c.do(http.MethodGet, "/projects/5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Une application de prise de mesure")
	assert.Contains(t, body, "Flutter, Dart, Firebase, Supabase")
	assert.Contains(t, body, "https://github.com/adekomen/sizer_app.git")
	assert.NotContains(t, body, "Démo")
	assert.NotContains(t, body, "Diagramme UML")
	assert.Contains(t, body, "Fermer")

	// the modal survives a full reload
	assert.Contains(t, c.do(http.MethodGet, "/", nil).Body.String(), "Fermer")

	w = c.do(http.MethodDelete, "/projects/modal", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.NotContains(t, c.do(http.MethodGet, "/", nil).Body.String(), "Fermer")

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/projects/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/projects/x", nil).Code)
}

type fakeRenderer struct {
	svg []byte
	err error
}

func (r fakeRenderer) Render(context.Context, string) ([]byte, error) { return r.svg, r.err }

func umlCatalog(t *testing.T) *catalog.Catalog {
	cat, err := catalog.New([]catalog.Project{{
		ID:           1,
		Title:        "Diagrammed",
		Technologies: []string{"Go"},
		UML:          "classDiagram\n  A <|-- B",
	}})
	require.NoError(t, err)
	return cat
}

func TestProjectModalDiagram(t *testing.T) {
	tests := []struct {
		name     string
		renderer diagram.Renderer
		want     string
	}{
		{"server side", fakeRenderer{svg: []byte(`<svg id="uml"></svg>`)}, `<svg id="uml"></svg>`},
		{"unavailable", fakeRenderer{err: diagram.ErrUnavailable}, `<pre class="mermaid">`},
		{"render error", fakeRenderer{err: errors.New("parse error")}, `<pre class="mermaid">`},
		{"no renderer", nil, `<pre class="mermaid">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, okDeliverer(), func(_ *Config, d *Deps) {
				d.Model.Catalog = umlCatalog(t)
				d.Diagrams = tt.renderer
			})
			c := newClient(t, f.srv.Handler())

			w := c.do(http.MethodGet, "/projects/1", nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "Diagramme UML")
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestThemeTogglePersists(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())
	c.do(http.MethodGet, "/", nil)

	w := c.do(http.MethodPost, "/theme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme-changed":"dark"}`, w.Header().Get("HX-Trigger"))
	assert.Contains(t, w.Body.String(), "☀️")

	v, err := f.prefs.Get(context.Background(), prefs.ThemeKeyFor(c.sessionID()))
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	// a returning visitor whose session was evicted gets the stored theme back
	assert.Equal(t, 1, f.srv.Sessions().Sweep(0))
	assert.Contains(t, c.do(http.MethodGet, "/", nil).Body.String(), `<html lang="fr" class="dark">`)
}

func TestSidebarFollowsViewport(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())
	c.do(http.MethodGet, "/", nil)

	w := c.do(http.MethodPost, "/viewport", url.Values{"width": {"500"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "flex-col open")

	w = c.do(http.MethodPost, "/viewport", url.Values{"width": {"1280"}})
	assert.Contains(t, w.Body.String(), "flex-col open")

	w = c.do(http.MethodPost, "/sidebar/toggle", nil)
	assert.NotContains(t, w.Body.String(), "flex-col open")
}

func TestContactValidation(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, contact.DelivererFunc(func(context.Context, contact.Form) error {
		calls.Add(1)
		return nil
	}))
	c := newClient(t, f.srv.Handler())

	w := c.do(http.MethodPost, "/contact", url.Values{"name": {"Ama"}, "email": {"  "}, "message": {"x"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), viewstate.MsgEmptyFields)

	w = c.do(http.MethodPost, "/contact", url.Values{"name": {"Ama"}, "email": {"ama@example"}, "message": {"x"}})
	assert.Contains(t, w.Body.String(), viewstate.MsgInvalidEmail)
	assert.Contains(t, w.Body.String(), `value="ama@example"`, "fields are kept")

	require.NoError(t, f.srv.Wait(context.Background()))
	assert.Zero(t, calls.Load())
}

func TestContactDeliverySucceeds(t *testing.T) {
	release := make(chan struct{})
	var got contact.Form
	f := newFixture(t, contact.DelivererFunc(func(_ context.Context, form contact.Form) error {
		<-release
		got = form
		return nil
	}))
	c := newClient(t, f.srv.Handler())

	w := c.do(http.MethodPost, "/contact", validForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-get="/contact/status"`)
	assert.Contains(t, w.Body.String(), viewstate.MsgSending)

	close(release)
	require.NoError(t, f.srv.Wait(context.Background()))

	w = c.do(http.MethodGet, "/contact/status", nil)
	body := w.Body.String()
	assert.Contains(t, body, viewstate.MsgSent)
	assert.NotContains(t, body, `hx-get="/contact/status"`)
	assert.NotContains(t, body, `value="Ama"`, "fields are cleared")
	assert.Equal(t, contact.Form{Name: "Ama", Email: "ama@example.com", Message: "Bonjour"}, got)
}

func TestContactDeliveryFails(t *testing.T) {
	f := newFixture(t, contact.DelivererFunc(func(context.Context, contact.Form) error {
		return &contact.DeliveryError{Status: 400, Text: "quota exceeded"}
	}))
	c := newClient(t, f.srv.Handler())

	c.do(http.MethodPost, "/contact", validForm())
	require.NoError(t, f.srv.Wait(context.Background()))

	body := c.do(http.MethodGet, "/contact/status", nil).Body.String()
	assert.Contains(t, body, "Erreur lors de l&#39;envoi : quota exceeded")
	assert.Contains(t, body, `value="Ama"`, "fields are kept")
}

func TestContactPendingGuard(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	f := newFixture(t, contact.DelivererFunc(func(context.Context, contact.Form) error {
		calls.Add(1)
		<-release
		return nil
	}))
	c := newClient(t, f.srv.Handler())

	c.do(http.MethodPost, "/contact", validForm())
	w := c.do(http.MethodPost, "/contact", url.Values{"name": {"B"}, "email": {"b@example.com"}, "message": {"again"}})
	assert.Contains(t, w.Body.String(), viewstate.MsgSending)
	assert.Contains(t, w.Body.String(), `value="Ama"`, "edits are ignored while sending")

	close(release)
	require.NoError(t, f.srv.Wait(context.Background()))
	assert.EqualValues(t, 1, calls.Load())
}

func TestConcurrentContactPostsDeliverOneWholeForm(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	var got contact.Form
	f := newFixture(t, contact.DelivererFunc(func(_ context.Context, form contact.Form) error {
		calls.Add(1)
		got = form
		<-release
		return nil
	}))
	h := f.srv.Handler()
	c := newClient(t, h)
	c.do(http.MethodGet, "/", nil)
	cookie := c.cookies[sessionCookie]

	forms := []url.Values{
		{"name": {"Ama"}, "email": {"ama@example.com"}, "message": {"Bonjour"}},
		{"name": {"Kofi"}, "email": {"kofi@example.com"}, "message": {"Salut"}},
	}
	bodies := make([]string, len(forms))
	var wg sync.WaitGroup
	for i, form := range forms {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(cookie)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			bodies[i] = w.Body.String()
		}()
	}
	wg.Wait()
	close(release)
	require.NoError(t, f.srv.Wait(context.Background()))

	require.EqualValues(t, 1, calls.Load())
	assert.Contains(t, []contact.Form{
		{Name: "Ama", Email: "ama@example.com", Message: "Bonjour"},
		{Name: "Kofi", Email: "kofi@example.com", Message: "Salut"},
	}, got)
	for _, body := range bodies {
		assert.Contains(t, body, `value="`+got.Name+`"`)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	f := newFixture(t, okDeliverer())
	h := f.srv.Handler()
	a, b := newClient(t, h), newClient(t, h)
	a.do(http.MethodGet, "/", nil)
	b.do(http.MethodGet, "/", nil)

	a.do(http.MethodPost, "/gallery/page/2", nil)
	assert.Contains(t, b.do(http.MethodGet, "/", nil).Body.String(), "Page 1 sur 3")
	assert.NotEqual(t, a.sessionID(), b.sessionID())
	assert.Equal(t, 2, f.srv.Sessions().Len())
}

func TestConcurrentRequestsOneSession(t *testing.T) {
	f := newFixture(t, okDeliverer())
	h := f.srv.Handler()
	c := newClient(t, h)
	c.do(http.MethodGet, "/", nil)
	cookie := c.cookies[sessionCookie]

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/gallery/next", nil)
			req.AddCookie(cookie)
			h.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()
	assert.Contains(t, c.do(http.MethodGet, "/", nil).Body.String(), "Page 3 sur 3")
}

func TestCV(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "ADESU_CV.pdf")
	require.NoError(t, os.WriteFile(cv, []byte("%PDF-1.4"), 0o644))

	f := newFixture(t, okDeliverer(), func(c *Config, _ *Deps) { c.CVPath = cv })
	c := newClient(t, f.srv.Handler())

	w := c.do(http.MethodGet, "/cv/open", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Le CV a été ouvert dans un nouvel onglet.")

	w = c.do(http.MethodGet, "/cv/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/cv/file", nil).Code)
}

func TestCVMissing(t *testing.T) {
	f := newFixture(t, okDeliverer(), func(c *Config, _ *Deps) {
		c.CVPath = filepath.Join(t.TempDir(), "missing.pdf")
	})
	c := newClient(t, f.srv.Handler())

	w := c.do(http.MethodGet, "/cv/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Erreur : Le fichier CV")
	assert.Contains(t, w.Body.String(), `href="/cv/file"`)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/cv/file", nil).Code)
}

func TestParticles(t *testing.T) {
	f := newFixture(t, okDeliverer())
	c := newClient(t, f.srv.Handler())

	var opts struct {
		Background *struct {
			Color struct{ Value string } `json:"color"`
		} `json:"background"`
		Particles struct {
			Number struct{ Value int } `json:"number"`
		} `json:"particles"`
	}

	w := c.do(http.MethodGet, "/particles.json?scope=hero&theme=dark", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	require.NotNil(t, opts.Background)
	assert.Equal(t, "#111827", opts.Background.Color.Value)
	assert.Equal(t, 50, opts.Particles.Number.Value)

	opts.Background = nil
	w = c.do(http.MethodGet, "/particles.json?scope=footer", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Nil(t, opts.Background)
	assert.Equal(t, 20, opts.Particles.Number.Value)
}

func TestSweepKeepsPendingSessions(t *testing.T) {
	release := make(chan struct{})
	f := newFixture(t, contact.DelivererFunc(func(context.Context, contact.Form) error {
		<-release
		return nil
	}))
	c := newClient(t, f.srv.Handler())
	c.do(http.MethodPost, "/contact", validForm())
	newClient(t, f.srv.Handler()).do(http.MethodGet, "/", nil)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, f.srv.Sessions().Sweep(time.Millisecond))
	assert.Equal(t, 1, f.srv.Sessions().Len())

	close(release)
	require.NoError(t, f.srv.Wait(context.Background()))
}
