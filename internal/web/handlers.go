package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adekomen/portfolio/internal/analytics"
	"github.com/adekomen/portfolio/internal/catalog"
	"github.com/adekomen/portfolio/internal/contact"
	"github.com/adekomen/portfolio/internal/content"
	"github.com/adekomen/portfolio/internal/diagram"
	"github.com/adekomen/portfolio/internal/particles"
	"github.com/adekomen/portfolio/internal/prefs"
	"github.com/adekomen/portfolio/internal/reqlog"
	"github.com/adekomen/portfolio/internal/viewstate"

	"github.com/gin-gonic/gin"
)

type siteVM struct {
	Name          string
	Tagline       string
	Pitch         string
	GitHubHandle  string
	GitHubURL     string
	ProjectsIntro string
	SkillsIntro   string
	Skills        []string
	About         []string
	Journey       []content.Milestone
	Mission       string
	ContactIntro  string
	CVIntro       string
	CVOpened      string
	CVManualHint  string
	CVBlocked     string
	FooterTagline string
	Links         []content.Link
	Sections      []content.Section
}

func newSiteVM() siteVM {
	return siteVM{
		Name:          content.Name,
		Tagline:       content.Tagline,
		Pitch:         content.Pitch,
		GitHubHandle:  content.GitHubHandle,
		GitHubURL:     content.GitHubURL,
		ProjectsIntro: content.ProjectsIntro,
		SkillsIntro:   content.SkillsIntro,
		Skills:        content.Skills,
		About:         content.AboutMe,
		Journey:       content.Journey,
		Mission:       content.Mission,
		ContactIntro:  content.ContactIntro,
		CVIntro:       content.CVIntro,
		CVOpened:      content.CVOpened,
		CVManualHint:  content.CVManualHint,
		CVBlocked:     content.CVPopupBlocked,
		FooterTagline: content.FooterTagline,
		Links:         content.Links,
		Sections:      content.Sections,
	}
}

// viewVM is what every fragment renders from.
type viewVM struct {
	State   viewstate.State
	Page    catalog.Page
	Filters []string
	Status  string
	Modal   *modalVM
	Site    siteVM
}

type modalVM struct {
	Project     catalog.Project
	Description template.HTML
	// SVG is set when the diagram was rendered server side; otherwise
	// Source goes to the browser mermaid runtime.
	SVG    template.HTML
	Source string
}

func (s *Server) session(c *gin.Context) (string, *viewstate.Store) {
	id := c.GetString("session_id")
	return id, s.sessions.Get(c.Request.Context(), id)
}

// dispatch feeds msg to the visitor's store and runs the resulting effect.
func (s *Server) dispatch(c *gin.Context, msg viewstate.Msg) viewstate.State {
	id, st := s.session(c)
	state, eff := st.Dispatch(msg)
	s.runEffect(c, id, st, eff)
	return state
}

func (s *Server) runEffect(c *gin.Context, id string, st *viewstate.Store, eff viewstate.Effect) {
	switch e := eff.(type) {
	case viewstate.PersistTheme:
		if err := prefs.SaveTheme(c.Request.Context(), s.deps.Prefs, prefs.ThemeKeyFor(id), e.Theme); err != nil {
			reqlog.New(c.Request.Context()).Warnf("persist_theme", "error=%v", err)
		}
	case viewstate.Deliver:
		s.deliver(c.GetString("request_id"), st, e.Form)
	}
}

// deliver sends the form in the background and reports the outcome to st.
// The request that started it returns immediately with the sending status.
func (s *Server) deliver(rid string, st *viewstate.Store, form contact.Form) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := reqlog.WithRequestID(context.Background(), rid)

		err := s.deps.Contact.Deliver(ctx, form)
		st.Dispatch(viewstate.Delivered{Err: err})

		outcome := analytics.OutcomeSent
		if err != nil {
			outcome = analytics.OutcomeFailed
		}
		s.trackContact(ctx, outcome)
	}()
}

func (s *Server) trackContact(ctx context.Context, outcome string) {
	if s.deps.Analytics == nil {
		return
	}
	if err := s.deps.Analytics.TrackContact(ctx, outcome); err != nil {
		reqlog.New(ctx).Error("track_contact", err)
	}
}

func (s *Server) view(state viewstate.State) viewVM {
	return viewVM{
		State:   state,
		Page:    s.deps.Model.Visible(state),
		Filters: s.deps.Model.Catalog.Technologies(),
		Status:  state.Submission.Kind.String(),
		Site:    newSiteVM(),
	}
}

func (s *Server) render(c *gin.Context, code int, name string, state viewstate.State) {
	c.HTML(code, name, s.view(state))
}

func (s *Server) handleHome(c *gin.Context) {
	_, st := s.session(c)
	state := st.Snapshot()
	vm := s.view(state)
	if state.Selected != nil {
		vm.Modal = s.modal(c.Request.Context(), *state.Selected)
	}
	c.HTML(http.StatusOK, "index.html", vm)
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	state := s.dispatch(c, viewstate.ToggleTheme{})
	trigger, _ := json.Marshal(map[string]string{"theme-changed": string(state.Theme)})
	c.Header("HX-Trigger", string(trigger))
	s.render(c, http.StatusOK, "theme-toggle", state)
}

func (s *Server) handleToggleSidebar(c *gin.Context) {
	s.render(c, http.StatusOK, "sidebar", s.dispatch(c, viewstate.ToggleSidebar{}))
}

func (s *Server) handleViewport(c *gin.Context) {
	width, _ := strconv.Atoi(c.PostForm("width"))
	s.render(c, http.StatusOK, "sidebar", s.dispatch(c, viewstate.Resized{Width: width}))
}

func (s *Server) handleFilter(c *gin.Context) {
	s.render(c, http.StatusOK, "gallery", s.dispatch(c, viewstate.SetFilter{Tag: c.PostForm("tag")}))
}

func (s *Server) handleNextPage(c *gin.Context) {
	s.render(c, http.StatusOK, "gallery", s.dispatch(c, viewstate.NextPage{}))
}

func (s *Server) handlePrevPage(c *gin.Context) {
	s.render(c, http.StatusOK, "gallery", s.dispatch(c, viewstate.PrevPage{}))
}

func (s *Server) handleGotoPage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid page")
		return
	}
	s.render(c, http.StatusOK, "gallery", s.dispatch(c, viewstate.GotoPage{Page: n}))
}

func (s *Server) handleOpenProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid project id")
		return
	}
	state := s.dispatch(c, viewstate.SelectProject{ID: id})
	if state.Selected == nil || state.Selected.ID != id {
		c.String(http.StatusNotFound, "")
		return
	}

	if t := s.deps.Analytics; t != nil {
		if err := t.TrackProjectView(c.Request.Context(), id); err != nil {
			reqlog.New(c.Request.Context()).Error("track_project_view", err)
		}
	}

	vm := s.view(state)
	vm.Modal = s.modal(c.Request.Context(), *state.Selected)
	c.HTML(http.StatusOK, "modal", vm)
}

func (s *Server) modal(ctx context.Context, p catalog.Project) *modalVM {
	m := &modalVM{
		Project:     p,
		Description: renderMarkdownHTML(p.LongDescription),
	}
	if !p.HasDiagram() {
		return m
	}
	m.Source = p.UML
	if s.deps.Diagrams == nil {
		return m
	}
	svg, err := s.deps.Diagrams.Render(ctx, p.UML)
	switch {
	case err == nil:
		m.SVG = template.HTML(svg)
	case errors.Is(err, diagram.ErrUnavailable):
	default:
		reqlog.New(ctx).Warnf("render_diagram", "project=%d error=%v", p.ID, err)
	}
	return m
}

func (s *Server) handleCloseModal(c *gin.Context) {
	s.dispatch(c, viewstate.CloseModal{})
	c.String(http.StatusOK, "")
}

func (s *Server) handleContact(c *gin.Context) {
	state := s.dispatch(c, viewstate.SubmitForm{Form: contact.Form{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}})
	if state.Submission.Kind == viewstate.SubmissionInvalid {
		s.trackContact(c.Request.Context(), analytics.OutcomeInvalid)
	}
	s.render(c, http.StatusOK, "contact", state)
}

func (s *Server) handleContactStatus(c *gin.Context) {
	_, st := s.session(c)
	s.render(c, http.StatusOK, "contact", st.Snapshot())
}

func (s *Server) handleCVOpen(c *gin.Context) {
	s.render(c, http.StatusOK, "cv-status", s.dispatch(c, viewstate.OpenCV{}))
}

func (s *Server) cvAvailable() bool {
	if s.cfg.CVPath == "" {
		return false
	}
	info, err := os.Stat(s.cfg.CVPath)
	return err == nil && !info.IsDir()
}

func (s *Server) handleCVFile(c *gin.Context) {
	if !s.cvAvailable() {
		c.String(http.StatusNotFound, content.CVDownloadError)
		return
	}
	c.File(s.cfg.CVPath)
}

func (s *Server) handleCVDownload(c *gin.Context) {
	if !s.cvAvailable() {
		reqlog.New(c.Request.Context()).Warnf("cv_download", "missing file path=%s", s.cfg.CVPath)
		c.HTML(http.StatusNotFound, "cv-error", gin.H{"Error": content.CVDownloadError})
		return
	}
	c.FileAttachment(s.cfg.CVPath, filepath.Base(s.cfg.CVPath))
}

func (s *Server) handleParticles(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(int(time.Hour.Seconds())))
	if c.Query("scope") == "footer" {
		c.JSON(http.StatusOK, particles.Footer())
		return
	}
	c.JSON(http.StatusOK, particles.ForTheme(viewstate.ParseTheme(c.Query("theme"))))
}
